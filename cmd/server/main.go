package main // Entry point package

import (
	"os" // exit code on failure

	"github.com/spf13/cobra" // command line parsing
)

// rootCmd runs the API when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:          "vidly",
	Short:        "movie rental API",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         serveCmd.RunE,
}

func init() {
	rootCmd.AddCommand(serveCmd, promoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
