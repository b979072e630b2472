package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/vidly-api/internal/config"
	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/repository"
)

var promoteFlags struct {
	email  string
	revoke bool
}

// promoteCmd is the only way to make an administrator; registration always
// creates regular users.
var promoteCmd = &cobra.Command{
	Use:   "promote --email <address> [--revoke]",
	Short: "grant or revoke admin rights for an existing user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return promote(cmd.Context(), cmd, promoteFlags.email, !promoteFlags.revoke)
	},
}

func init() {
	promoteCmd.Flags().StringVar(&promoteFlags.email, "email", "", "email of the user to change")
	promoteCmd.Flags().BoolVar(&promoteFlags.revoke, "revoke", false, "remove admin rights instead of granting them")
	_ = promoteCmd.MarkFlagRequired("email")
}

func promote(ctx context.Context, cmd *cobra.Command, email string, admin bool) error {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, db, err := database.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(client) }()

	u, err := repository.NewUserRepo(db).SetAdmin(ctx, email, admin)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("no user with email %q", repository.NormalizeEmail(email))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s isAdmin=%t\n", u.Email, u.IsAdmin)
	return nil
}
