// Package validator wraps go-playground/validator and turns its errors into
// a map of JSON field names to readable messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names instead of Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
}

// errorMessages maps validation tags to message templates.  Templates with
// two verbs receive the tag parameter as well.
var errorMessages = map[string]string{
	"required": "The field '%s' is required.",
	"email":    "The field '%s' must be a valid email address.",
	"min":      "The field '%s' must be at least %s.",
	"max":      "The field '%s' must be at most %s.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"alphanum": "The field '%s' may only contain letters and digits.",
	"objectid": "The field '%s' must be a valid id.",
}

func parseMessage(field string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, field, e.Param())
		}
		return fmt.Sprintf(msg, field)
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates s and returns a map of JSON field names to
// messages.  The map is empty when s is valid.
func ValidateStruct(s any) map[string]string {
	out := make(map[string]string)
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, e := range verrs {
		out[e.Field()] = parseMessage(e.Field(), e)
	}
	return out
}
