// ABOUTME: Struct validation for contacts, interactions and events
// ABOUTME: Wraps go-playground/validator with the isodate and status rules
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks the struct tags of a contact, interaction or event and
// flattens any failures into a single readable error.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	kind, _, _ := strings.Cut(verrs[0].StructNamespace(), ".")
	return fmt.Errorf("invalid %s: %s", strings.ToLower(kind), strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "isodate":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date (got %q)", field, fe.Value())
	case "status":
		return fmt.Sprintf("%s must be a known lifecycle stage (got %q)", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return field + " must be a URL"
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
