package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Messages name fields by their form tag.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate joins every field failure into one message, in field order.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for n, fe := range ve {
		msgs[n] = fieldError(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// tagMessages phrase a failed rule; %[1]s is the field, %[2]s the rule's
// parameter.
var tagMessages = map[string]string{
	"required": "%[1]s is required",
	"email":    "%[1]s must be a valid email",
	"min":      "%[1]s must be at least %[2]s",
	"oneof":    "%[1]s must be one of: %[2]s",
	"datetime": "%[1]s must be a date (YYYY-MM-DD)",
}

func fieldError(fe validator.FieldError) string {
	if format, ok := tagMessages[fe.Tag()]; ok {
		if strings.Contains(format, "%[2]s") {
			return fmt.Sprintf(format, fe.Field(), fe.Param())
		}
		return fmt.Sprintf(format, fe.Field())
	}
	return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
}
