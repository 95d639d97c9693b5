package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator checks domain inputs against their struct tags and renders
// failures as field-keyed messages.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// numeric rules (min, max) on prices compare against the float value
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{validate: v}
}

// Check validates every field when fields is nil, otherwise only the named
// struct fields.
func (v *Validator) Check(ctx context.Context, input interface{}, fields []string) error {
	var err error
	if fields == nil {
		err = v.validate.StructCtx(ctx, input)
	} else {
		if len(fields) == 0 {
			return nil
		}
		err = v.validate.StructPartialCtx(ctx, input, fields...)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("could not validate input: %w", err)
	}

	verr := domain.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	attr := Attribute(fe.Field())
	switch fe.Tag() {
	case "required":
		return RequiredMessage(fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// Attribute renders a JSON field name the way messages refer to it.
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func RequiredMessage(field string) string {
	return fmt.Sprintf("The %s field is required.", Attribute(field))
}

func DecimalPlacesMessage(field string, places int) string {
	return fmt.Sprintf("The %s field must have 0-%d decimal places.", Attribute(field), places)
}

func InvalidSelectionMessage(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", Attribute(field))
}
