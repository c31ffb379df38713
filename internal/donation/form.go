package donation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"animalrescue/internal/domain"
)

// Form is the payload of a donation submission. Card fields are only checked
// for presence.
type Form struct {
	Amount     int    `form:"amount" validate:"preset"`
	CardNumber string `form:"card_number" validate:"required"`
	Expiry     string `form:"expiry" validate:"required"`
	CVC        string `form:"cvc" validate:"required"`
}

// ValidationError lists the rejected fields of a submission, keyed by form name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

var fieldLabels = map[string]string{
	"amount":      "Amount",
	"card_number": "Card number",
	"expiry":      "Expiry date",
	"cvc":         "CVC",
}

var (
	validateOnce sync.Once
	validateInst *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" {
				return name
			}
			return fld.Name
		})
		_ = v.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
			return domain.IsPresetAmount(int(fl.Field().Int()))
		})
		validateInst = v
	})
	return validateInst
}

func (f Form) normalized() Form {
	f.CardNumber = strings.TrimSpace(f.CardNumber)
	f.Expiry = strings.TrimSpace(f.Expiry)
	f.CVC = strings.TrimSpace(f.CVC)
	return f
}

// Validate trims the card fields and checks them. A nil error means the form
// may be submitted.
func (f Form) Validate() (Form, error) {
	f = f.normalized()
	err := formValidator().Struct(f)
	if err == nil {
		return f, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return f, fmt.Errorf("validate donation form: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = label + " is required"
		case "preset":
			fields[fe.Field()] = "Choose one of the suggested amounts"
		default:
			fields[fe.Field()] = label + " is invalid"
		}
	}
	return f, &ValidationError{Fields: fields}
}
