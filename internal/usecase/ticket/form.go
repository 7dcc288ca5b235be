package ticket

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

// Form holds what the user entered in the support window.
type Form struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"required,max=10000"`
	Priority string `json:"priority" validate:"required,oneof=low medium high urgent"`
	Category string `json:"category" validate:"max=64"`
	Urgency  string `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

type emailQuery struct {
	Email string `json:"email" validate:"required,email"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (f Form) normalized() Form {
	f.Email = strings.TrimSpace(f.Email)
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)
	f.Priority = strings.ToLower(strings.TrimSpace(f.Priority))
	f.Category = strings.TrimSpace(f.Category)
	f.Urgency = strings.ToLower(strings.TrimSpace(f.Urgency))
	return f
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// validationError converts the first validator failure into
// domain.ErrValidation.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return domain.ErrValidation{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
