package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. It reads the same `binding` tags gin
// uses, so DTOs validate identically in handlers and services.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")
		registerRules(v)
		instance = v
	})
	return instance
}

// RegisterGinValidations installs the custom rules on gin's validator engine.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	registerRules(v)
	return nil
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// Struct validates s and converts failures into an apperrors.ErrValidation.
func Struct(s any) error {
	if err := Validator().Struct(s); err != nil {
		return ToAppError(err)
	}
	return nil
}

// ToAppError wraps validator errors as ErrValidation with one message per field.
func ToAppError(err error) error {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return &FieldError{Fields: fields}
}

// FieldError is an ErrValidation carrying per-field messages.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return apperrors.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FieldError) Unwrap() error { return apperrors.ErrValidation }

// NewFieldError builds a FieldError from field -> message pairs.
func NewFieldError(fields map[string]string) error {
	return &FieldError{Fields: fields}
}

// FieldErrors maps validator.ValidationErrors to field -> message.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[lowerFirst(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "phone":
		return "must be a phone number with at least 10 digits"
	default:
		return fmt.Sprintf("failed '%s' check", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
