package form

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password, counted in characters.
const MinPasswordLength = 6

// Kind classifies a validation failure.
type Kind int

const (
	KindMissingField Kind = iota + 1
	KindPasswordMismatch
	KindPasswordTooShort
)

func (k Kind) String() string {
	switch k {
	case KindMissingField:
		return "MissingField"
	case KindPasswordMismatch:
		return "PasswordMismatch"
	case KindPasswordTooShort:
		return "PasswordTooShort"
	default:
		return "Unknown"
	}
}

// Sentinels matched by errors.Is against a *ValidationError.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password too short")
)

// User-facing reasons, shown verbatim in the alert dialog.
const (
	ReasonRegistrationMissing = "Please fill in all required fields"
	ReasonLoginMissing        = "Please fill in all fields"
	ReasonPasswordMismatch    = "Passwords do not match"
	ReasonPasswordTooShort    = "Password must be at least 6 characters long"
)

// ValidationError is the Invalid variant of a submit-time check.
type ValidationError struct {
	Kind   Kind
	Reason string
	// Fields lists the offending field identifiers, when known.
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is lets errors.Is match the sentinel for e.Kind.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case KindMissingField:
		return target == ErrMissingField
	case KindPasswordMismatch:
		return target == ErrPasswordMismatch
	case KindPasswordTooShort:
		return target == ErrPasswordTooShort
	}
	return false
}

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their form identifier rather than the Go name.
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" && name != "-" {
				return name
			}
			return fld.Name
		})
	})
	return validatorInstance
}

// ValidateRegistration checks a registration in order: required fields,
// password confirmation, then password length. The first failure wins.
func ValidateRegistration(r Registration) error {
	if err := requireFields(r, ReasonRegistrationMissing); err != nil {
		return err
	}

	v := getValidator()
	if err := v.VarWithValue(r.ConfirmPassword, r.Password, "eqcsfield"); err != nil {
		if !isValidationErrors(err) {
			return fmt.Errorf("comparing passwords: %w", err)
		}
		return &ValidationError{
			Kind:   KindPasswordMismatch,
			Reason: ReasonPasswordMismatch,
			Fields: []string{FieldPassword, FieldConfirmPassword},
		}
	}

	if err := v.Var(r.Password, "min="+strconv.Itoa(MinPasswordLength)); err != nil {
		if !isValidationErrors(err) {
			return fmt.Errorf("checking password length: %w", err)
		}
		return &ValidationError{
			Kind:   KindPasswordTooShort,
			Reason: ReasonPasswordTooShort,
			Fields: []string{FieldPassword},
		}
	}
	return nil
}

// ValidateLogin fails only when email or password is empty.
func ValidateLogin(l Login) error {
	return requireFields(l, ReasonLoginMissing)
}

// requireFields runs the `validate:"required"` tags of a form struct and
// folds any failures into a single MissingField error.
func requireFields(s any, reason string) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{
		Kind:   KindMissingField,
		Reason: reason,
		Fields: fields,
	}
}

func isValidationErrors(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
