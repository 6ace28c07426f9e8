// Package form holds the fixed-schema records behind the registration and
// login screens and the validators applied to them at submit time.
package form

import (
	"errors"
	"fmt"
	"maps"
)

// Field identifiers, shared with the screens that edit them.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldStudentID       = "studentId"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// ErrUnknownField is returned when a field name is not part of a record's schema.
var ErrUnknownField = errors.New("unknown field")

// Record is the shape every form record exposes to the UI layer.
type Record interface {
	// Set overwrites the value of field. No normalization is applied.
	Set(field, value string) error
	// Get returns the current value of field.
	Get(field string) (string, error)
	// Values returns a snapshot of every field.
	Values() map[string]string
	// Fields returns the field identifiers in display order.
	Fields() []string
	// Validate runs the record's submit-time checks; nil means valid.
	Validate() error
}

// Registration is the student registration form.
type Registration struct {
	FirstName       string `form:"firstName" validate:"required"`
	LastName        string `form:"lastName" validate:"required"`
	Email           string `form:"email" validate:"required"`
	Phone           string `form:"phone"`
	StudentID       string `form:"studentId"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirmPassword"`
}

var registrationFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldStudentID,
	FieldPassword,
	FieldConfirmPassword,
}

func (r *Registration) field(name string) (*string, error) {
	switch name {
	case FieldFirstName:
		return &r.FirstName, nil
	case FieldLastName:
		return &r.LastName, nil
	case FieldEmail:
		return &r.Email, nil
	case FieldPhone:
		return &r.Phone, nil
	case FieldStudentID:
		return &r.StudentID, nil
	case FieldPassword:
		return &r.Password, nil
	case FieldConfirmPassword:
		return &r.ConfirmPassword, nil
	}
	return nil, fmt.Errorf("registration: %w: %q", ErrUnknownField, name)
}

// Set implements Record.
func (r *Registration) Set(field, value string) error {
	p, err := r.field(field)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Get implements Record.
func (r *Registration) Get(field string) (string, error) {
	p, err := r.field(field)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Values implements Record.
func (r *Registration) Values() map[string]string {
	return map[string]string{
		FieldFirstName:       r.FirstName,
		FieldLastName:        r.LastName,
		FieldEmail:           r.Email,
		FieldPhone:           r.Phone,
		FieldStudentID:       r.StudentID,
		FieldPassword:        r.Password,
		FieldConfirmPassword: r.ConfirmPassword,
	}
}

// Fields implements Record.
func (r *Registration) Fields() []string {
	return append([]string(nil), registrationFields...)
}

// Validate implements Record.
func (r *Registration) Validate() error {
	return ValidateRegistration(*r)
}

// Login is the student sign-in form.
type Login struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (l *Login) field(name string) (*string, error) {
	switch name {
	case FieldEmail:
		return &l.Email, nil
	case FieldPassword:
		return &l.Password, nil
	}
	return nil, fmt.Errorf("login: %w: %q", ErrUnknownField, name)
}

// Set implements Record.
func (l *Login) Set(field, value string) error {
	p, err := l.field(field)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Get implements Record.
func (l *Login) Get(field string) (string, error) {
	p, err := l.field(field)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Values implements Record.
func (l *Login) Values() map[string]string {
	return map[string]string{
		FieldEmail:    l.Email,
		FieldPassword: l.Password,
	}
}

// Fields implements Record.
func (l *Login) Fields() []string {
	return []string{FieldEmail, FieldPassword}
}

// Validate implements Record.
func (l *Login) Validate() error {
	return ValidateLogin(*l)
}

// Equal reports whether two records hold the same values.
func Equal(a, b Record) bool {
	return maps.Equal(a.Values(), b.Values())
}
