// Package common defines shared constants and sentinel errors. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrNoSession     = errors.New("session expired, please log in")
	ErrForbiddenRole = errors.New("role is not allowed to use the admin client")

	// Resource errors.
	ErrUnsupportedOperation = errors.New("operation not supported by resource")
	ErrUnknownResource      = errors.New("unknown resource")
	ErrParentRequired       = errors.New("parent selection required")

	// Form errors.
	ErrReadOnlyField = errors.New("field is read-only")
	ErrUnknownField  = errors.New("unknown field")
	ErrValidation    = errors.New("validation error")
	ErrNotEditing    = errors.New("no form is open")
)
