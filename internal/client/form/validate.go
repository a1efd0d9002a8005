package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

// FieldError is one failed field check.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failed field. It matches common.ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// Validate checks the draft against the field declarations: required
// values, option membership, number, date and email syntax, and equality
// with another field.
func (c *Controller) Validate() error {
	if c.mode == ModeClosed {
		return common.ErrNotEditing
	}

	var failed []FieldError
	for _, f := range c.Fields() {
		value := c.values[f.Name]
		if err := c.validate.Var(value, tagFor(f)); err != nil {
			failed = append(failed, FieldError{Field: f.Name, Message: describe(f, err)})
			continue
		}
		if f.EqualTo != "" {
			if err := c.validate.VarWithValue(value, c.values[f.EqualTo], "eqfield"); err != nil {
				failed = append(failed, FieldError{Field: f.Name, Message: "must match " + f.EqualTo})
			}
		}
	}
	if c.d.Dependent() && c.parentID == "" {
		failed = append(failed, FieldError{Field: c.d.Parent.Field, Message: "select a " + strings.ToLower(c.d.Parent.Label) + " first"})
	}

	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	return nil
}

// tagFor builds the validator tag of a field.
func tagFor(f resource.Field) string {
	var rules []string
	switch f.Kind {
	case resource.KindNumber:
		rules = append(rules, "numeric")
	case resource.KindDate:
		rules = append(rules, "datetime="+DateLayout)
	case resource.KindDateTime:
		rules = append(rules, "datetime="+DateTimeLayout)
	case resource.KindEmail:
		rules = append(rules, "email")
	}
	if len(f.Options) > 0 {
		quoted := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			quoted = append(quoted, "'"+o+"'")
		}
		rules = append(rules, "oneof="+strings.Join(quoted, " "))
	}

	lead := "omitempty"
	if f.Required {
		lead = "required"
	}
	return strings.Join(append([]string{lead}, rules...), ",")
}

func describe(f resource.Field, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	switch verrs[0].Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.Join(f.Options, ", ")
	case "numeric":
		return "must be a number"
	case "datetime":
		return fmt.Sprintf("must match %s", verrs[0].Param())
	case "email":
		return "must be an email address"
	}
	return "is invalid"
}
