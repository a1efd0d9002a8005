// Package resource declares the backend resources the admin client manages.
//
// A Descriptor is pure data: endpoints, fields, searchable fields, the
// optional filter field and parent scope, and file handling. Every generic
// component (resource client, list view, form, page) is parametrised by one
// Descriptor; adding a resource never needs new control flow.
package resource

import (
	"net/url"
	"strings"
)

// Kind is the input kind of a form field. It drives value formatting and
// validation.
type Kind int

const (
	KindText Kind = iota
	KindLongText
	KindNumber
	KindDate
	KindDateTime
	KindSelect
	KindEmail
	KindPassword
)

var kindNames = map[Kind]string{
	KindText:     "text",
	KindLongText: "longtext",
	KindNumber:   "number",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindSelect:   "select",
	KindEmail:    "email",
	KindPassword: "password",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Field describes one editable field of a resource.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Options  []string // allowed values for KindSelect
	Default  string

	// CreateOnly fields are offered in add mode only (e.g. password).
	CreateOnly bool
	// Transient fields are validated but never sent (e.g. confirmation).
	Transient bool
	// EqualTo names a field this one must equal.
	EqualTo string
}

// Operation is one of the generic CRUD operations.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Endpoints holds path templates relative to the API base. "{id}" and
// "{parent}" are substituted (path-escaped). An empty template means the
// backend does not offer the operation.
type Endpoints struct {
	List   string
	Get    string
	Create string
	Update string
	Delete string
}

// OptionSource is a read-only collection used to populate a picker, such as
// the events a race category belongs to.
type OptionSource struct {
	Name       string
	Path       string
	ValueField string   // defaults to "id"
	LabelField []string // joined with " / " for display
}

// Parent scopes a dependent resource to a record of another collection.
type Parent struct {
	Field  string // payload and wire field, e.g. "event_id"
	Label  string
	Source *OptionSource
}

// Action is a custom mutation outside CRUD, such as a payment status change.
type Action struct {
	Name     string
	Method   string
	Path     string
	IDKey    string // body key carrying the record id
	ValueKey string // body key carrying the new value
	Field    string // record field the action changes
	Options  []string
}

// Files describes the optional single file attached to a record.
type Files struct {
	Field      string // multipart part name of a new file, e.g. "image"
	URLField   string // wire field holding the stored file URL
	KeepField  string // multipart field echoing the stored URL when kept
	RemoveFlag string // multipart field set to "true" to remove the file
}

// Descriptor is the declarative description of one resource.
type Descriptor struct {
	Name      string
	Title     string
	Endpoints Endpoints
	Fields    []Field
	Columns   []string // list columns, in display order
	Search    []string // fields matched by the search text
	Filter    string   // field matched exactly by the filter value
	Parent    *Parent

	// Multipart forces multipart bodies even without a staged file.
	Multipart bool
	Files     *Files
	// AuthorField is filled from the session user id on submit.
	AuthorField string
	Status      *Action
	// AssetField holds a backend-relative URL resolved against the asset base.
	AssetField string
}

// Supports reports whether the backend offers op for this resource.
func (d *Descriptor) Supports(op Operation) bool {
	return d.template(op) != ""
}

func (d *Descriptor) template(op Operation) string {
	switch op {
	case OpList:
		return d.Endpoints.List
	case OpGet:
		return d.Endpoints.Get
	case OpCreate:
		return d.Endpoints.Create
	case OpUpdate:
		return d.Endpoints.Update
	case OpDelete:
		return d.Endpoints.Delete
	}
	return ""
}

// Path expands the endpoint template of op. It returns "" when op is not
// supported.
func (d *Descriptor) Path(op Operation, id, parentID string) string {
	return Expand(d.template(op), id, parentID)
}

// Expand substitutes {id} and {parent} in tmpl.
func Expand(tmpl, id, parentID string) string {
	if tmpl == "" {
		return ""
	}
	r := strings.NewReplacer("{id}", url.PathEscape(id), "{parent}", url.PathEscape(parentID))
	return r.Replace(tmpl)
}

// Field returns the field called name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FormFields returns the fields offered in the given mode, excluding the
// parent field which is never edited on the form.
func (d *Descriptor) FormFields(editing bool) []Field {
	out := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if editing && f.CreateOnly {
			continue
		}
		if d.Parent != nil && f.Name == d.Parent.Field {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Dependent reports whether the resource is scoped to a parent record.
func (d *Descriptor) Dependent() bool {
	return d.Parent != nil
}

// HasFile reports whether records of the resource carry a file.
func (d *Descriptor) HasFile() bool {
	return d.Files != nil && d.Files.Field != ""
}

// ListColumns returns Columns, or "id" followed by every field name.
func (d *Descriptor) ListColumns() []string {
	if len(d.Columns) > 0 {
		return d.Columns
	}
	cols := []string{"id"}
	for _, f := range d.Fields {
		if f.Transient || f.Kind == KindPassword {
			continue
		}
		cols = append(cols, f.Name)
	}
	return cols
}
