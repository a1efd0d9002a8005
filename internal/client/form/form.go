// Package form implements the add/edit draft of a single resource record:
// loading, field edits, the file sub-flow, validation and submission.
package form

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// FileAction is the pending change to a record's file. The three states are
// mutually exclusive.
type FileAction int

const (
	FileKeep FileAction = iota
	FileReplace
	FileRemove
)

func (a FileAction) String() string {
	switch a {
	case FileReplace:
		return "replace"
	case FileRemove:
		return "remove"
	default:
		return "keep"
	}
}

// Backend is the part of client.Client the form needs.
type Backend interface {
	Get(ctx context.Context, d *resource.Descriptor, id string) (models.Record, error)
	Create(ctx context.Context, d *resource.Descriptor, p client.Payload) error
	Update(ctx context.Context, d *resource.Descriptor, id string, p client.Payload) error
}

// Controller is the draft of one record. Not safe for concurrent use.
type Controller struct {
	d        *resource.Descriptor
	backend  Backend
	authorID func() string
	validate *validator.Validate

	mode     Mode
	id       string
	parentID string
	values   map[string]string

	file        FileAction
	filePath    string
	existingURL string
}

type Option func(*Controller)

// WithAuthor supplies the id written into the descriptor's AuthorField.
func WithAuthor(fn func() string) Option {
	return func(c *Controller) { c.authorID = fn }
}

func New(d *resource.Descriptor, backend Backend, opts ...Option) *Controller {
	c := &Controller{
		d:        d,
		backend:  backend,
		validate: validator.New(),
		values:   map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset opens an empty add draft with field defaults, scoped to parentID
// for dependent resources.
func (c *Controller) Reset(parentID string) {
	c.mode = ModeAdd
	c.id = ""
	c.parentID = parentID
	c.values = map[string]string{}
	for _, f := range c.d.FormFields(false) {
		c.values[f.Name] = f.Default
	}
	c.clearFile()
}

// Load fetches record id and opens it for editing. On error the draft is
// left as it was. For dependent resources the parent comes from parentID,
// falling back to the record's own parent field.
func (c *Controller) Load(ctx context.Context, id, parentID string) error {
	rec, err := c.backend.Get(ctx, c.d, id)
	if err != nil {
		return err
	}

	values := map[string]string{}
	for _, f := range c.d.FormFields(true) {
		values[f.Name] = toFormValue(f.Kind, rec[f.Name])
	}
	if c.d.Dependent() && parentID == "" {
		parentID = rec.Text(c.d.Parent.Field)
	}

	c.mode = ModeEdit
	c.id = id
	c.parentID = parentID
	c.values = values
	c.clearFile()
	if c.d.HasFile() {
		c.existingURL = rec.Text(c.d.Files.URLField)
	}
	return nil
}

// Close discards the draft.
func (c *Controller) Close() {
	c.mode = ModeClosed
	c.id = ""
	c.values = map[string]string{}
	c.clearFile()
}

func (c *Controller) clearFile() {
	c.file = FileKeep
	c.filePath = ""
	c.existingURL = ""
}

func (c *Controller) Mode() Mode       { return c.mode }
func (c *Controller) ID() string       { return c.id }
func (c *Controller) ParentID() string { return c.parentID }

func (c *Controller) Descriptor() *resource.Descriptor { return c.d }

// Fields returns the fields offered in the current mode.
func (c *Controller) Fields() []resource.Field {
	return c.d.FormFields(c.mode == ModeEdit)
}

// Value returns the current text of a field.
func (c *Controller) Value(name string) string {
	return c.values[name]
}

// Set edits one field by name. The identifier, the parent field and fields
// not offered in the current mode are rejected.
func (c *Controller) Set(name, value string) error {
	if c.mode == ModeClosed {
		return common.ErrNotEditing
	}
	if name == models.IDField || (c.d.Dependent() && name == c.d.Parent.Field) || name == c.d.AuthorField {
		return fmt.Errorf("%s: %w", name, common.ErrReadOnlyField)
	}
	for _, f := range c.Fields() {
		if f.Name == name {
			c.values[name] = value
			return nil
		}
	}
	if _, ok := c.d.Field(name); ok {
		return fmt.Errorf("%s: %w", name, common.ErrReadOnlyField)
	}
	return fmt.Errorf("%s: %w", name, common.ErrUnknownField)
}

// File returns the pending file action, the staged path and the URL of the
// stored file.
func (c *Controller) File() (FileAction, string, string) {
	return c.file, c.filePath, c.existingURL
}

// ReplaceFile stages a local file to upload on submit.
func (c *Controller) ReplaceFile(path string) error {
	if err := c.fileOp(); err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stage file: %w", err)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("stage file: %s is not a regular file", path)
	}
	c.file = FileReplace
	c.filePath = path
	return nil
}

// RemoveFile marks the stored file for removal.
func (c *Controller) RemoveFile() error {
	if err := c.fileOp(); err != nil {
		return err
	}
	c.file = FileRemove
	c.filePath = ""
	return nil
}

// KeepFile drops any pending file change.
func (c *Controller) KeepFile() error {
	if err := c.fileOp(); err != nil {
		return err
	}
	c.file = FileKeep
	c.filePath = ""
	return nil
}

func (c *Controller) fileOp() error {
	if c.mode == ModeClosed {
		return common.ErrNotEditing
	}
	if !c.d.HasFile() {
		return fmt.Errorf("file: %w", common.ErrUnsupportedOperation)
	}
	return nil
}

// Payload builds the request body from the draft. Transient fields are
// left out; the parent and author fields are always written.
func (c *Controller) Payload() (client.Payload, error) {
	if c.mode == ModeClosed {
		return client.Payload{}, common.ErrNotEditing
	}

	fields := map[string]any{}
	for _, f := range c.Fields() {
		if f.Transient {
			continue
		}
		fields[f.Name] = wireValue(f.Kind, c.values[f.Name])
	}

	if c.d.Dependent() {
		if c.parentID == "" {
			return client.Payload{}, common.ErrParentRequired
		}
		fields[c.d.Parent.Field] = wireValue(resource.KindNumber, c.parentID)
	}
	if c.d.AuthorField != "" && c.authorID != nil {
		if author := c.authorID(); author != "" {
			fields[c.d.AuthorField] = wireValue(resource.KindNumber, author)
		}
	}

	p := client.Payload{Fields: fields, Multipart: c.d.Multipart}
	if c.d.HasFile() {
		files := c.d.Files
		switch c.file {
		case FileReplace:
			p.Files = []models.FileUpload{{Field: files.Field, Path: c.filePath}}
		case FileRemove:
			if files.RemoveFlag != "" {
				fields[files.RemoveFlag] = "true"
			}
		case FileKeep:
			if c.existingURL != "" && files.KeepField != "" {
				fields[files.KeepField] = c.existingURL
			}
		}
	}
	return p, nil
}

// Submit validates the draft and creates or updates the record. On any
// failure the draft is left untouched so the user can correct and retry.
func (c *Controller) Submit(ctx context.Context) error {
	if c.mode == ModeClosed {
		return common.ErrNotEditing
	}
	if err := c.Validate(); err != nil {
		return err
	}
	p, err := c.Payload()
	if err != nil {
		return err
	}
	if c.mode == ModeEdit {
		return c.backend.Update(ctx, c.d, c.id, p)
	}
	return c.backend.Create(ctx, c.d, p)
}

// wireValue sends numeric fields as JSON numbers when they parse as such
// and everything else as entered.
func wireValue(kind resource.Kind, v string) any {
	if kind == resource.KindNumber {
		s := strings.TrimSpace(v)
		if isNumber(s) {
			return json.Number(s)
		}
	}
	return v
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
