// Package page composes the session guard, resource client, list view and
// form into one resource page with a list/add/edit state machine.
//
// Every successful mutation is followed by a full re-fetch; the page never
// patches its local copy.
package page

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/form"
	"github.com/oceanticsports/oceantic-admin/internal/client/listview"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/common"
	"github.com/oceanticsports/oceantic-admin/internal/logging"
)

type State int

const (
	StateList State = iota
	StateAdd
	StateEdit
)

func (s State) String() string {
	switch s {
	case StateAdd:
		return "add"
	case StateEdit:
		return "edit"
	default:
		return "list"
	}
}

// Guard is the session view a page needs.
type Guard interface {
	Guard() error
	Current() models.Session
}

// Option is one entry of the parent picker.
type Option struct {
	Value string
	Label string
}

// Composer is one mounted resource page. Build a new one per visit; nothing
// survives leaving the page. Not safe for concurrent use.
type Composer struct {
	d       *resource.Descriptor
	backend client.Client
	guard   Guard
	log     logging.Logger

	list *listview.Controller
	form *form.Controller

	state    State
	parents  []Option
	parentID string
}

type Config struct {
	PageSize int
	Logger   logging.Logger
}

func New(d *resource.Descriptor, backend client.Client, guard Guard, cfg Config) *Composer {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	author := func() string { return guard.Current().UserID }
	return &Composer{
		d:       d,
		backend: backend,
		guard:   guard,
		log:     log.With("resource", d.Name),
		list:    listview.ForResource(d, cfg.PageSize),
		form:    form.New(d, backend, form.WithAuthor(author)),
	}
}

func (c *Composer) Descriptor() *resource.Descriptor { return c.d }
func (c *Composer) State() State                     { return c.state }
func (c *Composer) List() *listview.Controller       { return c.list }
func (c *Composer) Form() *form.Controller           { return c.form }
func (c *Composer) ParentID() string                 { return c.parentID }

// ParentOptions returns the picker entries of a dependent resource.
func (c *Composer) ParentOptions() []Option {
	out := make([]Option, len(c.parents))
	copy(out, c.parents)
	return out
}

// Mount checks the session, loads parent options for dependent resources
// (selecting the first one) and fetches the collection. Without a session
// no request is issued.
func (c *Composer) Mount(ctx context.Context) error {
	if err := c.guard.Guard(); err != nil {
		return err
	}
	c.state = StateList

	if c.d.Dependent() {
		opts, err := LoadOptions(ctx, c.backend, c.d.Parent.Source)
		if err != nil {
			return fmt.Errorf("load %s: %w", c.d.Parent.Source.Name, err)
		}
		c.parents = opts
		c.parentID = ""
		if len(opts) > 0 {
			c.parentID = opts[0].Value
		}
	}
	return c.Refresh(ctx)
}

// Refresh re-fetches the collection. On failure the previous collection is
// kept.
func (c *Composer) Refresh(ctx context.Context) error {
	if err := c.guard.Guard(); err != nil {
		return err
	}
	if !c.d.Supports(resource.OpList) {
		c.list.SetItems(nil)
		return nil
	}
	if c.d.Dependent() && c.parentID == "" {
		c.list.SetItems(nil)
		return nil
	}

	items, err := c.backend.List(ctx, c.d, c.parentID)
	if err != nil {
		c.log.Warn(ctx, "fetch failed", "error", err)
		return err
	}
	c.list.SetItems(items)
	c.log.Debug(ctx, "fetched", "count", len(items), "parent", c.parentID)
	return nil
}

// SelectParent scopes a dependent page to another parent and re-fetches.
func (c *Composer) SelectParent(ctx context.Context, id string) error {
	if !c.d.Dependent() {
		return fmt.Errorf("parent: %w", common.ErrUnsupportedOperation)
	}
	if c.state != StateList {
		return fmt.Errorf("finish or cancel the %s form first", c.state)
	}
	found := false
	for _, o := range c.parents {
		if o.Value == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown %s %q", strings.ToLower(c.d.Parent.Label), id)
	}
	c.parentID = id
	c.list.SetPage(1)
	return c.Refresh(ctx)
}

// BeginAdd moves list → add with a fresh draft.
func (c *Composer) BeginAdd() error {
	if err := c.requireList(); err != nil {
		return err
	}
	if !c.d.Supports(resource.OpCreate) {
		return fmt.Errorf("%s add: %w", c.d.Name, common.ErrUnsupportedOperation)
	}
	if c.d.Dependent() && c.parentID == "" {
		return common.ErrParentRequired
	}
	c.form.Reset(c.parentID)
	c.state = StateAdd
	return nil
}

// BeginEdit moves list → edit(id), loading the record. A failed load stays
// on the list.
func (c *Composer) BeginEdit(ctx context.Context, id string) error {
	if err := c.requireList(); err != nil {
		return err
	}
	if !c.d.Supports(resource.OpUpdate) || !c.d.Supports(resource.OpGet) {
		return fmt.Errorf("%s edit: %w", c.d.Name, common.ErrUnsupportedOperation)
	}
	if err := c.form.Load(ctx, id, c.parentID); err != nil {
		c.form.Close()
		c.state = StateList
		return fmt.Errorf("load %s %s: %w", c.d.Name, id, err)
	}
	c.state = StateEdit
	return nil
}

// Cancel discards the draft and returns to the list.
func (c *Composer) Cancel() {
	c.form.Close()
	c.state = StateList
}

// Submit sends the draft. On success the page re-fetches and returns to the
// list; on failure it stays on the form with the draft intact.
func (c *Composer) Submit(ctx context.Context) error {
	if c.state == StateList {
		return common.ErrNotEditing
	}
	if err := c.guard.Guard(); err != nil {
		return err
	}
	if err := c.form.Submit(ctx); err != nil {
		return err
	}
	c.log.Info(ctx, "saved", "mode", c.state.String(), "id", c.form.ID())
	c.form.Close()
	c.state = StateList
	return c.Refresh(ctx)
}

// Delete removes record id and re-fetches. Confirmation is the caller's job.
func (c *Composer) Delete(ctx context.Context, id string) error {
	if err := c.requireList(); err != nil {
		return err
	}
	if err := c.backend.Delete(ctx, c.d, id); err != nil {
		return err
	}
	c.log.Info(ctx, "deleted", "id", id)
	return c.Refresh(ctx)
}

var statusValidate = validator.New()

// UpdateStatus runs the resource's status action for record id and
// re-fetches. The value must be one of the action's options.
func (c *Composer) UpdateStatus(ctx context.Context, id, value string) error {
	a := c.d.Status
	if a == nil {
		return fmt.Errorf("%s status: %w", c.d.Name, common.ErrUnsupportedOperation)
	}
	if err := c.requireList(); err != nil {
		return err
	}
	if err := statusValidate.Var(value, "required,oneof="+quoteOptions(a.Options)); err != nil {
		return fmt.Errorf("%w: status must be one of %s", common.ErrValidation, strings.Join(a.Options, ", "))
	}

	body := map[string]any{a.IDKey: idValue(id), a.ValueKey: value}
	if err := c.backend.Action(ctx, a, body); err != nil {
		return err
	}
	c.log.Info(ctx, "status changed", "id", id, "status", value)
	return c.Refresh(ctx)
}

// Record returns record id from the fetched collection, ignoring search
// and filter.
func (c *Composer) Record(id string) (models.Record, bool) {
	for _, r := range c.list.Items() {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Show returns record id, fetching it when the backend supports it.
func (c *Composer) Show(ctx context.Context, id string) (models.Record, error) {
	if err := c.guard.Guard(); err != nil {
		return nil, err
	}
	if c.d.Supports(resource.OpGet) {
		return c.backend.Get(ctx, c.d, id)
	}
	if r, ok := c.Record(id); ok {
		return r, nil
	}
	return nil, fmt.Errorf("%s %s: %w", c.d.Name, id, client.ErrNotFound)
}

func (c *Composer) requireList() error {
	if err := c.guard.Guard(); err != nil {
		return err
	}
	if c.state != StateList {
		return fmt.Errorf("finish or cancel the %s form first", c.state)
	}
	return nil
}

// LoadOptions fetches a picker collection.
func LoadOptions(ctx context.Context, backend client.Client, src *resource.OptionSource) ([]Option, error) {
	records, err := backend.ListPath(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	valueField := src.ValueField
	if valueField == "" {
		valueField = models.IDField
	}
	out := make([]Option, 0, len(records))
	for _, r := range records {
		labels := make([]string, 0, len(src.LabelField))
		for _, f := range src.LabelField {
			if v := r.Text(f); v != "" {
				labels = append(labels, v)
			}
		}
		out = append(out, Option{Value: r.Text(valueField), Label: strings.Join(labels, " / ")})
	}
	return out, nil
}

func quoteOptions(opts []string) string {
	quoted := make([]string, 0, len(opts))
	for _, o := range opts {
		quoted = append(quoted, "'"+o+"'")
	}
	return strings.Join(quoted, " ")
}

// idValue sends numeric ids as JSON numbers.
func idValue(id string) any {
	var n json.Number
	if json.Unmarshal([]byte(id), &n) == nil {
		return n
	}
	return id
}
