package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/page"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

func (a *App) resources(_ context.Context, _ []string) error {
	tw := newTable(a.out)
	for _, name := range a.registry.Names() {
		d, _ := a.registry.Lookup(name)
		scope := ""
		if d.Dependent() {
			scope = "per " + strings.ToLower(d.Parent.Label)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", name, d.Title, scope)
	}
	return tw.Flush()
}

// use mounts the page of a resource. The previous page, with its search,
// filter and form, is discarded.
func (a *App) use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("use <resource>")
	}
	d, err := a.registry.Lookup(args[0])
	if err != nil {
		return err
	}

	p := page.New(d, a.api, a.session, page.Config{PageSize: a.cfg.PageSize, Logger: a.log})
	if err := p.Mount(ctx); err != nil {
		return err
	}
	a.page = p

	fmt.Fprintln(a.out, d.Title)
	if d.Dependent() {
		if p.ParentID() == "" {
			fmt.Fprintf(a.out, "No %s available.\n", strings.ToLower(d.Parent.Label))
			return nil
		}
		fmt.Fprintf(a.out, "%s: %s\n", d.Parent.Label, a.parentLabel(p))
	}
	renderList(a.out, d, p.List())
	return nil
}

func (a *App) parentLabel(p *page.Composer) string {
	for _, o := range p.ParentOptions() {
		if o.Value == p.ParentID() {
			return o.Label
		}
	}
	return p.ParentID()
}

func (a *App) parents(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if !p.Descriptor().Dependent() {
		return fmt.Errorf("%s has no parent: %w", p.Descriptor().Name, common.ErrUnsupportedOperation)
	}
	tw := newTable(a.out)
	for _, o := range p.ParentOptions() {
		mark := " "
		if o.Value == p.ParentID() {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", mark, o.Value, o.Label)
	}
	return tw.Flush()
}

func (a *App) parent(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("parent <id>")
	}
	if err := p.SelectParent(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", p.Descriptor().Parent.Label, a.parentLabel(p))
	renderList(a.out, p.Descriptor(), p.List())
	return nil
}

func (a *App) list(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	renderList(a.out, p.Descriptor(), p.List())
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	p.List().SetSearch(strings.Join(args, " "))
	return a.list(ctx, nil)
}

func (a *App) filter(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if err := p.List().SetFilter(strings.Join(args, " ")); err != nil {
		return err
	}
	return a.list(ctx, nil)
}

func (a *App) categories(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	lv := p.List()
	if lv.FilterField() == "" {
		return fmt.Errorf("%s filter: %w", p.Descriptor().Name, common.ErrUnsupportedOperation)
	}
	for _, c := range lv.Categories() {
		fmt.Fprintln(a.out, " ", c)
	}
	return nil
}

func (a *App) gotoPage(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError("page <n>")
	}
	p.List().SetPage(n)
	return a.list(ctx, nil)
}

func (a *App) next(ctx context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	p.List().Next()
	return a.list(ctx, nil)
}

func (a *App) prev(ctx context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	p.List().Prev()
	return a.list(ctx, nil)
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if err := p.Refresh(ctx); err != nil {
		return err
	}
	return a.list(ctx, nil)
}

func (a *App) show(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("show <id>")
	}
	r, err := p.Show(ctx, args[0])
	if err != nil {
		return err
	}
	renderRecord(a.out, r)
	return nil
}

// proof prints the absolute URL of the file attached to a record, such as
// a payment proof or an article image.
func (a *App) proof(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("proof <id>")
	}
	d := p.Descriptor()
	field := d.AssetField
	if field == "" && d.Files != nil {
		field = d.Files.URLField
	}
	if field == "" {
		return fmt.Errorf("%s files: %w", d.Name, common.ErrUnsupportedOperation)
	}

	r, err := p.Show(ctx, args[0])
	if err != nil {
		return err
	}
	ref := r.Text(field)
	if ref == "" {
		fmt.Fprintln(a.out, "No file attached.")
		return nil
	}
	fmt.Fprintln(a.out, client.AssetURL(a.cfg.APIBaseURL, a.cfg.AssetBaseURL, ref))
	return nil
}

// delete removes a record after the operator confirms.
func (a *App) delete(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("delete <id>")
	}
	id := args[0]
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s #%s?", p.Descriptor().Title, id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := p.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	renderList(a.out, p.Descriptor(), p.List())
	return nil
}

func (a *App) setStatus(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError("status <id> <value>")
	}
	if err := p.UpdateStatus(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Status updated.")
	return nil
}
