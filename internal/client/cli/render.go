package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/oceanticsports/oceantic-admin/internal/client/form"
	"github.com/oceanticsports/oceantic-admin/internal/client/listview"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
)

const maxCell = 40

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxCell {
		return string(r[:maxCell-3]) + "..."
	}
	return s
}

func columnLabel(d *resource.Descriptor, name string) string {
	if f, ok := d.Field(name); ok && f.Label != "" {
		return strings.ToUpper(f.Label)
	}
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

// renderList prints the visible page of lv followed by a paging footer.
func renderList(w io.Writer, d *resource.Descriptor, lv *listview.Controller) {
	rows := lv.Visible()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No records.")
	} else {
		cols := d.ListColumns()
		tw := newTable(w)
		labels := make([]string, len(cols))
		for i, c := range cols {
			labels[i] = columnLabel(d, c)
		}
		fmt.Fprintln(tw, strings.Join(labels, "\t"))
		for _, r := range rows {
			vals := make([]string, len(cols))
			for i, c := range cols {
				vals[i] = cell(r.Text(c))
			}
			fmt.Fprintln(tw, strings.Join(vals, "\t"))
		}
		_ = tw.Flush()
	}

	footer := fmt.Sprintf("Page %d of %d (%d of %d records)", lv.Page(), lv.TotalPages(), len(lv.Filtered()), lv.Total())
	if q := lv.Search(); q != "" {
		footer += fmt.Sprintf(", search %q", q)
	}
	if f := lv.Filter(); f != "" {
		footer += fmt.Sprintf(", %s = %q", lv.FilterField(), f)
	}
	fmt.Fprintln(w, footer)
}

// renderRecord prints every field of r, one per line.
func renderRecord(w io.Writer, r models.Record) {
	tw := newTable(w)
	for _, k := range r.Keys() {
		fmt.Fprintf(tw, "%s:\t%s\n", k, r.Text(k))
	}
	_ = tw.Flush()
}

// renderForm prints the open form with its current values.
func renderForm(w io.Writer, fc *form.Controller) {
	d := fc.Descriptor()
	title := "New " + d.Title
	if fc.Mode() == form.ModeEdit {
		title = fmt.Sprintf("Edit %s #%s", d.Title, fc.ID())
	}
	fmt.Fprintln(w, title)

	tw := newTable(w)
	if d.Dependent() {
		fmt.Fprintf(tw, "  %s\t(%s)\t%s\n", d.Parent.Label, d.Parent.Field, fc.ParentID())
	}
	for _, f := range fc.Fields() {
		label := f.Label
		if f.Required {
			label += " *"
		}
		value := fc.Value(f.Name)
		if f.Kind == resource.KindPassword && value != "" {
			value = "********"
		}
		hint := f.Kind.String()
		if len(f.Options) > 0 {
			hint = strings.Join(f.Options, " | ")
		}
		fmt.Fprintf(tw, "  %s\t(%s)\t%s\t[%s]\n", label, f.Name, value, hint)
	}
	_ = tw.Flush()

	if d.HasFile() {
		action, path, url := fc.File()
		switch action {
		case form.FileReplace:
			fmt.Fprintf(w, "  File: upload %s\n", path)
		case form.FileRemove:
			fmt.Fprintln(w, "  File: remove on submit")
		default:
			if url == "" {
				url = "none"
			}
			fmt.Fprintf(w, "  File: %s\n", url)
		}
	}
}
