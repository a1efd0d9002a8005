package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) add(ctx context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if err := p.BeginAdd(); err != nil {
		return err
	}
	return a.showForm(ctx, nil)
}

func (a *App) edit(ctx context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("edit <id>")
	}
	if err := p.BeginEdit(ctx, args[0]); err != nil {
		return err
	}
	return a.showForm(ctx, nil)
}

func (a *App) showForm(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	renderForm(a.out, p.Form())
	return nil
}

// set assigns a field; everything after the field name is the value, so
// "set title Heat 1 results" stores "Heat 1 results". Without a value the
// field is cleared.
func (a *App) set(_ context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return usageError("set <field> [value]")
	}
	return p.Form().Set(args[0], strings.Join(args[1:], " "))
}

func (a *App) file(_ context.Context, args []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("file <path>")
	}
	return p.Form().ReplaceFile(args[0])
}

func (a *App) removeFile(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	return p.Form().RemoveFile()
}

func (a *App) keepFile(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	return p.Form().KeepFile()
}

func (a *App) submit(ctx context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	if err := p.Submit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	renderList(a.out, p.Descriptor(), p.List())
	return nil
}

func (a *App) cancel(_ context.Context, _ []string) error {
	p, err := a.requirePage()
	if err != nil {
		return err
	}
	p.Cancel()
	return nil
}
