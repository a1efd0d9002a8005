package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/oceanticsports/oceantic-admin/internal/client/services"
)

func (a *App) events(ctx context.Context, _ []string) error {
	opts, err := a.exports.Events(ctx)
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		fmt.Fprintln(a.out, "No events open for registration.")
		return nil
	}
	tw := newTable(a.out)
	for _, o := range opts {
		fmt.Fprintf(tw, "  %s\t%s\n", o.Value, o.Label)
	}
	return tw.Flush()
}

// export downloads an event book. Without an event id the open events are
// listed and the operator is asked to pick one.
func (a *App) export(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("export <excel|pdf> [event id]")
	}
	f, err := services.ParseFormat(args[0])
	if err != nil {
		return err
	}

	var eventID string
	if len(args) == 2 {
		eventID = args[1]
	} else {
		if err := a.events(ctx, nil); err != nil {
			return err
		}
		eventID, err = getSimpleText(a.reader, "Enter event id", a.out)
		if err != nil {
			return err
		}
		if eventID == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	res, err := a.exports.Export(ctx, eventID, f)
	if res == nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", res.Path, res.Size)
	if res.ArchiveURL != "" {
		fmt.Fprintf(a.out, "Archived as %s\n%s\n", res.ArchiveKey, res.ArchiveURL)
	}
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	limit := 10
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usageError("exports [n]")
		}
		limit = n
	}
	hist, err := a.exports.History(ctx, limit)
	if err != nil {
		return err
	}
	if len(hist) == 0 {
		fmt.Fprintln(a.out, "No exports yet.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tWHEN\tEVENT\tFORMAT\tARCHIVE\tPATH")
	for _, e := range hist {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.CreatedAt.Local().Format(time.DateTime),
			cell(e.EventTitle), e.Format, e.ArchiveStatus, e.Path)
	}
	return tw.Flush()
}

func (a *App) retryArchive(ctx context.Context, _ []string) error {
	n, err := a.exports.RetryArchive(ctx)
	fmt.Fprintf(a.out, "Archived %d export(s).\n", n)
	return err
}
