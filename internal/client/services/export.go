package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oceanticsports/oceantic-admin/internal/client/archive"
	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/page"
	"github.com/oceanticsports/oceantic-admin/internal/client/repositories/exports"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/filex"
	"github.com/oceanticsports/oceantic-admin/internal/logging"
)

// Format is an event book export format.
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

type formatInfo struct {
	path   string
	prefix string
	ext    string
}

var formats = map[Format]formatInfo{
	FormatExcel: {path: "generateEventBookExcel", prefix: "startlist_", ext: ".xlsx"},
	FormatPDF:   {path: "generateEventBookPdf", prefix: "buku_acara_", ext: ".pdf"},
}

// ParseFormat accepts "excel"/"xlsx" and "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (want excel or pdf)", s)
}

// FileName returns the local name of an export, e.g.
// "startlist_open_cup_2025.xlsx".
func FileName(f Format, eventTitle string) string {
	info := formats[f]
	return info.prefix + filex.SafeName(eventTitle) + info.ext
}

// ExportResult locates a written export.
type ExportResult struct {
	Path       string
	Size       int
	ArchiveKey string
	ArchiveURL string
}

// ExportService downloads event books for events open for registration.
type ExportService struct {
	client   client.Client
	guard    page.Guard
	dir      string
	archiver archive.Archiver
	history  exports.Repository
	log      logging.Logger
}

// ErrNoHistory is returned by history operations when no store is attached.
var ErrNoHistory = errors.New("export history is not available")

// ExportOption configures an ExportService.
type ExportOption func(*ExportService)

// WithHistory records every export in r.
func WithHistory(r exports.Repository) ExportOption {
	return func(s *ExportService) { s.history = r }
}

// NewExportService writes exports under dir. archiver may be nil.
func NewExportService(c client.Client, guard page.Guard, dir string, archiver archive.Archiver, log logging.Logger, opts ...ExportOption) *ExportService {
	if log == nil {
		log = logging.Nop()
	}
	s := &ExportService{client: c, guard: guard, dir: dir, archiver: archiver, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events lists the events an event book can be generated for.
func (s *ExportService) Events(ctx context.Context) ([]page.Option, error) {
	if err := s.guard.Guard(); err != nil {
		return nil, err
	}
	return page.LoadOptions(ctx, s.client, resource.OpenEvents)
}

// Export generates the event book of eventID in format f, saves it and,
// when an archiver is configured, uploads a copy.
func (s *ExportService) Export(ctx context.Context, eventID string, f Format) (*ExportResult, error) {
	info, ok := formats[f]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", f)
	}

	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	title := ""
	for _, e := range events {
		if e.Value == eventID {
			title = e.Label
			break
		}
	}
	if title == "" {
		return nil, fmt.Errorf("event %q is not open for registration", eventID)
	}

	blob, err := s.client.Download(ctx, info.path, map[string]any{"eventId": eventID})
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", f, err)
	}

	name := FileName(f, title)
	path, err := filex.WriteFile(s.dir, name, blob.Data)
	if err != nil {
		return nil, err
	}
	res := &ExportResult{Path: path, Size: len(blob.Data)}
	s.log.Info(ctx, "export saved", "event", eventID, "format", string(f), "path", path)

	rec := &models.Export{
		EventID:       eventID,
		EventTitle:    title,
		Format:        string(f),
		Path:          path,
		Size:          int64(len(blob.Data)),
		ContentType:   blob.ContentType,
		ArchiveStatus: models.ArchiveNone,
		CreatedAt:     time.Now().UTC(),
	}
	if s.archiver != nil {
		rec.ArchiveStatus = models.ArchivePending
	}
	if s.history != nil {
		if err := s.history.Create(ctx, rec); err != nil {
			s.log.Warn(ctx, "export not recorded", "path", path, "error", err)
		}
	}

	if s.archiver != nil {
		key, url, err := s.archive(ctx, rec, blob.Data)
		if err != nil {
			return res, err
		}
		res.ArchiveKey = key
		res.ArchiveURL = url
	}
	return res, nil
}

// archive uploads data and, when rec was recorded, marks it archived.
func (s *ExportService) archive(ctx context.Context, rec *models.Export, data []byte) (string, string, error) {
	ar, err := s.archiver.Archive(ctx, filepath.Base(rec.Path), rec.ContentType, data)
	if err != nil {
		s.log.Warn(ctx, "archive failed", "path", rec.Path, "error", err)
		return "", "", err
	}
	if s.history != nil && rec.ID != 0 {
		if err := s.history.MarkArchived(ctx, rec.ID, ar.Key, ar.URL); err != nil {
			s.log.Warn(ctx, "archive not recorded", "id", rec.ID, "error", err)
		}
	}
	s.log.Info(ctx, "export archived", "key", ar.Key)
	return ar.Key, ar.URL, nil
}

// History returns the newest recorded exports, at most limit (all when
// limit <= 0).
func (s *ExportService) History(ctx context.Context, limit int) ([]models.Export, error) {
	if s.history == nil {
		return nil, ErrNoHistory
	}
	return s.history.List(ctx, limit)
}

// RetryArchive uploads every export whose archiving failed earlier. It
// keeps going past individual failures and returns how many succeeded
// along with the joined errors.
func (s *ExportService) RetryArchive(ctx context.Context) (int, error) {
	if s.history == nil {
		return 0, ErrNoHistory
	}
	if s.archiver == nil {
		return 0, errors.New("archiving is not configured")
	}

	pending, err := s.history.GetAllPendingArchive(ctx)
	if err != nil {
		return 0, err
	}

	var (
		done int
		errs []error
	)
	for i := range pending {
		rec := &pending[i]
		data, err := os.ReadFile(rec.Path)
		if err != nil {
			errs = append(errs, fmt.Errorf("export %d: %w", rec.ID, err))
			continue
		}
		if _, _, err := s.archive(ctx, rec, data); err != nil {
			errs = append(errs, fmt.Errorf("export %d: %w", rec.ID, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}
