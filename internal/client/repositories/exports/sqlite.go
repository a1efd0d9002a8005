package exports

import (
	"context"
	"fmt"
	"time"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const columns = `id, event_id, event_title, format, path, size, content_type,
	archive_status, archive_key, archive_url, created_at`

func (r *SQLiteRepository) Create(ctx context.Context, e *models.Export) error {
	if e.ArchiveStatus == "" {
		e.ArchiveStatus = models.ArchiveNone
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO exports (event_id, event_title, format, path, size, content_type,
			archive_status, archive_key, archive_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, e.EventID, e.EventTitle, e.Format, e.Path, e.Size, e.ContentType,
		e.ArchiveStatus, e.ArchiveKey, e.ArchiveURL, e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get export id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.Export, error) {
	query := `SELECT ` + columns + ` FROM exports ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.query(ctx, query, args...)
}

func (r *SQLiteRepository) GetAllPendingArchive(ctx context.Context) ([]models.Export, error) {
	query := `SELECT ` + columns + ` FROM exports WHERE archive_status = ? ORDER BY id`
	return r.query(ctx, query, models.ArchivePending)
}

func (r *SQLiteRepository) MarkArchived(ctx context.Context, id int64, key, url string) error {
	query := `UPDATE exports SET archive_status = ?, archive_key = ?, archive_url = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, models.ArchiveComplete, key, url, id)
	if err != nil {
		return fmt.Errorf("failed to mark export %d archived: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("export %d not found", id)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Export, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	var out []models.Export
	for rows.Next() {
		var (
			e       models.Export
			created string
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.EventTitle, &e.Format, &e.Path, &e.Size, &e.ContentType,
			&e.ArchiveStatus, &e.ArchiveKey, &e.ArchiveURL, &created); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("export %d: bad created_at %q: %w", e.ID, created, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}
	return out, nil
}
