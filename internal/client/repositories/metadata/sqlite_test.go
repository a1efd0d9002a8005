package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session.token", []byte("abc")))

	v, err := r.Get(ctx, "session.token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestList_FiltersByPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session.token", []byte("t")))
	require.NoError(t, r.Set(ctx, "session.role", []byte("admin")))
	require.NoError(t, r.Set(ctx, "sessionx", []byte("other")))
	require.NoError(t, r.Set(ctx, "ui.page", []byte("3")))

	m, err := r.List(ctx, "session.")
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte("t"), m["session.token"])
	assert.Equal(t, []byte("admin"), m["session.role"])

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestList_PrefixWildcardsAreLiteral(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a_b", []byte{1}))
	require.NoError(t, r.Set(ctx, "axb", []byte{2}))

	m, err := r.List(ctx, "a_")
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Contains(t, m, "a_b")
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestDeletePrefix_KeepsOtherKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session.token", []byte{1}))
	require.NoError(t, r.Set(ctx, "session.role", []byte{2}))
	require.NoError(t, r.Set(ctx, "ui.page", []byte{3}))
	require.NoError(t, r.DeletePrefix(ctx, "session."))

	m, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"ui.page": {3}}, m)
}

func TestGet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	v, err := r.Get(context.Background(), "k")
	require.Error(t, err)
	require.Nil(t, v)
	require.Contains(t, err.Error(), "failed to get metadata[k]")
}

func TestSet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	err := r.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set metadata[k]")
}

func TestDelete_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	err := r.Delete(context.Background(), "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to delete metadata[k]")
}

func TestDeletePrefix_DBErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM metadata WHERE key LIKE`).
		WithArgs("session.%").
		WillReturnError(errors.New("boom"))

	err = NewSQLiteRepository(db).DeletePrefix(context.Background(), "session.")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to delete metadata[session.*]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScanErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key"}).AddRow("only-one-column")
	mock.ExpectQuery(`SELECT key, value FROM metadata`).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).List(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to scan metadata row")
}

func TestList_RowsErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", []byte{1}).
		RowError(0, errors.New("iteration failed"))
	mock.ExpectQuery(`SELECT key, value FROM metadata`).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).List(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to iterate metadata rows")
}

func TestList_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.List(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to list metadata")
}
