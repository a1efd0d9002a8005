package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var admin = models.Session{
	Token:    "tok",
	Role:     "admin",
	FullName: "Admin One",
	UserID:   "7",
	Username: "root",
}

func TestGuard_NoTokenIsNoSession(t *testing.T) {
	p := NewProvider(nil)
	require.ErrorIs(t, p.Guard(), common.ErrNoSession)

	require.NoError(t, p.Save(context.Background(), admin))
	require.NoError(t, p.Guard())
}

func TestSaveThenInit_RoundTripsAcrossProviders(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewProvider(db).Save(ctx, admin))

	p := NewProvider(db)
	require.NoError(t, p.Init(ctx))
	assert.Equal(t, admin, p.Current())
	assert.Equal(t, "tok", p.Token())
}

func TestSave_ReplacesPreviousSession(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	p := NewProvider(db)

	require.NoError(t, p.Save(ctx, admin))
	require.NoError(t, p.Save(ctx, models.Session{Token: "second", Role: "admin"}))

	fresh := NewProvider(db)
	require.NoError(t, fresh.Init(ctx))
	assert.Equal(t, models.Session{Token: "second", Role: "admin"}, fresh.Current())
}

func TestClear_ForgetsEverywhere(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	p := NewProvider(db)

	require.NoError(t, p.Save(ctx, admin))
	require.NoError(t, p.Clear(ctx))
	require.ErrorIs(t, p.Guard(), common.ErrNoSession)

	fresh := NewProvider(db)
	require.NoError(t, fresh.Init(ctx))
	assert.Equal(t, models.Session{}, fresh.Current())
}

func TestInit_EmptyStore(t *testing.T) {
	p := NewProvider(setupDB(t))
	require.NoError(t, p.Init(context.Background()))
	assert.ErrorIs(t, p.Guard(), common.ErrNoSession)
}

func TestSave_CommitFailureKeepsOldSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	p := NewProvider(db)
	err = p.Save(context.Background(), admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
	assert.Equal(t, "", p.Token())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInit_ErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT key, value FROM metadata`).WillReturnError(errors.New("locked"))

	err = NewProvider(db).Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load session")
}

func TestClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	p := NewProvider(nil)
	require.NoError(t, p.Save(context.Background(), models.Session{Token: token}))

	c, ok := p.Claims()
	require.True(t, ok)
	assert.Equal(t, "7", c.Subject)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.False(t, c.Expired(time.Now()))
	assert.True(t, c.Expired(exp.Add(time.Minute)))
}

func TestClaims_OpaqueTokenStillGuards(t *testing.T) {
	p := NewProvider(nil)
	require.NoError(t, p.Save(context.Background(), models.Session{Token: "opaque"}))

	_, ok := p.Claims()
	assert.False(t, ok)
	assert.NoError(t, p.Guard())
}

func TestClaims_ExpiredTokenStillPassesGuard(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	p := NewProvider(nil)
	require.NoError(t, p.Save(context.Background(), models.Session{Token: token}))

	c, ok := p.Claims()
	require.True(t, ok)
	assert.True(t, c.Expired(time.Now()))
	assert.NoError(t, p.Guard())
}
