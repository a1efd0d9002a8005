// Package session owns the logged-in administrator's state.
//
// A Provider is created once per process: Init reads the persisted session,
// Save persists it after login and Clear tears it down on logout. Every
// other component reads the token through the provider instead of going to
// storage itself.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/repositories/metadata"
	"github.com/oceanticsports/oceantic-admin/internal/common"
	"github.com/oceanticsports/oceantic-admin/internal/dbx"
)

const prefix = "session."

const (
	keyToken    = prefix + "token"
	keyRole     = prefix + "role"
	keyFullName = prefix + "fullname"
	keyUserID   = prefix + "user_id"
	keyUsername = prefix + "username"
)

// Provider is safe for concurrent use.
type Provider struct {
	db *sql.DB

	mu      sync.RWMutex
	current models.Session
}

// NewProvider returns a provider persisting to db. A nil db keeps the
// session in memory only.
func NewProvider(db *sql.DB) *Provider {
	return &Provider{db: db}
}

// Init loads the persisted session, if any.
func (p *Provider) Init(ctx context.Context) error {
	if p.db == nil {
		return nil
	}
	values, err := metadata.NewSQLiteRepository(p.db).List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s := models.Session{
		Token:    string(values[keyToken]),
		Role:     string(values[keyRole]),
		FullName: string(values[keyFullName]),
		UserID:   string(values[keyUserID]),
		Username: string(values[keyUsername]),
	}

	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
	return nil
}

// Save replaces the persisted session in one transaction, then makes it
// current.
func (p *Provider) Save(ctx context.Context, s models.Session) error {
	if p.db != nil {
		err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := metadata.NewSQLiteRepository(tx)
			if err := repo.DeletePrefix(ctx, prefix); err != nil {
				return err
			}
			for key, value := range map[string]string{
				keyToken:    s.Token,
				keyRole:     s.Role,
				keyFullName: s.FullName,
				keyUserID:   s.UserID,
				keyUsername: s.Username,
			} {
				if err := repo.Set(ctx, key, []byte(value)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
	return nil
}

// Clear forgets the session in memory and in storage.
func (p *Provider) Clear(ctx context.Context) error {
	p.mu.Lock()
	p.current = models.Session{}
	p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	if err := metadata.NewSQLiteRepository(p.db).DeletePrefix(ctx, prefix); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Guard returns common.ErrNoSession unless a token is present. Presence is
// the only check; the backend still decides whether the token is valid.
func (p *Provider) Guard() error {
	if p.Token() == "" {
		return common.ErrNoSession
	}
	return nil
}

// Token returns the bearer token, or "" when logged out.
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current.Token
}

// Current returns a copy of the session.
func (p *Provider) Current() models.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Claims are token claims decoded for display. They are not verified and
// must never gate access.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the token without verifying it. ok is false for opaque
// tokens.
func (p *Provider) Claims() (Claims, bool) {
	token := p.Token()
	if token == "" {
		return Claims{}, false
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, false
	}

	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c, true
}
