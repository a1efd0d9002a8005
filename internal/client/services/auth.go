// Package services contains application services for the admin client.
// This file defines the authentication service: login restricted to
// administrators, logout and the who-am-i view of the current session.
package services

import (
	"context"
	"fmt"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/session"
	"github.com/oceanticsports/oceantic-admin/internal/common"
	"github.com/oceanticsports/oceantic-admin/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend; only the admin role is
//     accepted, and only then is the session persisted.
//   - Logout: forget the session locally.
//   - WhoAmI: the current session plus its decoded token claims.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (models.Session, error)
	Logout(ctx context.Context) error
	WhoAmI() (Identity, error)
}

// Identity is what the client knows about the logged-in administrator.
type Identity struct {
	Session   models.Session
	Claims    session.Claims
	HasClaims bool
}

type authService struct {
	client  client.Client
	session *session.Provider
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session provider.
func NewAuthService(c client.Client, s *session.Provider, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, session: s, log: log}
}

// Login wipes password after use. A non-admin account gets
// common.ErrForbiddenRole and leaves any existing session in place.
func (a *authService) Login(ctx context.Context, username string, password []byte) (models.Session, error) {
	defer common.WipeByteArray(password)

	res, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	if res.User.Role != common.AdminRole {
		a.log.Warn(ctx, "login rejected", "username", username, "role", res.User.Role)
		return models.Session{}, common.ErrForbiddenRole
	}

	s := models.Session{
		Token:    res.Token,
		Role:     res.User.Role,
		FullName: res.User.FullName,
		UserID:   models.ValueText(res.User.ID),
		Username: common.FirstNonEmpty(res.User.Username, username),
	}
	if err := a.session.Save(ctx, s); err != nil {
		return models.Session{}, err
	}
	a.log.Info(ctx, "logged in", "username", s.Username)
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// WhoAmI returns common.ErrNoSession when logged out.
func (a *authService) WhoAmI() (Identity, error) {
	if err := a.session.Guard(); err != nil {
		return Identity{}, err
	}
	claims, ok := a.session.Claims()
	return Identity{Session: a.session.Current(), Claims: claims, HasClaims: ok}, nil
}
