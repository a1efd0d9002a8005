package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/oceanticsports/oceantic-admin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// login authenticates as an administrator. The username may be given as an
// argument; the password is always read without echo and wiped afterwards.
func (a *App) login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		u, err := getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
		username = u
	}
	if username == "" {
		return usageError("login [username]")
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.page = nil
	fmt.Fprintf(a.out, "Welcome, %s.\n", common.FirstNonEmpty(s.FullName, s.Username))
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.page = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	id, err := a.auth.WhoAmI()
	if err != nil {
		return err
	}
	s := id.Session
	fmt.Fprintf(a.out, "Name:     %s\n", s.FullName)
	fmt.Fprintf(a.out, "Username: %s\n", s.Username)
	fmt.Fprintf(a.out, "Role:     %s\n", s.Role)
	fmt.Fprintf(a.out, "User ID:  %s\n", s.UserID)
	if id.HasClaims && !id.Claims.ExpiresAt.IsZero() {
		state := "valid"
		if id.Claims.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Token:    %s until %s\n", state, id.Claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
