package models

// Session is the authenticated administrator state kept between runs.
type Session struct {
	Token    string
	Role     string
	FullName string
	UserID   string
	Username string
}

// Valid reports whether a token is present. Presence is all the client can
// know; the backend decides whether the token is still accepted.
func (s Session) Valid() bool {
	return s.Token != ""
}

// LoginResult is the backend answer to a successful login.
type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID       any    `json:"id"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
