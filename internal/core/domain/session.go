package domain

import "time"

// SessionState is the login state of a client.
type SessionState int

const (
	LoggedOut SessionState = iota
	LoggedIn
)

func (s SessionState) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Session is the per-request identity rebuilt from a verified token.
// The zero value is a logged-out session.
type Session struct {
	State     SessionState `json:"-"`
	UserID    string       `json:"id"`
	Name      string       `json:"name"`
	Role      string       `json:"role"`
	TokenID   string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewSession moves a user into the LoggedIn state.
func NewSession(u *User, tokenID string, expiresAt time.Time) Session {
	return Session{
		State:     LoggedIn,
		UserID:    u.ID,
		Name:      u.Name,
		Role:      u.Role,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}
}

func (s Session) IsLoggedIn() bool { return s.State == LoggedIn && s.UserID != "" }

func (s Session) IsMaster() bool { return s.IsLoggedIn() && s.Role == RoleMaster }

// Logout returns the LoggedOut session. Nothing from s survives.
func (s Session) Logout() Session { return Session{} }
