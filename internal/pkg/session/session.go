// internal/pkg/session/session.go
package session

// Mode indicates which cart backend a session operates against
type Mode string

const (
	ModeAnonymous     Mode = "anonymous"
	ModeAuthenticated Mode = "authenticated"
)

// Session is the explicit session context handed to the synchronizer and
// checkout controller. It replaces ad-hoc reads of ambient auth state: the
// bearer token is carried here and only ever read, never refreshed.
type Session struct {
	Mode        Mode
	UserID      uint
	Email       string
	SessionID   string // anonymous cart key, from the session_id cookie
	BearerToken string
}

// Anonymous creates a session for a guest identified by a session ID
func Anonymous(sessionID string) *Session {
	return &Session{
		Mode:      ModeAnonymous,
		SessionID: sessionID,
	}
}

// Authenticated creates a session for a logged-in user
func Authenticated(userID uint, email, bearerToken string) *Session {
	return &Session{
		Mode:        ModeAuthenticated,
		UserID:      userID,
		Email:       email,
		BearerToken: bearerToken,
	}
}

// IsAuthenticated reports whether the session carries a logged-in user
func (s *Session) IsAuthenticated() bool {
	return s.Mode == ModeAuthenticated
}
