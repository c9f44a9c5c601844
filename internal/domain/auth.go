package domain

import (
	"context"
	"time"
)

// Profile is the identity returned by the OAuth provider. It lives only
// in the session; no persisted User record is created or linked at login.
type Profile struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Session represents one authenticated browser session.
type Session struct {
	Token     string
	Profile   Profile
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionStore is the port for session persistence. Sessions are
// ephemeral and never written to the record store.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
