package app

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"inventoried/internal/domain"
)

var (
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

const sessionTTL = 24 * time.Hour

// AuthService manages browser sessions created by the OAuth login flow.
// The session carries the provider profile only; no stored User record is
// created or linked at login.
type AuthService struct {
	sessions domain.SessionStore
	secret   []byte
}

// NewAuthService creates a new authentication service. The secret signs
// session cookies so a tampered token is rejected without a store lookup.
func NewAuthService(sessions domain.SessionStore, secret string) *AuthService {
	return &AuthService{sessions: sessions, secret: []byte(secret)}
}

// Login creates a session for a verified provider profile and returns
// the session token.
func (s *AuthService) Login(ctx context.Context, profile domain.Profile) (string, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		Profile:   profile,
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession returns the profile bound to a live session token.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Profile, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return &session.Profile, nil
}

// SignCookie returns the cookie form of a token: token.signature.
func (s *AuthService) SignCookie(token string) string {
	return token + "." + s.sign(token)
}

// VerifyCookie splits and checks a cookie value, returning the embedded
// token when the signature matches.
func (s *AuthService) VerifyCookie(value string) (string, bool) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(token))) {
		return "", false
	}
	return token, true
}

func (s *AuthService) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
