package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"inventoried/internal/domain"
)

const (
	stateCookie    = "oauth_state"
	redirectCookie = "post_login_redirect"
)

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oauth.Enabled {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Success: false, Error: "OAuth login is not configured"})
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.oauth.OAuth2.AuthCodeURL(state), http.StatusFound)
}

// handleSwaggerLogin lets the documentation UI start a login and come
// back to itself. The pending target rides a short-lived cookie that the
// callback consumes exactly once.
func (s *Server) handleSwaggerLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oauth.Enabled {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Success: false, Error: "OAuth login is not configured"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookie,
		Value:    "/api-docs",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
	http.Redirect(w, r, "/auth/google", http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oauth.Enabled {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Success: false, Error: "OAuth login is not configured"})
		return
	}

	// Provider-reported failure (user denied, etc.) ends the attempt.
	if r.URL.Query().Get("error") != "" {
		http.Redirect(w, r, "/auth/failure", http.StatusFound)
		return
	}

	state, err := r.Cookie(stateCookie)
	if err != nil || r.URL.Query().Get("state") != state.Value {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Success: false, Error: "Invalid OAuth state"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, MaxAge: -1, Path: "/"})

	token, err := s.oauth.OAuth2.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.storeError(w, "Failed to exchange token", err)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{Success: false, Error: "No id_token in provider response"})
		return
	}

	idToken, err := s.oauth.Provider.Verifier(&oidc.Config{ClientID: s.oauth.OAuth2.ClientID}).Verify(r.Context(), rawIDToken)
	if err != nil {
		s.storeError(w, "Failed to verify token", err)
		return
	}

	var profile domain.Profile
	if err := idToken.Claims(&profile); err != nil {
		s.storeError(w, "Failed to parse claims", err)
		return
	}

	sessionToken, err := s.auth.Login(r.Context(), profile)
	if err != nil {
		s.storeError(w, "Login failed", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.auth.SignCookie(sessionToken),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400,
	})

	// Consume the pending redirect, if the documentation UI set one.
	target := "/auth/protected"
	if c, err := r.Cookie(redirectCookie); err == nil && c.Value != "" {
		target = c.Value
		http.SetCookie(w, &http.Cookie{Name: redirectCookie, MaxAge: -1, Path: "/"})
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if token, ok := s.auth.VerifyCookie(cookie.Value); ok {
			_ = s.auth.Logout(r.Context(), token)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleAuthFailure(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusUnauthorized, errorEnvelope{Success: false, Error: "Failed to authenticate"})
}

// handleProtected is a sample probe for checking the login state.
func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	profile, err := s.sessionProfile(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorEnvelope{Success: false, Error: "Authentication required"})
		return
	}
	respondData(w, http.StatusOK, "", profile)
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
