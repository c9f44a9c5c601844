package adapthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventoried/internal/adapter/memory"
	"inventoried/internal/app"
	"inventoried/internal/config"
	"inventoried/internal/domain"
)

// envelope covers every response shape the API produces; unused fields
// stay zero.
type envelope struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details"`
	Data    json.RawMessage     `json:"data"`
}

func newTestServer(t *testing.T, items domain.ItemRepository, users domain.UserRepository, oauthEnabled bool) (http.Handler, *app.AuthService) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	auth := app.NewAuthService(memory.NewSessionStore(), "test-secret")
	cfg := &config.Config{
		Addr:        ":8080",
		Environment: "development",
		BaseURL:     "http://localhost:8080",
		LogLevel:    "info",
	}
	srv := New(app.NewItemService(items), app.NewUserService(users), auth, &OAuthConfig{Enabled: oauthEnabled}, cfg, log)
	return srv.Handler(), auth
}

func do(t *testing.T, h http.Handler, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	}
	return rec, env
}

func TestRootAndHealth(t *testing.T) {
	db := memory.New()
	h, _ := newTestServer(t, db, db.NewUserRepo(), false)

	rec, env := do(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

// guardRepo fails the test on any store access. It backs the tests that
// assert a request is rejected before reaching the store.
type guardRepo struct{ t *testing.T }

func (g guardRepo) List(context.Context) ([]domain.Item, error) {
	g.t.Fatal("store accessed")
	return nil, nil
}

func (g guardRepo) GetByID(context.Context, string) (*domain.Item, error) {
	g.t.Fatal("store accessed")
	return nil, nil
}

func (g guardRepo) Create(context.Context, *domain.Item) error {
	g.t.Fatal("store accessed")
	return nil
}

func (g guardRepo) Update(context.Context, string, domain.ItemPatch, time.Time) (*domain.Item, error) {
	g.t.Fatal("store accessed")
	return nil, nil
}

func (g guardRepo) Delete(context.Context, string) (*domain.Item, error) {
	g.t.Fatal("store accessed")
	return nil, nil
}

func TestMalformedIDRejectedBeforeStore(t *testing.T) {
	db := memory.New()
	h, _ := newTestServer(t, guardRepo{t: t}, db.NewUserRepo(), false)

	for _, id := range []string{"abc", "507f1f77bcf86cd79943901", "507f1f77bcf86cd79943901g"} {
		rec, env := do(t, h, http.MethodGet, "/items/"+id, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
		require.Len(t, env.Details, 1)
		assert.Equal(t, "id", env.Details[0].Field)
		assert.Equal(t, "Invalid item ID", env.Details[0].Message)
	}

	// Same guard applies to update and delete.
	rec, _ := do(t, h, http.MethodPut, "/items/abc", map[string]any{"price": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = do(t, h, http.MethodDelete, "/items/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthGate(t *testing.T) {
	h, auth := newTestServer(t, guardRepo{t: t}, memory.New().NewUserRepo(), true)

	// No cookie: uniform 401 JSON, no redirect, no store access.
	rec, env := do(t, h, http.MethodGet, "/items", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Authentication required", env.Error)
	assert.Empty(t, rec.Header().Get("Location"))

	// Tampered cookie: same answer.
	rec, env = do(t, h, http.MethodGet, "/items", nil, &http.Cookie{Name: "session", Value: "forged.signature"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", env.Error)

	// A real session passes through to the handler.
	db := memory.New()
	h, auth = newTestServer(t, db, db.NewUserRepo(), true)
	token, err := auth.Login(context.Background(), domain.Profile{Subject: "sub-1", Email: "alice@example.com"})
	require.NoError(t, err)

	rec, env = do(t, h, http.MethodGet, "/items", nil, &http.Cookie{Name: "session", Value: auth.SignCookie(token)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestAuthRoutesWhenDisabled(t *testing.T) {
	db := memory.New()
	h, _ := newTestServer(t, db, db.NewUserRepo(), false)

	rec, env := do(t, h, http.MethodGet, "/auth/google", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "OAuth login is not configured", env.Error)

	// The API itself stays open.
	rec, _ = do(t, h, http.MethodGet, "/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedProbe(t *testing.T) {
	db := memory.New()
	h, auth := newTestServer(t, db, db.NewUserRepo(), true)

	rec, _ := do(t, h, http.MethodGet, "/auth/protected", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.Login(context.Background(), domain.Profile{Subject: "sub-1", Name: "Alice"})
	require.NoError(t, err)
	rec, env := do(t, h, http.MethodGet, "/auth/protected", nil, &http.Cookie{Name: "session", Value: auth.SignCookie(token)})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Alice", profile.Name)
}

func TestLogoutClearsSession(t *testing.T) {
	db := memory.New()
	h, auth := newTestServer(t, db, db.NewUserRepo(), true)

	token, err := auth.Login(context.Background(), domain.Profile{Subject: "sub-1"})
	require.NoError(t, err)
	cookie := &http.Cookie{Name: "session", Value: auth.SignCookie(token)}

	rec, _ := do(t, h, http.MethodGet, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	// The session is gone; the old cookie no longer admits requests.
	rec, _ = do(t, h, http.MethodGet, "/items", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
