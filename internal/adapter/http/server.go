// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"inventoried/internal/app"
	"inventoried/internal/config"
	"inventoried/internal/openapi"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	items    *app.ItemService
	users    *app.UserService
	auth     *app.AuthService
	oauth    *OAuthConfig
	cfg      *config.Config
	log      *logrus.Logger
	validate *validator.Validate
	doc      *openapi.Document
}

// New creates a Server wired to the given application services.
func New(items *app.ItemService, users *app.UserService, auth *app.AuthService, oauth *OAuthConfig, cfg *config.Config, log *logrus.Logger) *Server {
	return &Server{
		items:    items,
		users:    users,
		auth:     auth,
		oauth:    oauth,
		cfg:      cfg,
		log:      log,
		validate: newValidator(),
	}
}

// Handler builds the routing table once and returns the root
// http.Handler. The API document is assembled from the annotations
// registered alongside each route.
func (s *Server) Handler() http.Handler {
	s.doc = s.newDocument()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(metricsMiddleware)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google", s.handleGoogleLogin)
		r.Get("/google/callback", s.handleGoogleCallback)
		r.Get("/logout", s.handleLogout)
		r.Get("/failure", s.handleAuthFailure)
		r.Get("/protected", s.handleProtected)
		r.Get("/swagger-login", s.handleSwaggerLogin)
	})

	r.Get("/api-docs", s.handleSwaggerUI)
	r.Get("/api-docs/openapi.json", s.handleOpenAPIJSON)
	r.Get("/api-docs/openapi.yaml", s.handleOpenAPIYAML)

	r.Group(func(r chi.Router) {
		if s.oauth.Enabled {
			r.Use(s.requireAuth)
		}

		s.route(r, http.MethodGet, "/items", s.handleListItems, listOp("Items", "Returns the list of all items", "Item"))
		s.route(r, http.MethodGet, "/items/{id}", s.handleGetItem, getOp("Items", "Get the item by id", "Item", "item"))
		s.route(r, http.MethodPost, "/items", s.handleCreateItem, createOp("Items", "Create a new item", "Item", "ItemInput"))
		s.route(r, http.MethodPut, "/items/{id}", s.handleUpdateItem, updateOp("Items", "Update the item by id", "Item", "ItemUpdate", "item"))
		s.route(r, http.MethodDelete, "/items/{id}", s.handleDeleteItem, deleteOp("Items", "Remove the item by id", "Item", "item"))

		s.route(r, http.MethodGet, "/users", s.handleListUsers, listOp("Users", "Returns the list of all users", "User"))
		s.route(r, http.MethodGet, "/users/{id}", s.handleGetUser, getOp("Users", "Get the user by id", "User", "user"))
		s.route(r, http.MethodPost, "/users", s.handleCreateUser, createOp("Users", "Create a new user", "User", "UserInput"))
		s.route(r, http.MethodPut, "/users/{id}", s.handleUpdateUser, updateOp("Users", "Update the user by id", "User", "UserUpdate", "user"))
		s.route(r, http.MethodDelete, "/users/{id}", s.handleDeleteUser, deleteOp("Users", "Remove the user by id", "User", "user"))
	})

	return r
}

// route mounts a handler and records its documentation annotation in
// the same breath, keeping the two from drifting apart.
func (s *Server) route(r chi.Router, method, pattern string, h http.HandlerFunc, op openapi.Operation) {
	r.MethodFunc(method, pattern, h)
	s.doc.AddOperation(pattern, strings.ToLower(method), op)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Inventoried API",
		"docs":    "/api-docs",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// storeError reports an unexpected store or runtime failure. The raw
// error text is included in the payload; see the hardening note in
// DESIGN.md.
func (s *Server) storeError(w http.ResponseWriter, kind string, err error) {
	s.log.WithError(err).Error(kind)
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{Success: false, Error: kind, Message: err.Error()})
}
