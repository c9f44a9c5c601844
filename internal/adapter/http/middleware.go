package adapthttp

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"inventoried/internal/app"
	"inventoried/internal/domain"
)

type contextKey string

const profileContextKey contextKey = "profile"

const sessionCookie = "session"

// requireAuth admits only requests bearing a valid session cookie. It
// answers with a uniform 401 JSON body; API callers never see a redirect.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.sessionProfile(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorEnvelope{Success: false, Error: "Authentication required"})
			return
		}
		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionProfile resolves the profile for the request's session cookie,
// rejecting tampered cookies before any session lookup.
func (s *Server) sessionProfile(r *http.Request) (*domain.Profile, error) {
	if p, ok := r.Context().Value(profileContextKey).(*domain.Profile); ok {
		return p, nil
	}
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, err
	}
	token, ok := s.auth.VerifyCookie(cookie.Value)
	if !ok {
		return nil, app.ErrSessionNotFound
	}
	return s.auth.ValidateSession(r.Context(), token)
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  chimw.GetReqID(r.Context()),
		}).Info("request")
	})
}

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "HTTP request latency by method and route.",
	}, []string{"method", "route"})
)

// metricsMiddleware records per-route request counts and latency. Routes
// are labelled by chi pattern, not raw path, to bound cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
