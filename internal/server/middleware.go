package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeyAdminUsername contextKey = "admin_username"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAdmin gates admin-only operations behind the session cookie. JSON
// endpoints get a Forbidden payload; anything else is sent to the login view.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.readSession(r)
		if !ok || !session.LoggedIn {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				s.respondJSON(w, http.StatusForbidden, map[string]string{"message": "Unauthorized access."})
				return
			}
			http.Redirect(w, r, "/admin_login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyAdminUsername, session.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) readSession(r *http.Request) (types.AdminSession, bool) {
	cookie, err := r.Cookie(s.config.SessionCookieName)
	if err != nil {
		return types.AdminSession{}, false
	}

	var session types.AdminSession
	if err := s.cookie.Decode(s.config.SessionCookieName, cookie.Value, &session); err != nil {
		s.logger.WithError(err).Debug("failed to decode session cookie")
		return types.AdminSession{}, false
	}

	return session, true
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
