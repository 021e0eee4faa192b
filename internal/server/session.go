package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := s.auth.Login(r.Context(), req.Username, req.Password); err != nil {
		var errx errorx.Error
		status := http.StatusUnauthorized
		message := "Invalid username or password"
		if errors.As(err, &errx) {
			message = errx.Message
			if errx.Code == errorx.Validation {
				status = http.StatusBadRequest
			}
			if errx.Code == errorx.Internal {
				status = http.StatusInternalServerError
			}
		}
		s.respondJSON(w, status, map[string]string{"message": message})
		return
	}

	if err := s.setSession(w, types.AdminSession{LoggedIn: true, Username: req.Username}); err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Login failed"})
		return
	}

	s.logger.WithFields(logrus.Fields{"username": req.Username}).Info("admin logged in")
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/admin_login", http.StatusSeeOther)
}

func (s *Service) setSession(w http.ResponseWriter, session types.AdminSession) error {
	encoded, err := s.cookie.Encode(s.config.SessionCookieName, session)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	return nil
}

func (s *Service) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}
