package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"globalfund/pkg/errorx"
)

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondResult(w http.ResponseWriter, status int, success bool, message string) {
	s.respondJSON(w, status, result{Success: success, Message: message})
}

// respondError maps the error taxonomy onto HTTP statuses. Anything that is
// not an errorx value has already been logged with detail and collapses to a
// generic 500.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	status := http.StatusInternalServerError
	switch errx.Code {
	case errorx.Validation:
		status = http.StatusBadRequest
	case errorx.NotFound:
		status = http.StatusNotFound
	case errorx.Conflict:
		status = http.StatusConflict
	case errorx.Unauthorized:
		status = http.StatusUnauthorized
	}

	s.respondResult(w, status, false, errx.Message)
}
