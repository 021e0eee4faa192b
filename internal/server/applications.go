package server

import (
	"net/http"

	"globalfund/internal/domain"
	"globalfund/pkg/types"

	"github.com/alexedwards/flow"
)

const maxUploadBytes = 32 << 20 // 32MB

func (s *Service) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondResult(w, http.StatusBadRequest, false, "Invalid form payload.")
		return
	}

	var form types.ApplicationForm
	if err := decoder.Decode(&form, r.MultipartForm.Value); err != nil {
		s.logger.WithError(err).Error("failed to decode application form")
		s.respondResult(w, http.StatusBadRequest, false, "Invalid form payload.")
		return
	}

	fileHeaders := r.MultipartForm.File["idCard"]
	if len(fileHeaders) == 0 {
		s.respondResult(w, http.StatusBadRequest, false, "ID Card upload is required.")
		return
	}

	uploads := make([]domain.Upload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if header.Filename == "" {
			continue
		}

		file, err := header.Open()
		if err != nil {
			s.logger.WithError(err).Error("failed to open uploaded id document")
			s.respondResult(w, http.StatusInternalServerError, false, "An internal server error occurred.")
			return
		}
		defer file.Close()

		uploads = append(uploads, domain.Upload{Filename: header.Filename, Content: file})
	}

	submitted, err := s.apps.Submit(r.Context(), form, uploads)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondResult(w, http.StatusCreated, true, submitted.Message)
}

func (s *Service) handleAdminApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.apps.Applications(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"applications": applications,
	})
}

func (s *Service) handleAdminApplicationDetail(w http.ResponseWriter, r *http.Request) {
	applicationID := flow.Param(r.Context(), "id")

	application, err := s.apps.Application(r.Context(), applicationID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"application": application,
	})
}

func (s *Service) handleApproveApplication(w http.ResponseWriter, r *http.Request) {
	applicationID := flow.Param(r.Context(), "id")

	approved, err := s.apps.Approve(r.Context(), applicationID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondResult(w, http.StatusOK, true, approved.Message)
}

func (s *Service) handleRejectApplication(w http.ResponseWriter, r *http.Request) {
	applicationID := flow.Param(r.Context(), "id")

	message, err := s.apps.Reject(r.Context(), applicationID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondResult(w, http.StatusOK, true, message)
}
