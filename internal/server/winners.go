package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"globalfund/internal/domain"
	"globalfund/pkg/types"

	"github.com/alexedwards/flow"
)

// winnerPayload is a winner record with the image reference resolved to a
// servable URL (placeholder when absent).
type winnerPayload struct {
	*types.Winner
	ImageURL string `json:"image_url"`
}

func (s *Service) winnerPayloads(winners []*types.Winner) []winnerPayload {
	payloads := make([]winnerPayload, 0, len(winners))
	for _, winner := range winners {
		payloads = append(payloads, winnerPayload{
			Winner:   winner,
			ImageURL: s.winners.ImageURL(winner.ImagePath),
		})
	}
	return payloads
}

func (s *Service) handleAdminWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := s.winners.Winners(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"winners": s.winnerPayloads(winners),
	})
}

func (s *Service) handlePublicWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := s.winners.Winners(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, s.winnerPayloads(winners))
}

func (s *Service) handleSearchWinners(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		s.respondJSON(w, http.StatusOK, []winnerPayload{})
		return
	}

	winners, err := s.winners.Search(r.Context(), query)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, s.winnerPayloads(winners))
}

func (s *Service) handleCreateWinner(w http.ResponseWriter, r *http.Request) {
	s.handleWinnerSubmission(w, r, "")
}

func (s *Service) handleUpdateWinner(w http.ResponseWriter, r *http.Request) {
	s.handleWinnerSubmission(w, r, flow.Param(r.Context(), "id"))
}

func (s *Service) handleWinnerSubmission(w http.ResponseWriter, r *http.Request, winnerID string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondResult(w, http.StatusBadRequest, false, "Invalid form payload.")
		return
	}

	var form types.WinnerForm
	if err := decoder.Decode(&form, r.MultipartForm.Value); err != nil {
		s.logger.WithError(err).Error("failed to decode winner form")
		s.respondResult(w, http.StatusBadRequest, false, "Invalid form payload.")
		return
	}

	cmd := domain.UpsertWinnerCommand{WinnerID: winnerID, Form: form}

	if headers := r.MultipartForm.File["winner_image"]; len(headers) > 0 && headers[0].Filename != "" {
		file, err := headers[0].Open()
		if err != nil {
			s.logger.WithError(err).Error("failed to open uploaded winner image")
			s.respondResult(w, http.StatusInternalServerError, false, "An internal server error occurred.")
			return
		}
		defer file.Close()

		cmd.Image = &domain.Upload{Filename: headers[0].Filename, Content: file}
	}

	upserted, err := s.winners.Upsert(r.Context(), cmd)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondResult(w, http.StatusOK, true, upserted.Message)
}

func (s *Service) handleDeleteWinner(w http.ResponseWriter, r *http.Request) {
	winnerID := flow.Param(r.Context(), "id")

	message, err := s.winners.Delete(r.Context(), winnerID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondResult(w, http.StatusOK, true, message)
}

type winnerStatusRequest struct {
	Status string `json:"status"`
}

func (s *Service) handleWinnerStatus(w http.ResponseWriter, r *http.Request) {
	winnerID := flow.Param(r.Context(), "id")

	var req winnerStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondResult(w, http.StatusBadRequest, false, "Invalid request body.")
		return
	}

	message, err := s.winners.SetStatus(r.Context(), winnerID, types.WinnerStatus(req.Status))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondResult(w, http.StatusOK, true, message)
}
