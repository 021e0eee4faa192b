package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"globalfund/internal/domain"
	"globalfund/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	apps    *domain.ApplicationDomain
	winners *domain.WinnerDomain
	auth    *domain.AuthDomain

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	apps *domain.ApplicationDomain,
	winners *domain.WinnerDomain,
	auth *domain.AuthDomain,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:  logger,
		config:  config,
		apps:    apps,
		winners: winners,
		auth:    auth,
		cookie:  securecookie.New(hashKey, blockKey),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/api/submit_application", s.handleSubmitApplication, http.MethodPost)
	r.HandleFunc("/api/public/winners", s.handlePublicWinners, http.MethodGet)
	r.HandleFunc("/api/winners/search", s.handleSearchWinners, http.MethodGet)

	r.HandleFunc("/api/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodGet, http.MethodPost)
	r.HandleFunc("/admin_login", s.handleAdminLoginRequired, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/api/admin/winners", s.handleAdminWinners, http.MethodGet)
		r.HandleFunc("/api/admin/winners", s.handleCreateWinner, http.MethodPost)
		r.HandleFunc("/api/admin/winners/:id", s.handleUpdateWinner, http.MethodPost)
		r.HandleFunc("/api/admin/winners/:id", s.handleDeleteWinner, http.MethodDelete)
		r.HandleFunc("/api/admin/winners/:id/status", s.handleWinnerStatus, http.MethodPost)

		r.HandleFunc("/api/admin/applications", s.handleAdminApplications, http.MethodGet)
		r.HandleFunc("/api/admin/applications/:id", s.handleAdminApplicationDetail, http.MethodGet)
		r.HandleFunc("/admin/applications/:id/approve", s.handleApproveApplication, http.MethodPost)
		r.HandleFunc("/admin/applications/:id/reject", s.handleRejectApplication, http.MethodPost)
	})

	// The local storage backend serves uploads straight off disk; S3 serves
	// its own URLs.
	if s.config.StorageBackend == "local" {
		r.Handle("/uploads/...", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.config.UploadDir))), http.MethodGet)
		r.Handle("/id_uploads/...", http.StripPrefix("/id_uploads/", http.FileServer(http.Dir(s.config.IDUploadDir))), http.MethodGet)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleAdminLoginRequired is the redirect target for unauthenticated HTML
// requests. There is no server-rendered UI in this service, so it answers
// with the same structured payload the JSON endpoints use.
func (s *Service) handleAdminLoginRequired(w http.ResponseWriter, _ *http.Request) {
	s.respondResult(w, http.StatusUnauthorized, false, "You need to be logged in to access this page.")
}
