// Package domain holds the application review workflow and the winner
// lifecycle. Collaborators are passed in as interfaces so tests can run the
// workflows against in-memory fakes.
package domain

import (
	"context"
	"io"
	"time"

	"globalfund/pkg/types"
)

type ApplicationStore interface {
	Application(ctx context.Context, applicationID string) (*types.Application, error)
	Applications(ctx context.Context) ([]*types.Application, error)
	CreateApplication(ctx context.Context, application *types.Application) error
	MarkApproved(ctx context.Context, applicationID string, at time.Time) (bool, error)
	MarkRejected(ctx context.Context, applicationID string, at time.Time) (bool, error)
}

type WinnerStore interface {
	Winner(ctx context.Context, winnerID string) (*types.Winner, error)
	Winners(ctx context.Context) ([]*types.Winner, error)
	WinnerBySourceApplication(ctx context.Context, applicationID string) (*types.Winner, error)
	SearchWinners(ctx context.Context, search string) ([]*types.Winner, error)
	CreateWinner(ctx context.Context, winner *types.Winner) error
	UpdateWinner(ctx context.Context, winnerID string, changes map[string]any) (int64, error)
	UpdateWinnerStatus(ctx context.Context, winnerID string, status types.WinnerStatus, at time.Time) (int64, error)
	DeleteWinner(ctx context.Context, winnerID string) (int64, error)
}

type AdminStore interface {
	AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error)
}

// FileStore matches internal/storage. Declared here so fakes don't have to
// import it.
type FileStore interface {
	Save(ctx context.Context, originalFilename string, content io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// Notifier delivers the admin notification for a submitted application.
// Failures are surfaced as a softer warning, never as a submission failure.
type Notifier interface {
	ApplicationSubmitted(application *types.Application, documentURLs []string) error
}

// Upload is one file part of a multipart request, decoupled from net/http.
type Upload struct {
	Filename string
	Content  io.Reader
}

// WinnerDefaults are applied to winners created through approval.
type WinnerDefaults struct {
	Amount   float64
	Fee      float64
	Currency string
}
