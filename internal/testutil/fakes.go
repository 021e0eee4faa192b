// Package testutil provides in-memory fakes for the domain's collaborators,
// so workflow tests run without Postgres, a disk, or an SMTP server.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"globalfund/internal/utils"
	"globalfund/pkg/types"
)

type ApplicationStore struct {
	mu    sync.Mutex
	Items map[string]*types.Application
}

func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{Items: make(map[string]*types.Application)}
}

func (s *ApplicationStore) Application(_ context.Context, applicationID string) (*types.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, ok := s.Items[applicationID]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (s *ApplicationStore) Applications(_ context.Context) ([]*types.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications := make([]*types.Application, 0, len(s.Items))
	for _, application := range s.Items {
		copied := *application
		applications = append(applications, &copied)
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].SubmittedAt.After(applications[j].SubmittedAt)
	})
	return applications, nil
}

func (s *ApplicationStore) CreateApplication(_ context.Context, application *types.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	application.ID = utils.NanoID()
	application.Status = types.ApplicationStatusPending
	application.SubmittedAt = time.Now().UTC()

	copied := *application
	s.Items[application.ID] = &copied
	return nil
}

func (s *ApplicationStore) MarkApproved(_ context.Context, applicationID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, ok := s.Items[applicationID]
	if !ok || application.Status == types.ApplicationStatusApproved {
		return false, nil
	}

	application.Status = types.ApplicationStatusApproved
	application.ApprovedAt = &at
	return true, nil
}

func (s *ApplicationStore) MarkRejected(_ context.Context, applicationID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, ok := s.Items[applicationID]
	if !ok || application.Status == types.ApplicationStatusRejected {
		return false, nil
	}

	application.Status = types.ApplicationStatusRejected
	application.RejectedAt = &at
	return true, nil
}

type WinnerStore struct {
	mu    sync.Mutex
	Items map[string]*types.Winner
}

func NewWinnerStore() *WinnerStore {
	return &WinnerStore{Items: make(map[string]*types.Winner)}
}

func (s *WinnerStore) Winner(_ context.Context, winnerID string) (*types.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	winner, ok := s.Items[winnerID]
	if !ok {
		return nil, types.ErrWinnerNotFound
	}
	copied := *winner
	return &copied, nil
}

func (s *WinnerStore) Winners(_ context.Context) ([]*types.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	winners := make([]*types.Winner, 0, len(s.Items))
	for _, winner := range s.Items {
		copied := *winner
		winners = append(winners, &copied)
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].CreatedAt.After(winners[j].CreatedAt)
	})
	return winners, nil
}

func (s *WinnerStore) WinnerBySourceApplication(_ context.Context, applicationID string) (*types.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, winner := range s.Items {
		if winner.SourceApplicationID != nil && *winner.SourceApplicationID == applicationID {
			copied := *winner
			return &copied, nil
		}
	}
	return nil, types.ErrWinnerNotFound
}

func (s *WinnerStore) SearchWinners(_ context.Context, search string) ([]*types.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(search)
	for _, winner := range s.Items {
		if strings.Contains(strings.ToLower(winner.Name), needle) ||
			strings.Contains(strings.ToLower(winner.WinningCode), needle) {
			copied := *winner
			return []*types.Winner{&copied}, nil
		}
	}
	return []*types.Winner{}, nil
}

func (s *WinnerStore) CreateWinner(_ context.Context, winner *types.Winner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if winner.ID == "" {
		winner.ID = utils.NanoID()
	}
	if winner.CreatedAt.IsZero() {
		winner.CreatedAt = time.Now().UTC()
	}

	copied := *winner
	s.Items[winner.ID] = &copied
	return nil
}

func (s *WinnerStore) UpdateWinner(_ context.Context, winnerID string, changes map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	winner, ok := s.Items[winnerID]
	if !ok {
		return 0, nil
	}

	for column, value := range changes {
		switch column {
		case "name":
			winner.Name = value.(string)
		case "location":
			winner.Location = value.(string)
		case "winning_code":
			winner.WinningCode = value.(string)
		case "fb_link":
			winner.FBLink = value.(string)
		case "status":
			winner.Status = value.(types.WinnerStatus)
		case "amount":
			winner.Amount = value.(float64)
		case "payment_fee":
			winner.PaymentFee = value.(float64)
		case "currency":
			winner.Currency = value.(string)
		case "image_path":
			if value == nil {
				winner.ImagePath = nil
			} else {
				winner.ImagePath = value.(*string)
			}
		}
	}

	return 1, nil
}

func (s *WinnerStore) UpdateWinnerStatus(_ context.Context, winnerID string, status types.WinnerStatus, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	winner, ok := s.Items[winnerID]
	if !ok || winner.Status == status {
		return 0, nil
	}

	winner.Status = status
	winner.UpdatedAt = &at
	return 1, nil
}

func (s *WinnerStore) DeleteWinner(_ context.Context, winnerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.Items[winnerID]; !ok {
		return 0, nil
	}
	delete(s.Items, winnerID)
	return 1, nil
}

type AdminStore struct {
	Admins map[string]*types.AdminUser
}

func NewAdminStore() *AdminStore {
	return &AdminStore{Admins: make(map[string]*types.AdminUser)}
}

func (s *AdminStore) AdminByUsername(_ context.Context, username string) (*types.AdminUser, error) {
	admin, ok := s.Admins[username]
	if !ok {
		return nil, types.ErrAdminNotFound
	}
	return admin, nil
}

// FileStore keeps saved content in memory and records deletions.
type FileStore struct {
	mu      sync.Mutex
	counter int
	Files   map[string][]byte
	Deleted []string
}

func NewFileStore() *FileStore {
	return &FileStore{Files: make(map[string][]byte)}
}

func (s *FileStore) Save(_ context.Context, originalFilename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	name := fmt.Sprintf("%d_%s", s.counter, originalFilename)
	s.Files[name] = data
	return name, nil
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.Files[name]; !ok {
		return fmt.Errorf("file %s does not exist", name)
	}
	delete(s.Files, name)
	s.Deleted = append(s.Deleted, name)
	return nil
}

func (s *FileStore) URL(name string) string {
	return "/files/" + name
}

// Notifier records submissions and fails when Err is set.
type Notifier struct {
	Err   error
	Calls []*types.Application
}

func (n *Notifier) ApplicationSubmitted(application *types.Application, _ []string) error {
	n.Calls = append(n.Calls, application)
	return n.Err
}
