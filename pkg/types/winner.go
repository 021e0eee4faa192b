package types

import (
	"errors"
	"time"
)

type WinnerStatus string

const (
	WinnerStatusPending   WinnerStatus = "Pending"
	WinnerStatusClaimed   WinnerStatus = "Claimed"
	WinnerStatusDelivered WinnerStatus = "Delivered"
	WinnerStatusCancelled WinnerStatus = "Cancelled"
)

func ValidWinnerStatus(s WinnerStatus) bool {
	switch s {
	case WinnerStatusPending, WinnerStatusClaimed, WinnerStatusDelivered, WinnerStatusCancelled:
		return true
	}
	return false
}

var ErrWinnerNotFound = errors.New("winner not found")

// Winner is a public record of a selected grantee. SourceApplicationID is a
// non-owning back-reference to the application that produced it, used only to
// keep approval idempotent.
type Winner struct {
	ID                  string       `db:"id" json:"_id"`
	Name                string       `db:"name" json:"name"`
	Location            string       `db:"location" json:"location"`
	WinningCode         string       `db:"winning_code" json:"winning_code"`
	FBLink              string       `db:"fb_link" json:"fb_link"`
	Status              WinnerStatus `db:"status" json:"status"`
	Amount              float64      `db:"amount" json:"amount"`
	PaymentFee          float64      `db:"payment_fee" json:"payment_fee"`
	Currency            string       `db:"currency" json:"currency"`
	ImagePath           *string      `db:"image_path" json:"image_path,omitempty"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           *time.Time   `db:"updated_at" json:"updated_at,omitempty"`
	SourceApplicationID *string      `db:"source_application_id" json:"source_application_id,omitempty"`
}
