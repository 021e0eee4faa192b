package types

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

var ErrApplicationNotFound = errors.New("application not found")

// Application is a submitted grant request pending administrative review.
// IDDocumentPaths is set once at submission and never mutated afterward.
type Application struct {
	ID                 string            `db:"id" json:"id"`
	FullName           string            `db:"full_name" json:"fullName"`
	MotherMaidenName   string            `db:"mother_maiden_name" json:"motherMaidenName"`
	Email              string            `db:"email" json:"email"`
	Phone              string            `db:"phone" json:"phone"`
	Address            string            `db:"address" json:"address"`
	City               string            `db:"city" json:"city"`
	State              string            `db:"state" json:"state"`
	ZipCode            string            `db:"zip_code" json:"zipCode"`
	Country            string            `db:"country" json:"country"`
	DateOfBirth        string            `db:"dob" json:"dateOfBirth"`
	Gender             string            `db:"gender" json:"gender"`
	Occupation         string            `db:"occupation" json:"occupation"`
	MonthlyIncome      float64           `db:"monthly_income" json:"monthlyIncome"`
	DeliveryPreference string            `db:"delivery_preference" json:"deliveryPreference"`
	WinningCode        string            `db:"winning_code" json:"winningCode"`
	ReasonForApplying  string            `db:"reason" json:"reasonForApplying"`
	IDDocumentPaths    []string          `db:"id_document_paths" json:"idDocumentPaths"` // text[] column
	Status             ApplicationStatus `db:"status" json:"status"`
	SubmittedAt        time.Time         `db:"submitted_at" json:"submittedAt"`
	ApprovedAt         *time.Time        `db:"approved_at" json:"approvedAt,omitempty"`
	RejectedAt         *time.Time        `db:"rejected_at" json:"rejectedAt,omitempty"`
}
