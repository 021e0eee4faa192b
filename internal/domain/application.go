package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"globalfund/internal/storage"
	"globalfund/internal/utils"
	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
)

var idDocumentExtensions = []string{"png", "jpg", "jpeg", "pdf"}

type ApplicationDomain struct {
	logger    *logrus.Logger
	apps      ApplicationStore
	winners   WinnerStore
	documents FileStore
	notifier  Notifier
	defaults  WinnerDefaults
}

func NewApplicationDomain(
	logger *logrus.Logger,
	apps ApplicationStore,
	winners WinnerStore,
	documents FileStore,
	notifier Notifier,
	defaults WinnerDefaults,
) *ApplicationDomain {
	return &ApplicationDomain{
		logger:    logger,
		apps:      apps,
		winners:   winners,
		documents: documents,
		notifier:  notifier,
		defaults:  defaults,
	}
}

type SubmitResult struct {
	ApplicationID string
	Message       string
}

// Submit validates and persists a public application. All ID document
// filenames are checked against the allow-list before any file is written, so
// a bad file can't leave earlier uploads orphaned on disk.
func (d *ApplicationDomain) Submit(ctx context.Context, form types.ApplicationForm, uploads []Upload) (*SubmitResult, error) {

	required := []struct {
		name  string
		value string
	}{
		{"fullName", form.FullName},
		{"email", form.Email},
		{"phone", form.Phone},
		{"address", form.Address},
		{"city", form.City},
		{"state", form.State},
		{"zipCode", form.ZipCode},
		{"country", form.Country},
		{"dateOfBirth", form.DateOfBirth},
		{"gender", form.Gender},
		{"occupation", form.Occupation},
		{"monthlyIncome", form.MonthlyIncome},
		{"deliveryPreference", form.DeliveryPreference},
		{"winningCode", form.WinningCode},
		{"reason", form.Reason},
		{"motherMaidenName", form.MotherMaidenName},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return nil, errorx.New(errorx.Validation, "Missing required field(s): %s", strings.Join(missing, ", "))
	}

	income, err := strconv.ParseFloat(form.MonthlyIncome, 64)
	if err != nil {
		return nil, errorx.New(errorx.Validation, "Monthly Income must be a valid number.")
	}

	// Intentionally shallow check, kept as-is.
	if !strings.Contains(form.Email, "@") || !strings.Contains(form.Email, ".") {
		return nil, errorx.New(errorx.Validation, "Invalid email format.")
	}

	var files []Upload
	for _, upload := range uploads {
		if upload.Filename == "" {
			continue
		}
		files = append(files, upload)
	}
	if len(files) == 0 {
		return nil, errorx.New(errorx.Validation, "ID Card upload is required.")
	}

	for _, file := range files {
		if !storage.AllowedExtension(file.Filename, idDocumentExtensions) {
			return nil, errorx.New(errorx.Validation, "Invalid ID card file type. Only PNG, JPG, JPEG, PDF allowed.")
		}
	}

	documentPaths := make([]string, 0, len(files))
	for _, file := range files {
		name, err := d.documents.Save(ctx, file.Filename, file.Content)
		if err != nil {
			d.logger.WithError(err).Error("failed to store id document")
			return nil, errorx.Unknown
		}
		documentPaths = append(documentPaths, name)
	}

	application := &types.Application{
		FullName:           form.FullName,
		MotherMaidenName:   form.MotherMaidenName,
		Email:              form.Email,
		Phone:              form.Phone,
		Address:            form.Address,
		City:               form.City,
		State:              form.State,
		ZipCode:            form.ZipCode,
		Country:            form.Country,
		DateOfBirth:        form.DateOfBirth,
		Gender:             form.Gender,
		Occupation:         form.Occupation,
		MonthlyIncome:      income,
		DeliveryPreference: form.DeliveryPreference,
		WinningCode:        form.WinningCode,
		ReasonForApplying:  form.Reason,
		IDDocumentPaths:    documentPaths,
	}

	if err := d.apps.CreateApplication(ctx, application); err != nil {
		d.logger.WithError(err).Error("failed to save application")
		return nil, errorx.New(errorx.Internal, "Failed to save application to database.")
	}

	documentURLs := make([]string, 0, len(documentPaths))
	for _, path := range documentPaths {
		documentURLs = append(documentURLs, d.documents.URL(path))
	}

	message := "Application submitted successfully! We will review it shortly."
	if err := d.notifier.ApplicationSubmitted(application, documentURLs); err != nil {
		d.logger.WithError(err).WithField("application_id", application.ID).
			Error("failed to send admin notification email")
		message = "Application submitted, but failed to send admin notification email. Please check server logs."
	}

	return &SubmitResult{ApplicationID: application.ID, Message: message}, nil
}

type ApproveResult struct {
	WinnerCreated bool
	Message       string
}

// Approve transitions an application to Approved and creates the linked
// winner exactly once. A second approval of the same application reports a
// conflict; a winner already back-referencing the application is reused.
func (d *ApplicationDomain) Approve(ctx context.Context, applicationID string) (*ApproveResult, error) {

	application, err := d.apps.Application(ctx, applicationID)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			return nil, errorx.New(errorx.NotFound, "Application not found.")
		}
		d.logger.WithError(err).Error("failed to load application")
		return nil, errorx.Unknown
	}

	if application.Status == types.ApplicationStatusApproved {
		return nil, errorx.New(errorx.Conflict, "Application is already approved.")
	}

	updated, err := d.apps.MarkApproved(ctx, applicationID, time.Now().UTC())
	if err != nil {
		d.logger.WithError(err).Error("failed to approve application")
		return nil, errorx.Unknown
	}
	if !updated {
		// Lost the race against a concurrent approval.
		return nil, errorx.New(errorx.Conflict, "Application is already approved.")
	}

	_, err = d.winners.WinnerBySourceApplication(ctx, applicationID)
	if err == nil {
		d.logger.WithField("application_id", applicationID).
			Info("winner already exists for application, not creating duplicate")
		return &ApproveResult{Message: "Application approved and winner already existed."}, nil
	}
	if !errors.Is(err, types.ErrWinnerNotFound) {
		d.logger.WithError(err).Error("failed to check for existing winner")
		return nil, errorx.Unknown
	}

	winner := &types.Winner{
		Name:                application.FullName,
		Location:            fmt.Sprintf("%s, %s", application.City, application.Country),
		WinningCode:         utils.WinningCode(),
		Status:              types.WinnerStatusPending,
		Amount:              d.defaults.Amount,
		PaymentFee:          d.defaults.Fee,
		Currency:            d.defaults.Currency,
		SourceApplicationID: &application.ID,
	}

	if err := d.winners.CreateWinner(ctx, winner); err != nil {
		d.logger.WithError(err).Error("failed to create winner for approved application")
		return nil, errorx.Unknown
	}

	d.logger.WithFields(logrus.Fields{
		"application_id": applicationID,
		"winner_id":      winner.ID,
	}).Info("application approved and winner created")

	return &ApproveResult{WinnerCreated: true, Message: "Application approved and winner added successfully!"}, nil
}

// Reject transitions an application to Rejected. It never touches winners.
func (d *ApplicationDomain) Reject(ctx context.Context, applicationID string) (string, error) {

	application, err := d.apps.Application(ctx, applicationID)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			return "", errorx.New(errorx.NotFound, "Application not found.")
		}
		d.logger.WithError(err).Error("failed to load application")
		return "", errorx.Unknown
	}

	if application.Status == types.ApplicationStatusRejected {
		return "", errorx.New(errorx.Conflict, "Application is already rejected.")
	}

	updated, err := d.apps.MarkRejected(ctx, applicationID, time.Now().UTC())
	if err != nil {
		d.logger.WithError(err).Error("failed to reject application")
		return "", errorx.Unknown
	}
	if !updated {
		return "", errorx.New(errorx.Conflict, "Application is already rejected.")
	}

	d.logger.WithField("application_id", applicationID).Info("application rejected")

	return "Application rejected successfully!", nil
}

func (d *ApplicationDomain) Applications(ctx context.Context) ([]*types.Application, error) {
	applications, err := d.apps.Applications(ctx)
	if err != nil {
		d.logger.WithError(err).Error("failed to list applications")
		return nil, errorx.Unknown
	}
	return applications, nil
}

func (d *ApplicationDomain) Application(ctx context.Context, applicationID string) (*types.Application, error) {
	application, err := d.apps.Application(ctx, applicationID)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			return nil, errorx.New(errorx.NotFound, "Application not found.")
		}
		d.logger.WithError(err).Error("failed to load application")
		return nil, errorx.Unknown
	}
	return application, nil
}
