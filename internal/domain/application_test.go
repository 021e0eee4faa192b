package domain

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"globalfund/internal/testutil"
	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testDefaults() WinnerDefaults {
	return WinnerDefaults{Amount: 50000, Fee: 0, Currency: "USD"}
}

type applicationFixture struct {
	domain    *ApplicationDomain
	apps      *testutil.ApplicationStore
	winners   *testutil.WinnerStore
	documents *testutil.FileStore
	notifier  *testutil.Notifier
}

func newApplicationFixture() *applicationFixture {
	apps := testutil.NewApplicationStore()
	winners := testutil.NewWinnerStore()
	documents := testutil.NewFileStore()
	notifier := &testutil.Notifier{}

	return &applicationFixture{
		domain:    NewApplicationDomain(testLogger(), apps, winners, documents, notifier, testDefaults()),
		apps:      apps,
		winners:   winners,
		documents: documents,
		notifier:  notifier,
	}
}

func validApplicationForm() types.ApplicationForm {
	return types.ApplicationForm{
		FullName:           "Jordan Pierre",
		MotherMaidenName:   "Benoit",
		Email:              "jordan@example.com",
		Phone:              "+1 555 0100",
		Address:            "12 Rue des Lilas",
		City:               "Baton Rouge",
		State:              "LA",
		ZipCode:            "70801",
		Country:            "USA",
		DateOfBirth:        "1984-03-12",
		Gender:             "Male",
		Occupation:         "Carpenter",
		MonthlyIncome:      "1850.75",
		DeliveryPreference: "Bank Transfer",
		WinningCode:        "GF-A1B2C3",
		Reason:             "Rebuilding after the storm.",
	}
}

func idDocument(filename string) Upload {
	return Upload{Filename: filename, Content: strings.NewReader("file-bytes")}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()

	result, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.png"), idDocument("proof.pdf")})
	require.NoError(t, err)
	require.NotEmpty(t, result.ApplicationID)
	require.Equal(t, "Application submitted successfully! We will review it shortly.", result.Message)

	application, err := fx.apps.Application(ctx, result.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, types.ApplicationStatusPending, application.Status)
	require.Equal(t, 1850.75, application.MonthlyIncome)
	require.Len(t, application.IDDocumentPaths, 2)
	require.Len(t, fx.documents.Files, 2)
	require.Len(t, fx.notifier.Calls, 1)
}

func TestSubmitApplicationMissingFields(t *testing.T) {
	fx := newApplicationFixture()

	form := validApplicationForm()
	form.Email = ""
	form.Phone = "   "

	_, err := fx.domain.Submit(context.Background(), form, []Upload{idDocument("card.png")})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Validation, errx.Code)
	require.Equal(t, "Missing required field(s): email, phone", errx.Message)
}

func TestSubmitApplicationBadIncome(t *testing.T) {
	fx := newApplicationFixture()

	form := validApplicationForm()
	form.MonthlyIncome = "about 2k"

	_, err := fx.domain.Submit(context.Background(), form, []Upload{idDocument("card.png")})
	require.EqualError(t, err, "Monthly Income must be a valid number.")
}

func TestSubmitApplicationBadEmail(t *testing.T) {
	fx := newApplicationFixture()

	form := validApplicationForm()
	form.Email = "not-an-email"

	_, err := fx.domain.Submit(context.Background(), form, []Upload{idDocument("card.png")})
	require.EqualError(t, err, "Invalid email format.")
}

func TestSubmitApplicationRequiresIDCard(t *testing.T) {
	fx := newApplicationFixture()

	// Empty filenames come from blank file inputs and don't count.
	_, err := fx.domain.Submit(context.Background(), validApplicationForm(), []Upload{{Filename: ""}})
	require.EqualError(t, err, "ID Card upload is required.")
}

func TestSubmitApplicationRejectsBadExtensionBeforeSaving(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()

	_, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.png"), idDocument("notes.txt")})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Validation, errx.Code)
	require.Equal(t, "Invalid ID card file type. Only PNG, JPG, JPEG, PDF allowed.", errx.Message)

	// Nothing may be written when any upload is rejected.
	require.Empty(t, fx.documents.Files)
	applications, err := fx.apps.Applications(ctx)
	require.NoError(t, err)
	require.Empty(t, applications)
}

func TestSubmitApplicationNotifierFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()
	fx.notifier.Err = errors.New("smtp connection refused")

	result, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.jpeg")})
	require.NoError(t, err)
	require.Equal(t, "Application submitted, but failed to send admin notification email. Please check server logs.", result.Message)

	_, err = fx.apps.Application(ctx, result.ApplicationID)
	require.NoError(t, err)
}

func TestApproveApplication(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()

	submitted, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.png")})
	require.NoError(t, err)

	result, err := fx.domain.Approve(ctx, submitted.ApplicationID)
	require.NoError(t, err)
	require.True(t, result.WinnerCreated)
	require.Equal(t, "Application approved and winner added successfully!", result.Message)

	application, err := fx.apps.Application(ctx, submitted.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, types.ApplicationStatusApproved, application.Status)
	require.NotNil(t, application.ApprovedAt)

	winner, err := fx.winners.WinnerBySourceApplication(ctx, submitted.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, "Jordan Pierre", winner.Name)
	require.Equal(t, "Baton Rouge, USA", winner.Location)
	require.True(t, strings.HasPrefix(winner.WinningCode, "GF-"))
	require.Equal(t, types.WinnerStatusPending, winner.Status)
	require.Equal(t, 50000.0, winner.Amount)
	require.Equal(t, 0.0, winner.PaymentFee)
	require.Equal(t, "USD", winner.Currency)
}

func TestApproveApplicationTwice(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()

	submitted, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.png")})
	require.NoError(t, err)

	_, err = fx.domain.Approve(ctx, submitted.ApplicationID)
	require.NoError(t, err)

	_, err = fx.domain.Approve(ctx, submitted.ApplicationID)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Conflict, errx.Code)
	require.Equal(t, "Application is already approved.", errx.Message)

	winners, err := fx.winners.Winners(ctx)
	require.NoError(t, err)
	require.Len(t, winners, 1)
}

func TestApproveApplicationWithExistingWinner(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()

	submitted, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.png")})
	require.NoError(t, err)

	require.NoError(t, fx.winners.CreateWinner(ctx, &types.Winner{
		Name:                "Jordan Pierre",
		WinningCode:         "GF-EXIST1",
		Status:              types.WinnerStatusPending,
		SourceApplicationID: &submitted.ApplicationID,
	}))

	result, err := fx.domain.Approve(ctx, submitted.ApplicationID)
	require.NoError(t, err)
	require.False(t, result.WinnerCreated)
	require.Equal(t, "Application approved and winner already existed.", result.Message)

	winners, err := fx.winners.Winners(ctx)
	require.NoError(t, err)
	require.Len(t, winners, 1)
}

func TestApproveApplicationNotFound(t *testing.T) {
	fx := newApplicationFixture()

	_, err := fx.domain.Approve(context.Background(), "missing")

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func TestRejectApplication(t *testing.T) {
	ctx := context.Background()
	fx := newApplicationFixture()

	submitted, err := fx.domain.Submit(ctx, validApplicationForm(), []Upload{idDocument("card.png")})
	require.NoError(t, err)

	message, err := fx.domain.Reject(ctx, submitted.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, "Application rejected successfully!", message)

	application, err := fx.apps.Application(ctx, submitted.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, types.ApplicationStatusRejected, application.Status)

	// Rejection never creates winners.
	winners, err := fx.winners.Winners(ctx)
	require.NoError(t, err)
	require.Empty(t, winners)

	_, err = fx.domain.Reject(ctx, submitted.ApplicationID)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Conflict, errx.Code)
	require.Equal(t, "Application is already rejected.", errx.Message)
}
