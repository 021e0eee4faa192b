package domain

import (
	"context"
	"strings"
	"testing"

	"globalfund/internal/testutil"
	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/stretchr/testify/require"
)

type winnerFixture struct {
	domain  *WinnerDomain
	winners *testutil.WinnerStore
	images  *testutil.FileStore
}

func newWinnerFixture() *winnerFixture {
	winners := testutil.NewWinnerStore()
	images := testutil.NewFileStore()
	return &winnerFixture{
		domain:  NewWinnerDomain(testLogger(), winners, images),
		winners: winners,
		images:  images,
	}
}

func validWinnerForm() types.WinnerForm {
	return types.WinnerForm{
		Name:        "PAMELA DOUCET",
		Location:    "Houma, Louisiana",
		WinningCode: "GF-7A2B9C",
		Amount:      "50000.00",
		PaymentFee:  "0.00",
	}
}

func winnerImage(filename string) *Upload {
	return &Upload{Filename: filename, Content: strings.NewReader("image-bytes")}
}

func (fx *winnerFixture) createWinner(t *testing.T, form types.WinnerForm, image *Upload) string {
	t.Helper()

	result, err := fx.domain.Upsert(context.Background(), UpsertWinnerCommand{Form: form, Image: image})
	require.NoError(t, err)
	require.Equal(t, "New winner added successfully!", result.Message)
	return result.WinnerID
}

func TestUpsertWinnerCreate(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), nil)

	winner, err := fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.Equal(t, types.WinnerStatusPending, winner.Status)
	require.Equal(t, "USD", winner.Currency)
	require.Equal(t, 50000.0, winner.Amount)
	require.Nil(t, winner.ImagePath)
	require.Equal(t, "/static/images/placeholder.png", fx.domain.ImageURL(winner.ImagePath))
}

func TestUpsertWinnerValidation(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	t.Run("missing required fields", func(t *testing.T) {
		form := validWinnerForm()
		form.WinningCode = ""

		_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{Form: form})
		require.EqualError(t, err, "Please fill all required fields.")
	})

	t.Run("non-numeric amounts", func(t *testing.T) {
		form := validWinnerForm()
		form.Amount = "fifty grand"

		_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{Form: form})
		require.EqualError(t, err, "Amount and Payment Fee must be valid numbers.")
	})

	t.Run("zero amount", func(t *testing.T) {
		form := validWinnerForm()
		form.Amount = "0"

		_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{Form: form})
		require.EqualError(t, err, "Ensure amounts are valid (Amount > 0, Payment Fee >= 0).")
	})

	t.Run("negative fee", func(t *testing.T) {
		form := validWinnerForm()
		form.PaymentFee = "-1"

		_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{Form: form})
		require.EqualError(t, err, "Ensure amounts are valid (Amount > 0, Payment Fee >= 0).")
	})

	t.Run("smallest positive amount passes", func(t *testing.T) {
		form := validWinnerForm()
		form.Amount = "0.01"

		_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{Form: form})
		require.NoError(t, err)
	})
}

func TestUpsertWinnerRejectsBadImage(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{Form: validWinnerForm(), Image: winnerImage("resume.pdf")})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Validation, errx.Code)
	require.Equal(t, "Invalid image file type for upload.", errx.Message)

	require.Empty(t, fx.images.Files)
	winners, err := fx.winners.Winners(ctx)
	require.NoError(t, err)
	require.Empty(t, winners)
}

func TestUpsertWinnerUpdate(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), nil)

	form := validWinnerForm()
	form.Location = "New Orleans, Louisiana"
	form.Status = "Claimed"

	result, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{WinnerID: winnerID, Form: form})
	require.NoError(t, err)
	require.Equal(t, "Winner updated successfully!", result.Message)

	winner, err := fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.Equal(t, "New Orleans, Louisiana", winner.Location)
	require.Equal(t, types.WinnerStatusClaimed, winner.Status)
}

func TestUpsertWinnerNoChanges(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), nil)

	result, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{WinnerID: winnerID, Form: validWinnerForm()})
	require.NoError(t, err)
	require.Equal(t, "No changes made to winner.", result.Message)
}

func TestUpsertWinnerNotFound(t *testing.T) {
	fx := newWinnerFixture()

	_, err := fx.domain.Upsert(context.Background(), UpsertWinnerCommand{WinnerID: "missing", Form: validWinnerForm()})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
	require.Equal(t, "Winner not found!", errx.Message)
}

func TestUpsertWinnerReplaceImage(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), winnerImage("first.png"))

	winner, err := fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.NotNil(t, winner.ImagePath)
	firstImage := *winner.ImagePath

	_, err = fx.domain.Upsert(ctx, UpsertWinnerCommand{
		WinnerID: winnerID,
		Form:     validWinnerForm(),
		Image:    winnerImage("second.gif"),
	})
	require.NoError(t, err)

	winner, err = fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.NotNil(t, winner.ImagePath)
	require.NotEqual(t, firstImage, *winner.ImagePath)

	// The previous file is removed once the replacement is in place.
	require.Equal(t, []string{firstImage}, fx.images.Deleted)
	require.Len(t, fx.images.Files, 1)
}

func TestUpsertWinnerRemoveImage(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), winnerImage("first.png"))

	winner, err := fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	firstImage := *winner.ImagePath

	form := validWinnerForm()
	form.RemoveImage = "1"

	_, err = fx.domain.Upsert(ctx, UpsertWinnerCommand{WinnerID: winnerID, Form: form})
	require.NoError(t, err)

	winner, err = fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.Nil(t, winner.ImagePath)
	require.Equal(t, []string{firstImage}, fx.images.Deleted)
}

func TestUpsertWinnerKeepsImageByDefault(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), winnerImage("first.png"))

	form := validWinnerForm()
	form.Location = "Lafayette, Louisiana"

	_, err := fx.domain.Upsert(ctx, UpsertWinnerCommand{WinnerID: winnerID, Form: form})
	require.NoError(t, err)

	winner, err := fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.NotNil(t, winner.ImagePath)
	require.Empty(t, fx.images.Deleted)
}

func TestDeleteWinner(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), winnerImage("photo.jpg"))

	message, err := fx.domain.Delete(ctx, winnerID)
	require.NoError(t, err)
	require.Equal(t, "Winner deleted successfully!", message)
	require.Len(t, fx.images.Deleted, 1)

	_, err = fx.winners.Winner(ctx, winnerID)
	require.ErrorIs(t, err, types.ErrWinnerNotFound)
}

func TestDeleteWinnerNotFound(t *testing.T) {
	fx := newWinnerFixture()

	_, err := fx.domain.Delete(context.Background(), "missing")

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
	require.Equal(t, "Winner not found!", errx.Message)
}

func TestSetWinnerStatus(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	winnerID := fx.createWinner(t, validWinnerForm(), nil)

	message, err := fx.domain.SetStatus(ctx, winnerID, types.WinnerStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, "Winner status updated to Delivered!", message)

	winner, err := fx.winners.Winner(ctx, winnerID)
	require.NoError(t, err)
	require.Equal(t, types.WinnerStatusDelivered, winner.Status)
	require.NotNil(t, winner.UpdatedAt)

	// Setting the same status again is a no-op, not an error.
	message, err = fx.domain.SetStatus(ctx, winnerID, types.WinnerStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, "No change in status.", message)
}

func TestSetWinnerStatusInvalid(t *testing.T) {
	fx := newWinnerFixture()

	_, err := fx.domain.SetStatus(context.Background(), "any", "Shipped")
	require.EqualError(t, err, "Invalid status provided.")
}

func TestSetWinnerStatusNotFound(t *testing.T) {
	fx := newWinnerFixture()

	_, err := fx.domain.SetStatus(context.Background(), "missing", types.WinnerStatusClaimed)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
	require.Equal(t, "Winner not found.", errx.Message)
}

func TestSearchWinners(t *testing.T) {
	ctx := context.Background()
	fx := newWinnerFixture()

	fx.createWinner(t, validWinnerForm(), nil)

	winners, err := fx.domain.Search(ctx, "pamela")
	require.NoError(t, err)
	require.Len(t, winners, 1)

	winners, err = fx.domain.Search(ctx, "GF-7A2B9C")
	require.NoError(t, err)
	require.Len(t, winners, 1)

	winners, err = fx.domain.Search(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, winners)
}
