package domain

import (
	"context"
	"errors"
	"strconv"
	"time"

	"globalfund/internal/storage"
	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
)

var winnerImageExtensions = []string{"png", "jpg", "jpeg", "gif"}

type WinnerDomain struct {
	logger  *logrus.Logger
	winners WinnerStore
	images  FileStore
}

func NewWinnerDomain(logger *logrus.Logger, winners WinnerStore, images FileStore) *WinnerDomain {
	return &WinnerDomain{logger: logger, winners: winners, images: images}
}

// UpsertWinnerCommand carries a validated-at-the-boundary winner form. An
// empty or "0" WinnerID means create.
type UpsertWinnerCommand struct {
	WinnerID string
	Form     types.WinnerForm
	Image    *Upload
}

type UpsertResult struct {
	WinnerID string
	Message  string
}

// Upsert creates or updates a winner. Image handling precedence: a valid new
// image replaces the old one, else the remove flag clears it, else the
// current image is kept. The old file is only deleted after the replacement
// is written and the record persisted, so a crash never loses the only copy.
func (d *WinnerDomain) Upsert(ctx context.Context, cmd UpsertWinnerCommand) (*UpsertResult, error) {

	isUpdate := cmd.WinnerID != "" && cmd.WinnerID != "0"

	var existing *types.Winner
	if isUpdate {
		var err error
		existing, err = d.winners.Winner(ctx, cmd.WinnerID)
		if err != nil {
			if errors.Is(err, types.ErrWinnerNotFound) {
				return nil, errorx.New(errorx.NotFound, "Winner not found!")
			}
			d.logger.WithError(err).Error("failed to load winner")
			return nil, errorx.Unknown
		}
	}

	form := cmd.Form
	if form.Name == "" || form.WinningCode == "" || form.Amount == "" || form.PaymentFee == "" {
		return nil, errorx.New(errorx.Validation, "Please fill all required fields.")
	}

	amount, amountErr := strconv.ParseFloat(form.Amount, 64)
	fee, feeErr := strconv.ParseFloat(form.PaymentFee, 64)
	if amountErr != nil || feeErr != nil {
		return nil, errorx.New(errorx.Validation, "Amount and Payment Fee must be valid numbers.")
	}

	if amount <= 0 || fee < 0 {
		return nil, errorx.New(errorx.Validation, "Ensure amounts are valid (Amount > 0, Payment Fee >= 0).")
	}

	// Validate before any write. A rejected image must abort the whole
	// operation with nothing persisted.
	if cmd.Image != nil && !storage.AllowedExtension(cmd.Image.Filename, winnerImageExtensions) {
		return nil, errorx.New(errorx.Validation, "Invalid image file type for upload.")
	}

	status := types.WinnerStatus(form.Status)
	if form.Status == "" {
		status = types.WinnerStatusPending
	}
	currency := form.Currency
	if currency == "" {
		currency = "USD"
	}

	var currentImage *string
	if existing != nil {
		currentImage = existing.ImagePath
	}

	imagePath := currentImage
	var obsoleteImage *string

	switch {
	case cmd.Image != nil:
		name, err := d.images.Save(ctx, cmd.Image.Filename, cmd.Image.Content)
		if err != nil {
			d.logger.WithError(err).Error("failed to store winner image")
			return nil, errorx.Unknown
		}
		imagePath = &name
		obsoleteImage = currentImage
	case form.RemoveImage == "1":
		imagePath = nil
		obsoleteImage = currentImage
	}

	if !isUpdate {
		winner := &types.Winner{
			Name:        form.Name,
			Location:    form.Location,
			WinningCode: form.WinningCode,
			FBLink:      form.FBLink,
			Status:      status,
			Amount:      amount,
			PaymentFee:  fee,
			Currency:    currency,
			ImagePath:   imagePath,
		}

		if err := d.winners.CreateWinner(ctx, winner); err != nil {
			d.logger.WithError(err).Error("failed to create winner")
			return nil, errorx.Unknown
		}

		return &UpsertResult{WinnerID: winner.ID, Message: "New winner added successfully!"}, nil
	}

	changes := map[string]any{}
	if existing.Name != form.Name {
		changes["name"] = form.Name
	}
	if existing.Location != form.Location {
		changes["location"] = form.Location
	}
	if existing.WinningCode != form.WinningCode {
		changes["winning_code"] = form.WinningCode
	}
	if existing.FBLink != form.FBLink {
		changes["fb_link"] = form.FBLink
	}
	if existing.Status != status {
		changes["status"] = status
	}
	if existing.Amount != amount {
		changes["amount"] = amount
	}
	if existing.PaymentFee != fee {
		changes["payment_fee"] = fee
	}
	if existing.Currency != currency {
		changes["currency"] = currency
	}
	if !sameImage(existing.ImagePath, imagePath) {
		changes["image_path"] = imagePath
	}

	if len(changes) == 0 {
		return &UpsertResult{WinnerID: existing.ID, Message: "No changes made to winner."}, nil
	}

	matched, err := d.winners.UpdateWinner(ctx, cmd.WinnerID, changes)
	if err != nil {
		d.logger.WithError(err).Error("failed to update winner")
		return nil, errorx.Unknown
	}
	if matched == 0 {
		return nil, errorx.New(errorx.NotFound, "Winner not found during update.")
	}

	d.deleteImageFile(ctx, obsoleteImage)

	return &UpsertResult{WinnerID: existing.ID, Message: "Winner updated successfully!"}, nil
}

// Delete removes a winner and its image file. A missing file is logged and
// skipped; a delete that matches no rows reports not found, covering the
// concurrent-delete race.
func (d *WinnerDomain) Delete(ctx context.Context, winnerID string) (string, error) {

	winner, err := d.winners.Winner(ctx, winnerID)
	if err != nil {
		if errors.Is(err, types.ErrWinnerNotFound) {
			return "", errorx.New(errorx.NotFound, "Winner not found!")
		}
		d.logger.WithError(err).Error("failed to load winner")
		return "", errorx.Unknown
	}

	d.deleteImageFile(ctx, winner.ImagePath)

	deleted, err := d.winners.DeleteWinner(ctx, winnerID)
	if err != nil {
		d.logger.WithError(err).Error("failed to delete winner")
		return "", errorx.Unknown
	}
	if deleted == 0 {
		return "", errorx.New(errorx.NotFound, "Winner not found or already deleted.")
	}

	return "Winner deleted successfully!", nil
}

// SetStatus applies an admin-driven status change. Transitions are
// unconstrained; only a no-op is reported separately.
func (d *WinnerDomain) SetStatus(ctx context.Context, winnerID string, status types.WinnerStatus) (string, error) {

	if !types.ValidWinnerStatus(status) {
		return "", errorx.New(errorx.Validation, "Invalid status provided.")
	}

	if _, err := d.winners.Winner(ctx, winnerID); err != nil {
		if errors.Is(err, types.ErrWinnerNotFound) {
			return "", errorx.New(errorx.NotFound, "Winner not found.")
		}
		d.logger.WithError(err).Error("failed to load winner")
		return "", errorx.Unknown
	}

	updated, err := d.winners.UpdateWinnerStatus(ctx, winnerID, status, time.Now().UTC())
	if err != nil {
		d.logger.WithError(err).Error("failed to update winner status")
		return "", errorx.Unknown
	}
	if updated == 0 {
		return "No change in status.", nil
	}

	d.logger.WithFields(logrus.Fields{
		"winner_id": winnerID,
		"status":    status,
	}).Info("winner status updated")

	return "Winner status updated to " + string(status) + "!", nil
}

func (d *WinnerDomain) Winners(ctx context.Context) ([]*types.Winner, error) {
	winners, err := d.winners.Winners(ctx)
	if err != nil {
		d.logger.WithError(err).Error("failed to list winners")
		return nil, errorx.Unknown
	}
	return winners, nil
}

func (d *WinnerDomain) Search(ctx context.Context, query string) ([]*types.Winner, error) {
	winners, err := d.winners.SearchWinners(ctx, query)
	if err != nil {
		d.logger.WithError(err).Error("failed to search winners")
		return nil, errorx.Unknown
	}
	return winners, nil
}

// ImageURL resolves a winner image to a servable URL, falling back to the
// placeholder when no image is stored.
func (d *WinnerDomain) ImageURL(imagePath *string) string {
	if imagePath == nil || *imagePath == "" {
		return "/static/images/placeholder.png"
	}
	return d.images.URL(*imagePath)
}

func (d *WinnerDomain) deleteImageFile(ctx context.Context, name *string) {
	if name == nil || *name == "" {
		return
	}
	if err := d.images.Delete(ctx, *name); err != nil {
		d.logger.WithError(err).WithField("image", *name).Warn("failed to delete winner image file")
		return
	}
	d.logger.WithField("image", *name).Info("deleted winner image file")
}

func sameImage(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
