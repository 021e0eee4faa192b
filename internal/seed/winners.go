package seed

import (
	"context"
	"fmt"

	"globalfund/internal/store"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
)

// SampleWinners inserts the demo winner records the public listing ships
// with. It only runs against an empty winners table.
func SampleWinners(ctx context.Context, logger *logrus.Logger, winners *store.WinnerRepository) error {

	count, err := winners.CountWinners(ctx)
	if err != nil {
		return fmt.Errorf("count winners: %w", err)
	}
	if count > 0 {
		logger.Info("winner data already exists, skipping sample data insertion")
		return nil
	}

	samples := []types.Winner{
		{Name: "PAMELA DOUCET", Location: "Houston, Texas", WinningCode: "PD123", FBLink: "https://facebook.com/pameladoucet", Status: types.WinnerStatusClaimed, Amount: 43370.00, Currency: "USD"},
		{Name: "EDWARD HARGRAVE", Location: "Washington DC", WinningCode: "EH456", FBLink: "https://facebook.com/edwardhargrave", Status: types.WinnerStatusClaimed, Amount: 1000000.00, Currency: "USD"},
		{Name: "VICKI GREIF", Location: "Atlanta, Georgia", WinningCode: "VG789", FBLink: "https://facebook.com/vickigreif", Status: types.WinnerStatusDelivered, Amount: 25000.00, Currency: "USD"},
		{Name: "ADREA KASS", Location: "Kansas City", WinningCode: "AK012", FBLink: "https://facebook.com/adreakass", Status: types.WinnerStatusClaimed, Amount: 1000000.00, Currency: "USD"},
	}

	for i := range samples {
		if err := winners.CreateWinner(ctx, &samples[i]); err != nil {
			return fmt.Errorf("insert sample winner %s: %w", samples[i].Name, err)
		}
	}

	logger.WithField("count", len(samples)).Info("sample winner data inserted")

	return nil
}
