package main

import (
	"context"
	"fmt"

	"globalfund/internal/db"
	"globalfund/internal/seed"
	"globalfund/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the initial admin credential and sample winners",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger := logrus.New()
		logger.Info("connected to database")

		adminRepo := store.NewAdminRepository(pool)
		winnerRepo := store.NewWinnerRepository(pool)

		if err := seed.EnsureAdmin(ctx, logger, adminRepo, cfg.InitialAdminPassword); err != nil {
			return fmt.Errorf("failed to seed admin credential: %w", err)
		}

		if err := seed.SampleWinners(ctx, logger, winnerRepo); err != nil {
			return fmt.Errorf("failed to seed sample winners: %w", err)
		}

		return nil
	},
}
