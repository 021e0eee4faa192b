package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"globalfund/internal/db"
	"globalfund/internal/domain"
	"globalfund/internal/mail"
	"globalfund/internal/seed"
	"globalfund/internal/server"
	"globalfund/internal/storage"
	"globalfund/internal/store"
	"globalfund/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	applicationRepo := store.NewApplicationRepository(pool)
	winnerRepo := store.NewWinnerRepository(pool)
	adminRepo := store.NewAdminRepository(pool)

	images, documents, err := buildFileStores(ctx, config)
	if err != nil {
		return err
	}

	if err := seed.EnsureAdmin(ctx, logger, adminRepo, config.InitialAdminPassword); err != nil {
		return fmt.Errorf("seed admin credential: %w", err)
	}

	mailer := mail.NewMailer(config, logger)

	applicationDomain := domain.NewApplicationDomain(
		logger,
		applicationRepo,
		winnerRepo,
		documents,
		mailer,
		domain.WinnerDefaults{
			Amount:   config.DefaultWinningAmount,
			Fee:      config.DefaultPaymentFee,
			Currency: config.DefaultCurrency,
		},
	)
	winnerDomain := domain.NewWinnerDomain(logger, winnerRepo, images)
	authDomain := domain.NewAuthDomain(logger, adminRepo)

	srv, err := server.New(config, logger, applicationDomain, winnerDomain, authDomain)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

// buildFileStores wires the two storage areas: winner images and application
// ID documents.
func buildFileStores(ctx context.Context, config *types.Config) (domain.FileStore, domain.FileStore, error) {
	switch config.StorageBackend {
	case "local":
		images, err := storage.NewLocalStore(config.UploadDir, "winner", "/uploads")
		if err != nil {
			return nil, nil, err
		}

		// Document links go into notification emails, so they must be
		// absolute.
		documents, err := storage.NewLocalStore(config.IDUploadDir, "", config.PublicBaseURL+"/id_uploads")
		if err != nil {
			return nil, nil, err
		}

		return images, documents, nil

	case "s3":
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, nil, err
		}

		client := s3.NewFromConfig(awsConfig)
		images := storage.NewS3Store(client, config.S3Bucket, "uploads", config.S3PublicBaseURL)
		documents := storage.NewS3Store(client, config.S3Bucket, "id_uploads", config.S3PublicBaseURL)

		return images, documents, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}
}
