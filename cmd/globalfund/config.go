package main

import (
	"context"
	"fmt"

	"globalfund/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

func loadConfig() (*types.Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, reading environment variables directly")
	}

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.StorageBackend == "s3" && c.S3Bucket == "" {
		return nil, fmt.Errorf("set S3_BUCKET when STORAGE_BACKEND=s3")
	}

	if c.EmailHost == "" || c.EmailUsername == "" || c.EmailPassword == "" || c.AdminReceivingEmail == "" {
		logrus.Warn("one or more email environment variables are not set, email notifications may not work")
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
