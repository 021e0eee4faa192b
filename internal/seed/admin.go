package seed

import (
	"context"
	"errors"
	"fmt"

	"globalfund/internal/store"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const defaultAdminUsername = "admin"

// EnsureAdmin creates the default admin credential when none exists yet. It
// runs at every process start and is a no-op after the first.
func EnsureAdmin(ctx context.Context, logger *logrus.Logger, admins *store.AdminRepository, initialPassword string) error {

	_, err := admins.AdminByUsername(ctx, defaultAdminUsername)
	if err == nil {
		logger.Info("admin user already exists, skipping default creation")
		return nil
	}
	if !errors.Is(err, types.ErrAdminNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash initial admin password: %w", err)
	}

	err = admins.CreateAdmin(ctx, &types.AdminUser{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.WithField("username", defaultAdminUsername).
		Warn("default admin user created with the initial password, change it immediately in production")

	return nil
}
