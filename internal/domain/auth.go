package domain

import (
	"context"
	"errors"

	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthDomain struct {
	logger *logrus.Logger
	admins AdminStore
}

func NewAuthDomain(logger *logrus.Logger, admins AdminStore) *AuthDomain {
	return &AuthDomain{logger: logger, admins: admins}
}

// Login verifies an admin credential against the stored bcrypt hash.
func (d *AuthDomain) Login(ctx context.Context, username, password string) error {

	if username == "" || password == "" {
		return errorx.New(errorx.Validation, "Username and password are required")
	}

	admin, err := d.admins.AdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, types.ErrAdminNotFound) {
			return errorx.New(errorx.Unauthorized, "Invalid username or password")
		}
		d.logger.WithError(err).Error("failed to load admin credential")
		return errorx.Unknown
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		return errorx.New(errorx.Unauthorized, "Invalid username or password")
	}

	return nil
}
