package domain

import (
	"context"
	"testing"

	"globalfund/internal/testutil"
	"globalfund/pkg/errorx"
	"globalfund/pkg/types"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()

	admins := testutil.NewAdminStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	admins.Admins["admin"] = &types.AdminUser{Username: "admin", PasswordHash: hash}

	d := NewAuthDomain(testLogger(), admins)

	require.NoError(t, d.Login(ctx, "admin", "correct horse"))

	t.Run("wrong password", func(t *testing.T) {
		err := d.Login(ctx, "admin", "battery staple")

		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.Unauthorized, errx.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := d.Login(ctx, "nobody", "correct horse")

		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.Unauthorized, errx.Code)
		require.Equal(t, "Invalid username or password", errx.Message)
	})

	t.Run("missing credentials", func(t *testing.T) {
		err := d.Login(ctx, "", "")

		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.Validation, errx.Code)
	})
}
