package store

import (
	"context"
	"fmt"

	"globalfund/internal/utils"
	"globalfund/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adminTableName = "globalfund.admins"

var adminColumns = utils.StructTagValues(types.AdminUser{})

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error) {

	query, args, err := psql().Select(adminColumns...).From(adminTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin query: %w", err)
	}

	var admin = new(types.AdminUser)
	err = pgxscan.Get(ctx, r.pool, admin, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrAdminNotFound
	}

	return admin, nil
}

func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *types.AdminUser) error {

	adminMap := utils.StructToMap(admin)

	query, args, err := psql().Insert(adminTableName).SetMap(adminMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert admin query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create admin")
}
