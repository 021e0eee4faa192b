package store

import (
	"context"
	"fmt"
	"time"

	"globalfund/internal/utils"
	"globalfund/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationTableName = "globalfund.applications"

var applicationColumns = utils.StructTagValues(types.Application{})

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Application(ctx context.Context, applicationID string) (*types.Application, error) {

	query, args, err := psql().Select(applicationColumns...).From(applicationTableName).
		Where(sq.Eq{"id": applicationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var application = new(types.Application)
	err = pgxscan.Get(ctx, r.pool, application, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrApplicationNotFound
	}

	return application, nil
}

func (r *ApplicationRepository) Applications(ctx context.Context) ([]*types.Application, error) {

	query, args, err := psql().Select(applicationColumns...).From(applicationTableName).
		OrderBy("submitted_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate applications query: %w", err)
	}

	var applications = make([]*types.Application, 0)
	err = pgxscan.Select(ctx, r.pool, &applications, query, args...)
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, application *types.Application) error {

	application.ID = utils.NanoID()
	application.Status = types.ApplicationStatusPending
	application.SubmittedAt = time.Now().UTC()

	applicationMap := utils.StructToMap(application)

	query, args, err := psql().Insert(applicationTableName).SetMap(applicationMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert application query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create application")
}

// MarkApproved flips a not-yet-approved application to Approved. The status
// guard in the WHERE clause makes concurrent approvals race-safe: the second
// caller matches zero rows and gets updated=false.
func (r *ApplicationRepository) MarkApproved(ctx context.Context, applicationID string, at time.Time) (bool, error) {

	query, args, err := psql().Update(applicationTableName).
		Set("status", types.ApplicationStatusApproved).
		Set("approved_at", at).
		Where(sq.Eq{"id": applicationID}).
		Where(sq.NotEq{"status": types.ApplicationStatusApproved}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate approve query for application %s: %w", applicationID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, utils.ErrorWrapOrNil(err, "failed to approve application")
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ApplicationRepository) MarkRejected(ctx context.Context, applicationID string, at time.Time) (bool, error) {

	query, args, err := psql().Update(applicationTableName).
		Set("status", types.ApplicationStatusRejected).
		Set("rejected_at", at).
		Where(sq.Eq{"id": applicationID}).
		Where(sq.NotEq{"status": types.ApplicationStatusRejected}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate reject query for application %s: %w", applicationID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, utils.ErrorWrapOrNil(err, "failed to reject application")
	}

	return tag.RowsAffected() > 0, nil
}
