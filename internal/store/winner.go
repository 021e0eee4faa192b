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

const winnerTableName = "globalfund.winners"

var winnerColumns = utils.StructTagValues(types.Winner{})

type WinnerRepository struct {
	pool *pgxpool.Pool
}

func NewWinnerRepository(pool *pgxpool.Pool) *WinnerRepository {
	return &WinnerRepository{pool: pool}
}

func (r *WinnerRepository) Winner(ctx context.Context, winnerID string) (*types.Winner, error) {

	query, args, err := psql().Select(winnerColumns...).From(winnerTableName).
		Where(sq.Eq{"id": winnerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate winner query: %w", err)
	}

	var winner = new(types.Winner)
	err = pgxscan.Get(ctx, r.pool, winner, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrWinnerNotFound
	}

	return winner, nil
}

func (r *WinnerRepository) Winners(ctx context.Context) ([]*types.Winner, error) {

	query, args, err := psql().Select(winnerColumns...).From(winnerTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate winners query: %w", err)
	}

	var winners = make([]*types.Winner, 0)
	err = pgxscan.Select(ctx, r.pool, &winners, query, args...)
	if err != nil {
		return nil, err
	}

	return winners, nil
}

// WinnerBySourceApplication looks up the winner back-referencing an
// application, if any. Approval uses it to stay idempotent.
func (r *WinnerRepository) WinnerBySourceApplication(ctx context.Context, applicationID string) (*types.Winner, error) {

	query, args, err := psql().Select(winnerColumns...).From(winnerTableName).
		Where(sq.Eq{"source_application_id": applicationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate winner back-reference query: %w", err)
	}

	var winner = new(types.Winner)
	err = pgxscan.Get(ctx, r.pool, winner, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrWinnerNotFound
	}

	return winner, nil
}

// SearchWinners matches name or winning code case-insensitively, returning at
// most one record.
func (r *WinnerRepository) SearchWinners(ctx context.Context, search string) ([]*types.Winner, error) {

	pattern := fmt.Sprintf("%%%s%%", search)

	query, args, err := psql().Select(winnerColumns...).From(winnerTableName).
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"winning_code": pattern},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate winner search query: %w", err)
	}

	var winners = make([]*types.Winner, 0)
	err = pgxscan.Select(ctx, r.pool, &winners, query, args...)
	if err != nil {
		return nil, err
	}

	return winners, nil
}

func (r *WinnerRepository) CreateWinner(ctx context.Context, winner *types.Winner) error {

	if winner.ID == "" {
		winner.ID = utils.NanoID()
	}
	if winner.CreatedAt.IsZero() {
		winner.CreatedAt = time.Now().UTC()
	}

	winnerMap := utils.StructToMap(winner)

	query, args, err := psql().Insert(winnerTableName).SetMap(winnerMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert winner query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create winner")
}

// UpdateWinner applies a partial update and reports how many rows matched.
// The domain layer decides what goes into changes; an empty map never reaches
// this method.
func (r *WinnerRepository) UpdateWinner(ctx context.Context, winnerID string, changes map[string]any) (int64, error) {

	query, args, err := psql().Update(winnerTableName).SetMap(changes).
		Where(sq.Eq{"id": winnerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate update winner query for winner %s: %w", winnerID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, utils.ErrorWrapOrNil(err, "failed to update winner")
	}

	return tag.RowsAffected(), nil
}

// UpdateWinnerStatus flips the status only when it actually changes, so the
// caller can tell "updated" apart from "no change" by the row count.
func (r *WinnerRepository) UpdateWinnerStatus(ctx context.Context, winnerID string, status types.WinnerStatus, at time.Time) (int64, error) {

	query, args, err := psql().Update(winnerTableName).
		Set("status", status).
		Set("updated_at", at).
		Where(sq.Eq{"id": winnerID}).
		Where(sq.NotEq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate update winner status query for winner %s: %w", winnerID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, utils.ErrorWrapOrNil(err, "failed to update winner status")
	}

	return tag.RowsAffected(), nil
}

func (r *WinnerRepository) DeleteWinner(ctx context.Context, winnerID string) (int64, error) {

	query, args, err := psql().Delete(winnerTableName).
		Where(sq.Eq{"id": winnerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate delete winner query for winner %s: %w", winnerID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, utils.ErrorWrapOrNil(err, "failed to delete winner")
	}

	return tag.RowsAffected(), nil
}

func (r *WinnerRepository) CountWinners(ctx context.Context) (int64, error) {

	query, args, err := psql().Select("count(*)").From(winnerTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count winners query: %w", err)
	}

	var count int64
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, utils.ErrorWrapOrNil(err, "failed to count winners")
	}

	return count, nil
}
