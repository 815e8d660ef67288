package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository implements stats.Repository over the single-row bot_stats
// table.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) Increment(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bot_stats (id, total_coupons_given) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE
		SET total_coupons_given = bot_stats.total_coupons_given + 1
	`)
	return err
}

func (r *StatsRepository) TotalGiven(ctx context.Context) (int64, error) {
	row := r.pool.QueryRow(ctx, `SELECT total_coupons_given FROM bot_stats WHERE id=1`)
	var total int64
	if err := row.Scan(&total); err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}
