package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coupon-quest/coupon-quest/internal/domain/coupon"
)

// CouponRepository implements coupon.Repository.
type CouponRepository struct {
	pool *pgxpool.Pool
}

func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

const couponColumns = `id, coupon_id, code, claimed_by, created_at, claimed_at`

func (r *CouponRepository) GetByClaimer(ctx context.Context, userID string) (*coupon.Coupon, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+couponColumns+`
		FROM coupons WHERE claimed_by=$1
	`, userID)
	return scanCoupon(row)
}

// ClaimNext binds one unclaimed coupon to userID inside a single
// transaction. The row lock (FOR UPDATE SKIP LOCKED) keeps concurrent
// claimers off the same row, and the partial unique index on claimed_by
// rejects a second binding for the same user even if two transactions race
// past the re-check.
func (r *CouponRepository) ClaimNext(ctx context.Context, userID string) (*coupon.Coupon, bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	existing, err := scanCoupon(tx.QueryRow(ctx, `
		SELECT `+couponColumns+`
		FROM coupons WHERE claimed_by=$1
	`, userID))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	c, err := scanCoupon(tx.QueryRow(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE claimed_by IS NULL
		ORDER BY id
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`))
	if err != nil {
		return nil, false, err
	}
	if c == nil {
		return nil, false, nil
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
		UPDATE coupons SET claimed_by=$1, claimed_at=$2 WHERE id=$3
	`, userID, now, c.ID); err != nil {
		return nil, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}

	c.ClaimedBy = &userID
	c.ClaimedAt = &now
	return c, true, nil
}

func (r *CouponRepository) InsertBatch(ctx context.Context, codes []string) (int64, error) {
	var inserted int64
	for _, code := range codes {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO coupons (coupon_id, code, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO NOTHING
		`, uuid.New(), code, time.Now().UTC())
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (r *CouponRepository) CountUnclaimed(ctx context.Context) (int64, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coupons WHERE claimed_by IS NULL`)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CouponRepository) Count(ctx context.Context) (int64, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coupons`)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var c coupon.Coupon
	if err := row.Scan(&c.ID, &c.CouponID, &c.Code, &c.ClaimedBy, &c.CreatedAt, &c.ClaimedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
