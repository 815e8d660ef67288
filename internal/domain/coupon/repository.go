package coupon

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
)

// Repository defines persistence for the coupon pool.
//
// ClaimNext is the only operation that writes claimed_by; every other code
// path treats the pool as read-only or append-only.
type Repository interface {
	// GetByClaimer returns the coupon bound to userID, or nil if the user
	// has never claimed one.
	GetByClaimer(ctx context.Context, userID string) (*Coupon, error)

	// ClaimNext atomically binds one unclaimed coupon to userID. It returns
	// the bound coupon and fresh=true when the binding happened in this
	// call, the user's existing coupon and fresh=false when the user had
	// already claimed, and (nil, false) when the pool is exhausted.
	ClaimNext(ctx context.Context, userID string) (c *Coupon, fresh bool, err error)

	// InsertBatch adds codes to the pool, silently skipping codes that are
	// already present. Returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, codes []string) (int64, error)

	CountUnclaimed(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
