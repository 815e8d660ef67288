package stats

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import "context"

// Repository defines persistence for the lifetime-claims ledger counter.
// The counter is a reporting aggregate: it is incremented once per fresh
// claim, and an increment failure must never undo the claim itself.
type Repository interface {
	Increment(ctx context.Context) error

	// TotalGiven returns the lifetime number of coupons handed out, or 0
	// when the counter row does not exist yet.
	TotalGiven(ctx context.Context) (int64, error)
}
