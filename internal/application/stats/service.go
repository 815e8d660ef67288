package stats

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coupon-quest/coupon-quest/internal/domain/coupon"
	domain "github.com/coupon-quest/coupon-quest/internal/domain/stats"
)

// Service exposes read-only reporting over the ledger counter and the pool.
type Service struct {
	stats   domain.Repository
	coupons coupon.Repository
	logger  zerolog.Logger
}

// NewService creates a stats service.
func NewService(stats domain.Repository, coupons coupon.Repository, logger zerolog.Logger) *Service {
	return &Service{
		stats:   stats,
		coupons: coupons,
		logger:  logger.With().Str("service", "stats").Logger(),
	}
}

// LifetimeGiven returns the total number of coupons ever handed out.
func (s *Service) LifetimeGiven(ctx context.Context) (int64, error) {
	return s.stats.TotalGiven(ctx)
}

// PoolStatus describes the current coupon inventory.
type PoolStatus struct {
	Remaining int64 `json:"remaining"`
	Total     int64 `json:"total"`
}

func (s *Service) PoolStatus(ctx context.Context) (*PoolStatus, error) {
	remaining, err := s.coupons.CountUnclaimed(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.coupons.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PoolStatus{Remaining: remaining, Total: total}, nil
}

// AddCodes tops up the pool at runtime, skipping duplicates.
func (s *Service) AddCodes(ctx context.Context, codes []string) (int64, error) {
	inserted, err := s.coupons.InsertBatch(ctx, codes)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int("submitted", len(codes)).Int64("inserted", inserted).
		Msg("coupon pool topped up")
	return inserted, nil
}
