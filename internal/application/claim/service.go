package claim

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coupon-quest/coupon-quest/internal/domain/coupon"
	"github.com/coupon-quest/coupon-quest/internal/domain/stats"
)

// Service coordinates coupon claims: the atomic binding is delegated to the
// repository transaction, and the lifetime counter is advanced as a
// best-effort secondary effect.
type Service struct {
	coupons coupon.Repository
	stats   stats.Repository
	logger  zerolog.Logger
}

// NewService creates a claim service.
func NewService(coupons coupon.Repository, stats stats.Repository, logger zerolog.Logger) *Service {
	return &Service{
		coupons: coupons,
		stats:   stats,
		logger:  logger.With().Str("service", "claim").Logger(),
	}
}

// Claim binds one unclaimed coupon to userID. A nil coupon with a nil error
// means the pool is exhausted, which is a normal terminal outcome. If the
// user already holds a coupon the call is an idempotent no-op returning the
// existing coupon; the quest admission gate should have prevented that, so
// it is logged as a contract violation.
func (s *Service) Claim(ctx context.Context, userID string) (*coupon.Coupon, error) {
	c, fresh, err := s.coupons.ClaimNext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		s.logger.Info().Str("user_id", userID).Msg("coupon pool exhausted")
		return nil, nil
	}
	if !fresh {
		s.logger.Warn().Str("user_id", userID).Str("code", c.Code).
			Msg("claim requested for user who already holds a coupon")
		return c, nil
	}

	// The binding is the source of truth; a counter failure must not undo
	// the user's claim.
	if err := s.stats.Increment(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).
			Msg("failed to increment lifetime counter")
	}

	s.logger.Info().Str("user_id", userID).Str("coupon_id", c.CouponID.String()).
		Msg("coupon claimed")
	return c, nil
}
