package coupon

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is one unit of the finite distributable pool. Once ClaimedBy is set
// it is never cleared or reassigned.
type Coupon struct {
	ID        int64      `json:"id"`
	CouponID  uuid.UUID  `json:"couponId"`
	Code      string     `json:"code"`
	ClaimedBy *string    `json:"claimedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ClaimedAt *time.Time `json:"claimedAt,omitempty"`
}

func (c *Coupon) Claimed() bool {
	return c.ClaimedBy != nil
}
