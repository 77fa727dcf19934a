package cart

import (
	"fmt"
	"math"
)

// AppliedPromotion is the session-scoped result of redeeming a promotion
// code. It is never written to the durable cart slot; a restored session
// starts with no discount.
type AppliedPromotion struct {
	Code         string  `json:"code"`
	Description  string  `json:"description,omitempty"`
	Discount     float64 `json:"discount"`
	IsPercentage bool    `json:"isPercentage"`
}

// Label renders the discount for display, e.g. "-10%" for a percentage
// promotion or "-5000" for a flat one.
func (p *AppliedPromotion) Label() string {
	if p == nil {
		return ""
	}
	value := strconvFloat(p.Discount)
	if p.IsPercentage {
		return fmt.Sprintf("-%s%%", value)
	}
	return fmt.Sprintf("-%s", value)
}

func strconvFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// DiscountAmount converts an applied promotion into a concrete discount on
// the given subtotal, in minor currency units. It is a pure function: the
// same inputs always produce the same amount, however many times the code
// was validated.
//
// A percentage promotion discounts round(subtotal * discount / 100). A flat
// promotion discounts its amount directly. The result is clamped to
// [0, subtotal] so an order total can never go negative.
func DiscountAmount(subtotal int64, p *AppliedPromotion) int64 {
	if p == nil || subtotal <= 0 {
		return 0
	}

	var amount int64
	if p.IsPercentage {
		amount = int64(math.Round(float64(subtotal) * p.Discount / 100))
	} else {
		amount = int64(math.Round(p.Discount))
	}

	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}
