package model

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is a code-addressed discount rule. Discount is either a
// percentage (IsPercentage true) or a flat amount in minor currency units.
type Promotion struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Code         string     `json:"code" db:"code"`
	Description  string     `json:"description" db:"description"`
	Discount     float64    `json:"discount" db:"discount"`
	IsPercentage bool       `json:"isPercentage" db:"is_percentage"`
	Active       bool       `json:"active" db:"active"`
	StartDate    *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate      *time.Time `json:"endDate,omitempty" db:"end_date"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// PromotionRequest is the payload for creating a promotion.
type PromotionRequest struct {
	Code         string     `json:"code"`
	Description  string     `json:"description"`
	Discount     *float64   `json:"discount"`
	IsPercentage bool       `json:"isPercentage"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

// PromotionUpdate carries a partial promotion update. Nil fields are left
// untouched.
type PromotionUpdate struct {
	Code         *string    `json:"code,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Discount     *float64   `json:"discount,omitempty"`
	IsPercentage *bool      `json:"isPercentage,omitempty"`
	Active       *bool      `json:"active,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}
