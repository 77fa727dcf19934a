package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Payment is collected on delivery, so a freshly created
// order starts as pending.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusShipped = "shipped"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped:
		return true
	}
	return false
}

// Order represents a persisted customer order. Items are a denormalised
// snapshot of the cart at submission time; later catalogue edits do not
// rewrite history.
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	CustomerName    string      `json:"customerName" db:"customer_name"`
	CustomerEmail   string      `json:"customerEmail" db:"customer_email"`
	CustomerPhone   string      `json:"customerPhone" db:"customer_phone"`
	CustomerAddress string      `json:"customerAddress" db:"customer_address"`
	Items           []OrderItem `json:"items" db:"items"`
	Total           int64       `json:"total" db:"total"`
	Status          string      `json:"status" db:"status"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one line of an order snapshot.
type OrderItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the payload for creating an order.
type OrderRequest struct {
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total"`
}

// Customer is the distinct-by-email projection over orders used by the
// back office.
type Customer struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	FirstOrderDate time.Time `json:"firstOrderDate"`
}
