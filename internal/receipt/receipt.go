// Package receipt renders the downloadable order receipt artifact.
package receipt

import (
	"context"
	"time"
)

// Item is one order line as it appears on the receipt.
type Item struct {
	Name     string
	Price    int64
	Color    string
	Size     string
	Quantity int
}

// Snapshot is the immutable input to a receipt rendering. It is assembled
// once by the checkout flow and never mutated afterwards.
type Snapshot struct {
	OrderNumber     string
	Date            time.Time
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Items           []Item
	Subtotal        int64
	Discount        int64
	DiscountLabel   string
	Total           int64
}

// Filename is the deterministic artifact name for an order number.
func (s *Snapshot) Filename() string {
	return "Recu_Labelia_" + s.OrderNumber + ".pdf"
}

// Renderer produces the receipt artifact for a finalised order. Rendering
// consumes the snapshot and nothing downstream parses the output.
type Renderer interface {
	// Render produces the receipt document as bytes.
	Render(ctx context.Context, s *Snapshot) ([]byte, error)

	// RenderToFile renders the receipt and writes it to the configured
	// destination under its deterministic filename, returning the path.
	RenderToFile(ctx context.Context, s *Snapshot) (string, error)
}
