// Package cart implements the session shopping cart: a pure line-item
// ledger, a pricing rule for applied promotions, and a service that
// persists the ledger to a durable per-session slot after every mutation.
package cart

import "labelia/internal/model"

// LineItem is one (product, colour, size) combination with a quantity.
// The product is a snapshot taken when the item was first added.
type LineItem struct {
	Product  model.Product `json:"product"`
	Color    string        `json:"color"`
	Size     string        `json:"size"`
	Quantity int           `json:"quantity"`
}

// Key identifies a line item within a cart.
type Key struct {
	ProductID string
	Color     string
	Size      string
}

// Key returns the identity of the line item.
func (li LineItem) Key() Key {
	return Key{ProductID: li.Product.ID, Color: li.Color, Size: li.Size}
}

// Cart is the in-memory ledger for one session. Its methods are pure state
// transitions with no I/O; persistence is layered on top by Service.
//
// At most one line item exists per Key: adding an existing variant merges
// into the line instead of appending a duplicate.
type Cart struct {
	Items     []LineItem
	Promotion *AppliedPromotion
}

func (c *Cart) find(k Key) int {
	for i := range c.Items {
		if c.Items[i].Key() == k {
			return i
		}
	}
	return -1
}

// Add merges one unit of the given variant into the cart: an existing line
// item gains quantity 1, otherwise a new line item is appended.
func (c *Cart) Add(product model.Product, color, size string) {
	k := Key{ProductID: product.ID, Color: color, Size: size}
	if i := c.find(k); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, LineItem{
		Product:  product,
		Color:    color,
		Size:     size,
		Quantity: 1,
	})
}

// Remove deletes the matching line item. Removing an absent key is a no-op.
func (c *Cart) Remove(productID, color, size string) {
	k := Key{ProductID: productID, Color: color, Size: size}
	if i := c.find(k); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity overwrites the quantity of the matching line item. A quantity
// of zero or less removes the line. Setting an absent key is a no-op.
func (c *Cart) SetQuantity(productID, color, size string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID, color, size)
		return
	}
	k := Key{ProductID: productID, Color: color, Size: size}
	if i := c.find(k); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// Clear empties the cart and drops any applied promotion.
func (c *Cart) Clear() {
	c.Items = nil
	c.Promotion = nil
}

// Empty reports whether the cart holds no line items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of all line-item quantities, recomputed on every
// call.
func (c *Cart) TotalItems() int {
	total := 0
	for _, li := range c.Items {
		total += li.Quantity
	}
	return total
}

// TotalPrice is the undiscounted subtotal in minor currency units,
// recomputed on every call.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, li := range c.Items {
		total += li.Product.Price * int64(li.Quantity)
	}
	return total
}

// View is the serialisable projection of a cart with its derived totals.
type View struct {
	Items      []LineItem        `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int64             `json:"totalPrice"`
	Discount   int64             `json:"discount"`
	Total      int64             `json:"total"`
	Promotion  *AppliedPromotion `json:"promotion,omitempty"`
}

// Snapshot derives a View from the cart.
func (c *Cart) Snapshot() View {
	subtotal := c.TotalPrice()
	discount := DiscountAmount(subtotal, c.Promotion)
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	return View{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: subtotal,
		Discount:   discount,
		Total:      subtotal - discount,
		Promotion:  c.Promotion,
	}
}
