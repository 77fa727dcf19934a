package checkout

import "strings"

const orderNumberWidth = 6

// OrderNumber derives the short human-readable order number printed on
// receipts from a raw order identifier: digits only, truncated on the
// right to a fixed width and zero-padded when the identifier carries fewer
// digits.
func OrderNumber(id string) string {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == orderNumberWidth {
				break
			}
		}
	}

	digits := b.String()
	if len(digits) < orderNumberWidth {
		digits = strings.Repeat("0", orderNumberWidth-len(digits)) + digits
	}
	return digits
}
