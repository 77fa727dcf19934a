package receipt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		OrderNumber:     "000123",
		Date:            time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		CustomerName:    "Awa Diallo",
		CustomerEmail:   "awa@example.com",
		CustomerPhone:   "+221770000000",
		CustomerAddress: "12 Rue des Bijoutiers, Dakar",
		Items: []Item{
			{Name: "Bague Or Rose", Price: 125000, Color: "gold", Size: "M", Quantity: 2},
			{Name: "Chaîne Argent", Price: 40000, Color: "silver", Size: "45cm", Quantity: 1},
		},
		Subtotal:      290000,
		Discount:      29000,
		DiscountLabel: "-10%",
		Total:         261000,
	}
}

func TestSnapshot_Filename(t *testing.T) {
	s := &Snapshot{OrderNumber: "000123"}
	assert.Equal(t, "Recu_Labelia_000123.pdf", s.Filename())
}

func TestPDFRenderer_Render(t *testing.T) {
	r := NewPDFRenderer(t.TempDir(), zerolog.Nop())

	data, err := r.Render(context.Background(), testSnapshot())

	require.NoError(t, err)
	require.NotEmpty(t, data)

	// A PDF document always opens with the %PDF marker.
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRenderer_RenderWithoutDiscount(t *testing.T) {
	r := NewPDFRenderer(t.TempDir(), zerolog.Nop())

	s := testSnapshot()
	s.Discount = 0
	s.DiscountLabel = ""
	s.Total = s.Subtotal

	data, err := r.Render(context.Background(), s)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPDFRenderer_RenderToFile(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir, zerolog.Nop())

	path, err := r.RenderToFile(context.Background(), testSnapshot())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Recu_Labelia_000123.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRenderer_RenderToFileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")
	r := NewPDFRenderer(dir, zerolog.Nop())

	path, err := r.RenderToFile(context.Background(), testSnapshot())

	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
