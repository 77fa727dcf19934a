package receipt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
)

const pageWidth = 210.0 // A4 portrait, mm
const marginX = 20.0

// pdfRenderer implements Renderer as an A4 PDF in the house style.
type pdfRenderer struct {
	outDir string
	logger zerolog.Logger
}

// NewPDFRenderer creates a PDF receipt renderer writing artifacts to
// outDir.
func NewPDFRenderer(outDir string, logger zerolog.Logger) Renderer {
	return &pdfRenderer{
		outDir: outDir,
		logger: logger.With().Str("component", "receipt-renderer").Logger(),
	}
}

// Render produces the receipt document as bytes.
func (r *pdfRenderer) Render(ctx context.Context, s *Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(marginX, 20, marginX)
	pdf.AddPage()

	separator := func() {
		pdf.SetDrawColor(180, 160, 120)
		pdf.SetLineWidth(0.4)
		y := pdf.GetY() + 2
		pdf.Line(marginX, y, pageWidth-marginX, y)
		pdf.SetY(y + 4)
	}

	centered := func(text string, size float64, style string, rgb [3]int) {
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(0, size*0.6, tr(text), "", 1, "C", false, 0, "")
	}

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(120, 100, 60)
		pdf.CellFormat(0, 6, tr(text), "", 1, "L", false, 0, "")
	}

	line := func(text string, size float64, style string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(0, 5.5, tr(text), "", 1, "L", false, 0, "")
	}

	// Header
	centered("LABELIA", 22, "B", [3]int{20, 20, 20})
	centered("Bijoux en Acier Inoxydable", 9, "I", [3]int{120, 100, 60})
	separator()

	centered("REÇU OFFICIEL", 13, "B", [3]int{20, 20, 20})
	centered(fmt.Sprintf("Commande n° %s", s.OrderNumber), 10, "", [3]int{80, 80, 80})
	centered(fmt.Sprintf("Date : %s", s.Date.Format("02/01/2006")), 10, "", [3]int{80, 80, 80})
	separator()

	// Customer block
	heading("CLIENT")
	line(s.CustomerName, 11, "B")
	line(s.CustomerEmail, 10, "")
	line(s.CustomerPhone, 10, "")
	line(s.CustomerAddress, 10, "")
	separator()

	// Line items
	heading("DÉTAIL DES BIJOUX")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(110, 5, tr("Bijou"), "", 0, "L", false, 0, "")
	pdf.CellFormat(20, 5, tr("Qté"), "", 0, "C", false, 0, "")
	pdf.CellFormat(40, 5, "Prix", "", 1, "R", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	y := pdf.GetY() + 1
	pdf.Line(marginX, y, pageWidth-marginX, y)
	pdf.SetY(y + 2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 30, 30)
	for _, item := range s.Items {
		label := fmt.Sprintf("%s — %s · T.%s", item.Name, item.Color, item.Size)
		lineTotal := item.Price * int64(item.Quantity)
		pdf.CellFormat(110, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d FCFA", lineTotal), "", 1, "R", false, 0, "")
	}
	separator()

	// Totals
	heading("RÉCAPITULATIF")
	row := func(label, value string, rgb [3]int) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(130, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(value), "", 1, "R", false, 0, "")
	}

	row("Sous-total", fmt.Sprintf("%d FCFA", s.Subtotal), [3]int{30, 30, 30})
	if s.Discount > 0 {
		label := "Réduction"
		if s.DiscountLabel != "" {
			label = fmt.Sprintf("Réduction %s", s.DiscountLabel)
		}
		row(label, fmt.Sprintf("-%d FCFA", s.Discount), [3]int{180, 60, 60})
	}
	row("Livraison", "Offerte", [3]int{34, 139, 34})

	pdf.Ln(2)
	pdf.SetFillColor(245, 240, 230)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(130, 10, tr("TOTAL PAYÉ :"), "", 0, "L", true, 0, "")
	pdf.CellFormat(40, 10, fmt.Sprintf("%d FCFA", s.Total), "", 1, "R", true, 0, "")
	separator()

	// Payment
	heading("PAIEMENT")
	line("À la livraison", 10, "")
	separator()

	// Footer
	centered("labelia-jewel.com  ·  contact@labelia.fr", 8, "", [3]int{160, 140, 100})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error().Err(err).Str("order_number", s.OrderNumber).Msg("failed to render receipt")
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderToFile renders the receipt and writes it under its deterministic
// filename in the output directory.
func (r *pdfRenderer) RenderToFile(ctx context.Context, s *Snapshot) (string, error) {
	data, err := r.Render(ctx, s)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipts directory: %w", err)
	}

	path := filepath.Join(r.outDir, s.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("failed to write receipt")
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}

	r.logger.Info().
		Str("order_number", s.OrderNumber).
		Str("path", path).
		Msg("receipt generated")

	return path, nil
}
