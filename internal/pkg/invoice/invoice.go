// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Data carries everything a rendered invoice shows. All values are resolved
// by the caller; this package only does layout.
type Data struct {
	InvoiceNumber string
	IssuedAt      time.Time
	CompanyName   string
	CompanyEmail  string
	OrderNumber   string
	OfferName     string
	Amount        float64
	Currency      string
	LicenseExpiry time.Time
}

// Generate renders the invoice and returns the PDF bytes.
func Generate(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", d.InvoiceNumber), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "LicenseHub")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice %s", d.InvoiceNumber))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", d.IssuedAt.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Billed to")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, d.CompanyName)
	pdf.Ln(6)
	pdf.Cell(0, 6, d.CompanyEmail)
	pdf.Ln(14)

	// Line items table: a single row, since one order buys one offer.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Order", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 8, d.OfferName, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, d.OrderNumber, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(d.Amount, d.Currency), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(130, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(d.Amount, d.Currency), "1", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("The purchased diagnostics license is valid until %s.", d.LicenseExpiry.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "The license QR code is attached to the delivery email.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", d.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

// NewInvoiceNumber derives the invoice number from the order number, so the
// same order always produces the same invoice reference.
func NewInvoiceNumber(orderNumber string) string {
	return "INV-" + orderNumber
}

func formatAmount(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
