// Package notify delivers the license email after a successful payment:
// invoice PDF and license QR code, sent to the buying company.
package notify

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/docstore"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/invoice"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/mail"
)

const qrImageSize = 256

// Dispatcher builds and sends license delivery emails. The document store is
// optional; when nil, invoices are not archived.
type Dispatcher struct {
	repos  *repository.Repositories
	mailer mail.Mailer
	store  docstore.Store
}

// NewDispatcher creates the notification dispatcher.
func NewDispatcher(repos *repository.Repositories, mailer mail.Mailer, store docstore.Store) *Dispatcher {
	return &Dispatcher{repos: repos, mailer: mailer, store: store}
}

// Deliver sends the license email for one completed order. A returned error
// means delivery must be retried; the committed payment state is never
// touched here.
func (d *Dispatcher) Deliver(ctx context.Context, orderID, licenseID uint) error {
	order, err := d.repos.Order.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	license, err := d.repos.License.GetByID(licenseID)
	if err != nil {
		return fmt.Errorf("failed to load license %d: %w", licenseID, err)
	}
	company, err := d.repos.Company.GetByID(order.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to load company %d: %w", order.CompanyID, err)
	}
	offer, err := d.repos.Offer.GetByID(order.OfferID)
	if err != nil {
		return fmt.Errorf("failed to load offer %d: %w", order.OfferID, err)
	}

	invoiceNumber := invoice.NewInvoiceNumber(order.OrderNumber)
	invoicePDF, err := invoice.Generate(invoice.Data{
		InvoiceNumber: invoiceNumber,
		IssuedAt:      order.UpdatedAt,
		CompanyName:   company.Name,
		CompanyEmail:  company.Email,
		OrderNumber:   order.OrderNumber,
		OfferName:     offer.Name,
		Amount:        order.Amount,
		Currency:      order.Currency,
		LicenseExpiry: license.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to generate invoice: %w", err)
	}

	qrPNG, err := qrcode.Encode(license.QRCodePayload, qrcode.Medium, qrImageSize)
	if err != nil {
		return fmt.Errorf("failed to render license QR code: %w", err)
	}

	subject := fmt.Sprintf("Your diagnostics license for order %s", order.OrderNumber)
	body := emailBody(company, offer, order, license)

	attachments := []mail.Attachment{
		{Filename: invoiceNumber + ".pdf", ContentType: "application/pdf", Data: invoicePDF},
		{Filename: "license-qr.png", ContentType: "image/png", Data: qrPNG},
	}

	if err := d.mailer.Send(company.Email, subject, body, attachments); err != nil {
		return fmt.Errorf("failed to send license mail for order %s: %w", order.OrderNumber, err)
	}

	log.Infof("[Notify] License mail for order %s sent to %s", order.OrderNumber, company.Email)

	d.archiveInvoice(ctx, company.ID, invoiceNumber, invoicePDF)

	return nil
}

// archiveInvoice stores the invoice PDF in the document store. Best-effort:
// the mail already went out, so a failed upload is only logged.
func (d *Dispatcher) archiveInvoice(ctx context.Context, companyID uint, invoiceNumber string, pdf []byte) {
	if d.store == nil {
		return
	}
	key := fmt.Sprintf("invoices/%d/%s.pdf", companyID, invoiceNumber)
	if err := d.store.Put(ctx, key, "application/pdf", pdf); err != nil {
		log.Errorf("[Notify] Failed to archive invoice %s: %v", invoiceNumber, err)
		return
	}
	log.Infof("[Notify] Invoice archived at %s", key)
}

func emailBody(company *models.Company, offer *models.Offer, order *models.Order, license *models.License) string {
	return fmt.Sprintf(`<html><body>
<p>Hello %s,</p>
<p>thank you for your purchase. Your <strong>%s</strong> license for order %s is now active
and valid until <strong>%s</strong>.</p>
<p>The attached QR code activates the license on your diagnostic devices.
Your invoice is attached as PDF.</p>
<p>Your LicenseHub team</p>
</body></html>`,
		company.Name, offer.Name, order.OrderNumber, license.ExpiresAt.Format("2006-01-02"))
}
