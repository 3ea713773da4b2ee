package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/mail"
)

type fakeOrderRepo struct {
	repository.OrderRepository
	order *models.Order
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	if f.order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

type fakeLicenseRepo struct {
	repository.LicenseRepository
	license *models.License
}

func (f *fakeLicenseRepo) GetByID(id uint) (*models.License, error) {
	if f.license == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.license, nil
}

type fakeCompanyRepo struct {
	repository.CompanyRepository
	company *models.Company
}

func (f *fakeCompanyRepo) GetByID(id uint) (*models.Company, error) {
	if f.company == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.company, nil
}

type fakeOfferRepo struct {
	repository.OfferRepository
	offer *models.Offer
}

func (f *fakeOfferRepo) GetByID(id uint) (*models.Offer, error) {
	if f.offer == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.offer, nil
}

type fakeMailer struct {
	err         error
	to          string
	subject     string
	body        string
	attachments []mail.Attachment
	calls       int
}

func (f *fakeMailer) Send(to, subject, htmlBody string, attachments []mail.Attachment) error {
	f.calls++
	f.to = to
	f.subject = subject
	f.body = htmlBody
	f.attachments = attachments
	return f.err
}

type fakeStore struct {
	keys []string
	err  error
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}

func newTestRepos() *repository.Repositories {
	return &repository.Repositories{
		Order: &fakeOrderRepo{order: &models.Order{
			ID:          7,
			CompanyID:   3,
			OfferID:     2,
			OrderNumber: "ORD-20260831-ABC123",
			Amount:      499.00,
			Currency:    "EUR",
			Status:      models.OrderStatusCompleted,
			UpdatedAt:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		}},
		License: &fakeLicenseRepo{license: &models.License{
			ID:            11,
			OrderID:       7,
			CompanyID:     3,
			QRCodePayload: "LIC-3-abc123",
			Status:        models.LicenseStatusActive,
			ExpiresAt:     time.Date(2027, 8, 31, 12, 0, 0, 0, time.UTC),
		}},
		Company: &fakeCompanyRepo{company: &models.Company{
			ID:    3,
			Name:  "Garage Muller GmbH",
			Email: "billing@garage-muller.example",
		}},
		Offer: &fakeOfferRepo{offer: &models.Offer{
			ID:             2,
			Name:           "Pro Diagnostics",
			DurationMonths: 12,
		}},
	}
}

func TestDeliverSendsMailWithAttachments(t *testing.T) {
	mailer := &fakeMailer{}
	store := &fakeStore{}
	d := NewDispatcher(newTestRepos(), mailer, store)

	err := d.Deliver(context.Background(), 7, 11)
	require.NoError(t, err)

	assert.Equal(t, "billing@garage-muller.example", mailer.to)
	assert.Contains(t, mailer.subject, "ORD-20260831-ABC123")
	assert.Contains(t, mailer.body, "Pro Diagnostics")
	assert.Contains(t, mailer.body, "2027-08-31")

	require.Len(t, mailer.attachments, 2)
	pdf := mailer.attachments[0]
	assert.Equal(t, "INV-ORD-20260831-ABC123.pdf", pdf.Filename)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF")), "attachment must be a PDF document")

	qr := mailer.attachments[1]
	assert.Equal(t, "license-qr.png", qr.Filename)
	assert.Equal(t, "image/png", qr.ContentType)
	assert.True(t, bytes.HasPrefix(qr.Data, []byte("\x89PNG")), "attachment must be a PNG image")

	assert.Equal(t, []string{"invoices/3/INV-ORD-20260831-ABC123.pdf"}, store.keys)
}

func TestDeliverMailFailurePropagates(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp refused")}
	d := NewDispatcher(newTestRepos(), mailer, nil)

	err := d.Deliver(context.Background(), 7, 11)

	assert.Error(t, err, "a failed send must surface so the queue retries it")
}

func TestDeliverArchiveFailureIsBestEffort(t *testing.T) {
	mailer := &fakeMailer{}
	store := &fakeStore{err: errors.New("bucket gone")}
	d := NewDispatcher(newTestRepos(), mailer, store)

	err := d.Deliver(context.Background(), 7, 11)

	assert.NoError(t, err, "archival problems must not trigger a resend")
	assert.Equal(t, 1, mailer.calls)
}

func TestDeliverWithoutStoreSkipsArchival(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(newTestRepos(), mailer, nil)

	assert.NoError(t, d.Deliver(context.Background(), 7, 11))
}
