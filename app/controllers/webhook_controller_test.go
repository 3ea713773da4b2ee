package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/apperr"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/jobqueue"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/usercontext"
)

type fakeLicensingService struct {
	recorded  []string
	recordErr error
}

func (f *fakeLicensingService) CreateCheckoutSession(ctx context.Context, orderID uint, uc usercontext.UserContext) (*payments.CheckoutSessionRef, error) {
	return &payments.CheckoutSessionRef{SessionID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

func (f *fakeLicensingService) RecordIncomingEvent(ctx context.Context, event *payments.WebhookEvent) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, event.ID)
	return nil
}

type stubJobRepo struct{}

func (stubJobRepo) Enqueue(tx *gorm.DB, job *models.Job) error { return nil }
func (stubJobRepo) ClaimNext(jobType string, now time.Time) (*models.Job, error) {
	return nil, nil
}
func (stubJobRepo) Update(job *models.Job) error { return nil }
func (stubJobRepo) Delete(id uint) error         { return nil }
func (stubJobRepo) RequeueStuck(olderThan time.Duration, now time.Time) (int64, error) {
	return 0, nil
}
func (stubJobRepo) CountByStatus(status string) (int64, error) { return 0, nil }

func newWebhookApp(svc *fakeLicensingService) *fiber.App {
	queue := jobqueue.NewQueue(stubJobRepo{}, nil)
	Initialize(svc, jobqueue.NewManager(queue, stubJobRepo{}))

	app := fiber.New()
	app.Post("/webhooks/payment", HandlePaymentWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhooks/payment", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestHandlePaymentWebhook(t *testing.T) {
	completedBody := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`

	t.Run("Accepted event answers 200", func(t *testing.T) {
		svc := &fakeLicensingService{}
		app := newWebhookApp(svc)

		status, body := postWebhook(t, app, completedBody)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "accepted", body["message"])
		assert.Equal(t, []string{"evt_1"}, svc.recorded)
	})

	t.Run("Duplicate event answers 200 so the gateway stops retrying", func(t *testing.T) {
		svc := &fakeLicensingService{recordErr: apperr.Conflict("duplicate_event", "Webhook event already processed")}
		app := newWebhookApp(svc)

		status, body := postWebhook(t, app, completedBody)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "duplicate ignored", body["message"])
	})

	t.Run("Unhandled event type is acknowledged without recording", func(t *testing.T) {
		svc := &fakeLicensingService{}
		app := newWebhookApp(svc)

		status, body := postWebhook(t, app, `{"id":"evt_2","type":"invoice.paid"}`)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "ignored", body["message"])
		assert.Empty(t, svc.recorded)
	})

	t.Run("Malformed body answers 400", func(t *testing.T) {
		svc := &fakeLicensingService{}
		app := newWebhookApp(svc)

		status, _ := postWebhook(t, app, `{broken`)

		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Storage failure answers 500 so the gateway redelivers", func(t *testing.T) {
		svc := &fakeLicensingService{recordErr: apperr.Internal("event_store_failed", "Failed to record webhook event", nil)}
		app := newWebhookApp(svc)

		status, _ := postWebhook(t, app, completedBody)

		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}
