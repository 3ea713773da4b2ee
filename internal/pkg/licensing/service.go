package licensing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/apperr"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/jobqueue"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/usercontext"
)

// Service orchestrates the payment-to-license workflow: checkout session
// creation, idempotent webhook intake and the atomic fulfillment transaction.
// All collaborators are injected so tests can swap them out.
type Service struct {
	db      *gorm.DB
	repos   *repository.Repositories
	gateway payments.CheckoutGateway
	now     func() time.Time
	runTx   func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// NewService creates the licensing service.
func NewService(db *gorm.DB, repos *repository.Repositories, gateway payments.CheckoutGateway) *Service {
	return &Service{
		db:      db,
		repos:   repos,
		gateway: gateway,
		now:     time.Now,
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
	}
}

// CreateCheckoutSession starts a hosted checkout for a pending order. Only
// admins may start checkouts, and only for orders of their own company.
func (s *Service) CreateCheckoutSession(ctx context.Context, orderID uint, uc usercontext.UserContext) (*payments.CheckoutSessionRef, error) {
	if !uc.IsAdmin {
		return nil, apperr.Forbidden("admin_required", "Only company admins can start a checkout")
	}

	order, err := s.repos.Order.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order_not_found", "Order not found")
		}
		return nil, apperr.Internal("order_lookup_failed", "Failed to load order", err)
	}

	if order.CompanyID != uc.CompanyID {
		return nil, apperr.Forbidden("order_forbidden", "Order belongs to another company")
	}

	if order.IsCompleted() {
		return nil, apperr.Conflict("order_completed", "Order is already paid")
	}

	offer, err := s.repos.Offer.GetByID(order.OfferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("offer_not_found", "Offer referenced by the order no longer exists")
		}
		return nil, apperr.Internal("offer_lookup_failed", "Failed to load offer", err)
	}

	baseURL := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
	ref, err := s.gateway.CreateCheckoutSession(ctx, payments.CheckoutInput{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CompanyID:   order.CompanyID,
		Description: offer.Name,
		Amount:      order.Amount,
		Currency:    order.Currency,
		SuccessURL:  env.GetEnv("CHECKOUT_SUCCESS_URL", baseURL+"/checkout/success"),
		CancelURL:   env.GetEnv("CHECKOUT_CANCEL_URL", baseURL+"/checkout/cancel"),
	})
	if err != nil {
		return nil, apperr.Internal("checkout_failed", "Payment gateway rejected the checkout session", err)
	}

	log.Infof("[Licensing] Checkout session %s created for order %s", ref.SessionID, order.OrderNumber)
	return ref, nil
}

// RecordIncomingEvent persists a verified webhook event exactly once. The
// idempotency marker and the processing job are inserted in one transaction:
// either both exist afterwards or neither does. A redelivered event ID makes
// the marker insert fail with Conflict, which rolls the job insert back too.
func (s *Service) RecordIncomingEvent(ctx context.Context, event *payments.WebhookEvent) error {
	payload := jobqueue.PaymentJobPayload{
		EventID:   event.ID,
		EventType: event.Type,
		Session:   event.Data.Object,
	}
	encoded, err := payload.Encode()
	if err != nil {
		return apperr.Internal("payload_encode_failed", "Failed to encode event payload", err)
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		marker := &models.ProcessedWebhookEvent{
			EventID:   event.ID,
			EventType: event.Type,
		}
		if err := s.repos.WebhookEvent.Create(tx, marker); err != nil {
			return err
		}

		job := &models.Job{
			Type:        jobqueue.JobTypePaymentProcess,
			PayloadJSON: encoded,
		}
		return s.repos.Job.Enqueue(tx, job)
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			return err
		}
		return apperr.Internal("event_store_failed", "Failed to record webhook event", err)
	}

	log.Infof("[Licensing] Event %s recorded, payment job enqueued", event.ID)
	return nil
}

// FulfillmentResult describes what ProcessSuccessfulPayment did.
type FulfillmentResult struct {
	Order            *models.Order
	Offer            *models.Offer
	License          *models.License
	AlreadyCompleted bool
}

// ProcessSuccessfulPayment applies a completed checkout session: it records
// the payment, completes the order and issues the license in one transaction.
// An order that is already completed is left untouched and its existing
// license returned, so replayed jobs never double-charge or double-issue.
func (s *Service) ProcessSuccessfulPayment(ctx context.Context, session payments.SessionObject) (*FulfillmentResult, error) {
	orderID, err := parseMetadataID(session.Metadata[payments.MetadataOrderID])
	if err != nil {
		return nil, apperr.BadRequest("bad_metadata", fmt.Sprintf("Session %s carries no usable order reference", session.ID))
	}

	result := &FulfillmentResult{}
	now := s.now()

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		order, err := s.repos.Order.GetByIDForUpdate(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order_not_found", fmt.Sprintf("Order %d referenced by session %s does not exist", orderID, session.ID))
			}
			return err
		}
		result.Order = order

		if order.IsCompleted() {
			// The row lock guarantees no concurrent worker is mid-fulfillment.
			result.AlreadyCompleted = true
			license, err := s.repos.License.GetByOrderID(order.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			result.License = license
			return nil
		}

		offer, err := s.repos.Offer.GetByID(order.OfferID)
		if err != nil {
			return fmt.Errorf("failed to load offer %d: %w", order.OfferID, err)
		}
		result.Offer = offer

		payment := &models.Payment{
			OrderID:    order.ID,
			GatewayRef: gatewayRef(session),
			Amount:     float64(session.AmountTotal) / 100,
			Currency:   paymentCurrency(session, order),
			Status:     models.PaymentStatusCompleted,
			Method:     "card",
		}
		if err := s.repos.Payment.Create(tx, payment); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		if err := s.repos.Order.UpdateStatus(tx, order.ID, models.OrderStatusCompleted); err != nil {
			return fmt.Errorf("failed to complete order: %w", err)
		}
		order.Status = models.OrderStatusCompleted

		license := &models.License{
			OrderID:       order.ID,
			CompanyID:     order.CompanyID,
			QRCodePayload: models.NewQRCodePayload(order.CompanyID),
			Status:        models.LicenseStatusActive,
			ExpiresAt:     now.AddDate(0, offer.DurationMonths, 0),
		}
		if err := s.repos.License.Create(tx, license); err != nil {
			return fmt.Errorf("failed to issue license: %w", err)
		}
		result.License = license

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyCompleted {
		log.Infof("[Licensing] Order %s already completed, session %s ignored", result.Order.OrderNumber, session.ID)
		return result, nil
	}

	log.Infof("[Licensing] Order %s completed, license %d issued until %s",
		result.Order.OrderNumber, result.License.ID, result.License.ExpiresAt.Format("2006-01-02"))

	s.enqueueNotification(result)

	return result, nil
}

// enqueueNotification schedules the license email after the fulfillment
// transaction has committed. Best-effort: a failed enqueue is logged, never
// raised, so it cannot undo a committed payment.
func (s *Service) enqueueNotification(result *FulfillmentResult) {
	payload := jobqueue.NotifyJobPayload{
		OrderID:   result.Order.ID,
		CompanyID: result.Order.CompanyID,
		OfferID:   result.Order.OfferID,
		LicenseID: result.License.ID,
	}
	encoded, err := payload.Encode()
	if err != nil {
		log.Errorf("[Licensing] Failed to encode notification payload for order %d: %v", result.Order.ID, err)
		return
	}

	job := &models.Job{
		Type:        jobqueue.JobTypeLicenseNotify,
		PayloadJSON: encoded,
	}
	if err := s.repos.Job.Enqueue(s.db, job); err != nil {
		log.Errorf("[Licensing] Failed to enqueue notification for order %d: %v", result.Order.ID, err)
	}
}

func parseMetadataID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// gatewayRef picks the most specific gateway reference available.
func gatewayRef(session payments.SessionObject) string {
	if session.PaymentIntent != "" {
		return session.PaymentIntent
	}
	return session.ID
}

func paymentCurrency(session payments.SessionObject, order *models.Order) string {
	if session.Currency != "" {
		return strings.ToUpper(session.Currency)
	}
	return order.Currency
}
