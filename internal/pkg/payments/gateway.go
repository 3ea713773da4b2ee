package payments

import (
	"context"
	"encoding/json"
)

// EventCheckoutCompleted is the gateway event type that confirms a paid
// checkout session and triggers license issuance.
const EventCheckoutCompleted = "checkout.session.completed"

// Metadata keys attached to every checkout session. The webhook handler has
// no other way to recover which order a gateway event refers to.
const (
	MetadataOrderID   = "order_id"
	MetadataCompanyID = "company_id"
)

// CheckoutInput describes the session to create for one order.
type CheckoutInput struct {
	OrderID     uint
	CompanyID   uint
	OrderNumber string
	Description string
	Amount      float64
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSessionRef is what the caller gets back: the gateway session id and
// the URL the buyer is redirected to.
type CheckoutSessionRef struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// SessionObject is the gateway's session representation as delivered inside
// webhook events. AmountTotal is in minor currency units (cents).
type SessionObject struct {
	ID            string            `json:"id"`
	Metadata      map[string]string `json:"metadata"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
}

// WebhookEvent is the envelope the gateway posts to the webhook endpoint.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object SessionObject `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent decodes a raw webhook body.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// CheckoutGateway abstracts the external card-payment provider.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSessionRef, error)
}
