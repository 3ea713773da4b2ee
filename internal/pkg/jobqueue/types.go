package jobqueue

import (
	"encoding/json"
	"fmt"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
)

// Job types handled by this service.
const (
	// JobTypePaymentProcess turns a verified checkout webhook into a payment
	// record, a completed order and an issued license.
	JobTypePaymentProcess = "payment_process"

	// JobTypeLicenseNotify delivers the license email with invoice and QR
	// code after a payment job has committed.
	JobTypeLicenseNotify = "license_notify"
)

// PaymentJobPayload is the durable form of a verified webhook event. The full
// session object is captured at receipt time so processing never depends on
// the gateway being reachable.
type PaymentJobPayload struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Session   payments.SessionObject `json:"session"`
}

// Encode serializes the payload for the jobs table.
func (p *PaymentJobPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode payment job payload: %w", err)
	}
	return string(data), nil
}

// DecodePaymentJobPayload parses a stored payment job payload.
func DecodePaymentJobPayload(raw string) (*PaymentJobPayload, error) {
	var p PaymentJobPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode payment job payload: %w", err)
	}
	if p.EventID == "" {
		return nil, fmt.Errorf("payment job payload missing event_id")
	}
	return &p, nil
}

// NotifyJobPayload identifies the records a notification job needs to load.
// Only IDs are stored; the dispatcher reads current state from the DB.
type NotifyJobPayload struct {
	OrderID   uint `json:"order_id"`
	CompanyID uint `json:"company_id"`
	OfferID   uint `json:"offer_id"`
	LicenseID uint `json:"license_id"`
}

// Encode serializes the payload for the jobs table.
func (p *NotifyJobPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode notify job payload: %w", err)
	}
	return string(data), nil
}

// DecodeNotifyJobPayload parses a stored notification job payload.
func DecodeNotifyJobPayload(raw string) (*NotifyJobPayload, error) {
	var p NotifyJobPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode notify job payload: %w", err)
	}
	if p.OrderID == 0 || p.LicenseID == 0 {
		return nil, fmt.Errorf("notify job payload missing order or license id")
	}
	return &p, nil
}
