package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is a purchase intent for one offer. Amount is frozen from the offer
// price at creation; the only transition this workflow performs is
// pending -> completed, done by the payment orchestrator.
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	OfferID     uint      `gorm:"not null;index" json:"offer_id"`
	OrderNumber string    `gorm:"uniqueIndex;type:varchar(40);not null" json:"order_number"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewOrderNumber builds a human-readable unique order number, e.g.
// ORD-20260831-9F2C1A. Uniqueness is enforced by the DB index; the random
// suffix makes collisions practically impossible.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// IsCompleted reports whether the order reached its terminal success state.
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
