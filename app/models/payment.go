package models

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is an immutable ledger entry for one gateway transaction against an
// order. Rows are inserted exactly once during successful webhook processing
// and never updated afterwards.
type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	GatewayRef string    `gorm:"type:varchar(191);not null;index" json:"gateway_ref"`
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency   string    `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	Method     string    `gorm:"type:varchar(40);not null;default:'card'" json:"method"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
