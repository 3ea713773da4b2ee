package models

import "time"

// ProcessedWebhookEvent is the idempotency marker for gateway webhook
// deliveries. The event id is assigned by the payment gateway and is the
// primary key: existence of a row means "already enqueued". Rows are written
// inside the same transaction as the job they guard and are never updated.
type ProcessedWebhookEvent struct {
	EventID   string    `gorm:"primaryKey;type:varchar(191)" json:"event_id"`
	EventType string    `gorm:"type:varchar(100);not null;default:''" json:"event_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProcessedWebhookEvent) TableName() string {
	return "processed_webhook_events"
}
