package repository

import (
	"errors"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/apperr"
	"gorm.io/gorm"
)

// webhookEventRepository implements the WebhookEventRepository interface.
type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new idempotent event store instance
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// Create inserts the idempotency marker inside the caller's transaction.
// The primary key on event_id is the authority: a concurrent or repeated
// delivery of the same event id hits the duplicate-key violation, which is
// translated into a Conflict error and rolls the caller's transaction back.
func (r *webhookEventRepository) Create(tx *gorm.DB, event *models.ProcessedWebhookEvent) error {
	if err := tx.Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("duplicate_event", "Webhook event already processed")
		}
		return err
	}
	return nil
}

// Exists reports whether the event id has already been recorded
func (r *webhookEventRepository) Exists(eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProcessedWebhookEvent{}).
		Where("event_id = ?", eventID).Count(&count).Error
	return count > 0, err
}
