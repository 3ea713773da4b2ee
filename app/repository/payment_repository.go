package repository

import (
	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface. The ledger is
// append-only: there is deliberately no update method.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts a ledger row inside the caller's transaction
func (r *paymentRepository) Create(tx *gorm.DB, payment *models.Payment) error {
	return tx.Create(payment).Error
}

// GetByOrderID retrieves the payment recorded for an order
func (r *paymentRepository) GetByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CountByOrderID returns how many ledger rows exist for an order
func (r *paymentRepository) CountByOrderID(orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}
