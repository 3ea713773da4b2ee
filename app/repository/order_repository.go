package repository

import (
	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order in the database
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate loads the order row-locked inside the caller's transaction.
// The payment orchestrator uses this so two deliveries for the same order
// serialize on the row instead of racing to issue two licenses.
func (r *orderRepository) GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber retrieves an order by its human-readable number
func (r *orderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCompany retrieves a company's orders with pagination
func (r *orderRepository) ListByCompany(companyID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("company_id = ?", companyID).
		Offset(offset).Limit(limit).Order("id DESC").Find(&orders).Error
	return orders, err
}

// UpdateStatus transitions the order status inside the caller's transaction
func (r *orderRepository) UpdateStatus(tx *gorm.DB, orderID uint, status string) error {
	return tx.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", status).Error
}
