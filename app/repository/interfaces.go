package repository

import (
	"time"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"gorm.io/gorm"
)

// CompanyRepository defines the interface for tenant-related database operations
type CompanyRepository interface {
	Create(company *models.Company) error
	GetByID(id uint) (*models.Company, error)
	GetByEmail(email string) (*models.Company, error)
	Update(company *models.Company) error
	List(offset, limit int) ([]models.Company, error)
	Count() (int64, error)
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPITokenHash(hash string) (*models.User, error)
	ListByCompany(companyID uint) ([]models.User, error)
	Update(user *models.User) error
	TouchAPIToken(userID uint, usedAt time.Time) error
}

// OfferRepository defines the interface for the license product catalog
type OfferRepository interface {
	Create(offer *models.Offer) error
	GetByID(id uint) (*models.Offer, error)
	ListActive() ([]models.Offer, error)
	List(offset, limit int) ([]models.Offer, error)
	Update(offer *models.Offer) error
}

// OrderRepository defines the interface for order-related database operations.
// Methods taking tx participate in the caller's transaction.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	ListByCompany(companyID uint, offset, limit int) ([]models.Order, error)
	UpdateStatus(tx *gorm.DB, orderID uint, status string) error
}

// PaymentRepository defines the interface for the immutable payment ledger
type PaymentRepository interface {
	Create(tx *gorm.DB, payment *models.Payment) error
	GetByOrderID(orderID uint) (*models.Payment, error)
	CountByOrderID(orderID uint) (int64, error)
}

// LicenseRepository defines the interface for license-related database operations
type LicenseRepository interface {
	Create(tx *gorm.DB, license *models.License) error
	GetByID(id uint) (*models.License, error)
	GetByOrderID(orderID uint) (*models.License, error)
	ListByCompany(companyID uint, offset, limit int) ([]models.License, error)
}

// WebhookEventRepository is the idempotent event store. Create must run inside
// the caller's transaction and translate a duplicate-key violation into a
// Conflict error so the whole transaction rolls back on redelivery.
type WebhookEventRepository interface {
	Create(tx *gorm.DB, event *models.ProcessedWebhookEvent) error
	Exists(eventID string) (bool, error)
}

// JobRepository persists durable queue jobs. Enqueue participates in the
// caller's transaction; ClaimNext hands a pending job to exactly one worker.
type JobRepository interface {
	Enqueue(tx *gorm.DB, job *models.Job) error
	ClaimNext(jobType string, now time.Time) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id uint) error
	RequeueStuck(olderThan time.Duration, now time.Time) (int64, error)
	CountByStatus(status string) (int64, error)
}

// Repositories bundles all repository implementations
type Repositories struct {
	Company      CompanyRepository
	User         UserRepository
	Offer        OfferRepository
	Order        OrderRepository
	Payment      PaymentRepository
	License      LicenseRepository
	WebhookEvent WebhookEventRepository
	Job          JobRepository
}

// NewRepositories creates all repository instances backed by the given DB
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Company:      NewCompanyRepository(db),
		User:         NewUserRepository(db),
		Offer:        NewOfferRepository(db),
		Order:        NewOrderRepository(db),
		Payment:      NewPaymentRepository(db),
		License:      NewLicenseRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
		Job:          NewJobRepository(db),
	}
}
