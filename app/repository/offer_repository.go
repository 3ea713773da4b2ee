package repository

import (
	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"gorm.io/gorm"
)

// offerRepository implements the OfferRepository interface
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository instance
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create creates a new offer in the database
func (r *offerRepository) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

// GetByID retrieves an offer by its ID
func (r *offerRepository) GetByID(id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.First(&offer, id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListActive retrieves all offers currently purchasable
func (r *offerRepository) ListActive() ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Where("active = ?", true).Order("price").Find(&offers).Error
	return offers, err
}

// List retrieves offers with pagination
func (r *offerRepository) List(offset, limit int) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Offset(offset).Limit(limit).Order("id").Find(&offers).Error
	return offers, err
}

// Update updates an existing offer in the database
func (r *offerRepository) Update(offer *models.Offer) error {
	return r.db.Save(offer).Error
}
