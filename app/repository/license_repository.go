package repository

import (
	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"gorm.io/gorm"
)

// licenseRepository implements the LicenseRepository interface
type licenseRepository struct {
	db *gorm.DB
}

// NewLicenseRepository creates a new license repository instance
func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{db: db}
}

// Create inserts the license inside the caller's transaction. The unique
// index on order_id is the final guard against double issuance.
func (r *licenseRepository) Create(tx *gorm.DB, license *models.License) error {
	return tx.Create(license).Error
}

// GetByID retrieves a license by its ID
func (r *licenseRepository) GetByID(id uint) (*models.License, error) {
	var license models.License
	err := r.db.First(&license, id).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// GetByOrderID retrieves the license issued for an order
func (r *licenseRepository) GetByOrderID(orderID uint) (*models.License, error) {
	var license models.License
	err := r.db.Where("order_id = ?", orderID).First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// ListByCompany retrieves a company's licenses with pagination
func (r *licenseRepository) ListByCompany(companyID uint, offset, limit int) ([]models.License, error) {
	var licenses []models.License
	err := r.db.Where("company_id = ?", companyID).
		Offset(offset).Limit(limit).Order("id DESC").Find(&licenses).Error
	return licenses, err
}
