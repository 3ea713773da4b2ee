package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	COMPANY_STATUS_ACTIVE   = "active"
	COMPANY_STATUS_INACTIVE = "inactive"
	COMPANY_STATUS_DISABLED = "disabled"
)

// Company is the tenant. Every order, license and user belongs to exactly one
// company; the registered email receives invoices and license confirmations.
type Company struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email      string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	VATNumber  string         `gorm:"type:varchar(40);default:null" json:"vat_number" validate:"max=40"`
	Street     string         `gorm:"type:varchar(200);default:null" json:"street" validate:"max=200"`
	City       string         `gorm:"type:varchar(100);default:null" json:"city" validate:"max=100"`
	PostalCode string         `gorm:"type:varchar(20);default:null" json:"postal_code" validate:"max=20"`
	Country    string         `gorm:"type:varchar(2);default:null" json:"country" validate:"omitempty,len=2"`
	Status     string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (co *Company) Validate() error {
	v := validator.New()

	return v.Struct(co)
}

// IsActive reports whether the company may place orders.
func (co *Company) IsActive() bool {
	return co.Status == COMPANY_STATUS_ACTIVE
}
