package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Offer is a purchasable license product: a price and a license duration.
// Order amounts are frozen from the offer price at order-creation time, so an
// offer price change never mutates existing orders.
type Offer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Description    string    `gorm:"type:text" json:"description" validate:"max=2000"`
	Price          float64   `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0"`
	Currency       string    `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency" validate:"len=3"`
	DurationMonths int       `gorm:"not null" json:"duration_months" validate:"gte=1,lte=120"`
	Active         bool      `gorm:"default:true;index" json:"active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Offer) Validate() error {
	v := validator.New()

	return v.Struct(o)
}
