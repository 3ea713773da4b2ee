package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	LicenseStatusActive  = "active"
	LicenseStatusExpired = "expired"
	LicenseStatusRevoked = "revoked"
)

// QRPayloadPrefix prefixes every license QR payload so scanners can
// distinguish LicenseHub codes from foreign ones.
const QRPayloadPrefix = "LIC-"

// License is the deliverable granted on successful payment: one per order,
// carrying an expiry computed from the offer duration and a unique scannable
// payload bound to the owning company.
type License struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	CompanyID     uint      `gorm:"not null;index" json:"company_id"`
	QRCodePayload string    `gorm:"uniqueIndex;type:varchar(100);not null" json:"qr_code_payload"`
	Status        string    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	ExpiresAt     time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewQRCodePayload derives the unique scannable payload for a company:
// prefix + company id + "-" + random token.
func NewQRCodePayload(companyID uint) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s%d-%s", QRPayloadPrefix, companyID, token)
}

// IsExpired reports whether the license expiry has passed at the given time.
func (l *License) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
