package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewQRCodePayload(t *testing.T) {
	payload := NewQRCodePayload(42)

	assert.True(t, strings.HasPrefix(payload, "LIC-42-"), "got %s", payload)
	assert.LessOrEqual(t, len(payload), 100, "payload must fit the column")

	other := NewQRCodePayload(42)
	assert.NotEqual(t, payload, other, "payloads must be unique per issuance")
}

func TestLicenseIsExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{"Future expiry", now.Add(24 * time.Hour), false},
		{"Past expiry", now.Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			license := &License{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.expected, license.IsExpired(now))
		})
	}
}
