package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	number := NewOrderNumber(now)

	assert.True(t, strings.HasPrefix(number, "ORD-20260831-"), "got %s", number)
	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestNewOrderNumberUniqueness(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewOrderNumber(now)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestOrderIsCompleted(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusCompleted}).IsCompleted())
	assert.False(t, (&Order{Status: OrderStatusPending}).IsCompleted())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).IsCompleted())
}
