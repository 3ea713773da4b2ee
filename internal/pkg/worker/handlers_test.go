package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
)

func TestPaymentHandlerRejectsMalformedPayload(t *testing.T) {
	handler := NewPaymentHandler(nil)

	err := handler(context.Background(), &models.Job{PayloadJSON: "{broken"})

	assert.Error(t, err, "malformed payloads must fail so the job is retried and parked")
}

func TestNotifyHandlerRejectsMalformedPayload(t *testing.T) {
	handler := NewNotifyHandler(nil)

	err := handler(context.Background(), &models.Job{PayloadJSON: `{"order_id":0}`})

	assert.Error(t, err)
}
