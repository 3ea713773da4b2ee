// Package worker binds queue job types to their handlers.
package worker

import (
	"context"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/jobqueue"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/licensing"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/notify"
)

// NewPaymentHandler processes payment jobs through the licensing service.
func NewPaymentHandler(svc *licensing.Service) jobqueue.Handler {
	return func(ctx context.Context, job *models.Job) error {
		payload, err := jobqueue.DecodePaymentJobPayload(job.PayloadJSON)
		if err != nil {
			return err
		}
		_, err = svc.ProcessSuccessfulPayment(ctx, payload.Session)
		return err
	}
}

// NewNotifyHandler delivers license emails through the dispatcher.
func NewNotifyHandler(dispatcher *notify.Dispatcher) jobqueue.Handler {
	return func(ctx context.Context, job *models.Job) error {
		payload, err := jobqueue.DecodeNotifyJobPayload(job.PayloadJSON)
		if err != nil {
			return err
		}
		return dispatcher.Deliver(ctx, payload.OrderID, payload.LicenseID)
	}
}

// RegisterHandlers wires both job types onto the queue. Payment processing is
// serialized; notifications may overlap.
func RegisterHandlers(q *jobqueue.Queue, svc *licensing.Service, dispatcher *notify.Dispatcher) {
	q.Subscribe(jobqueue.JobTypePaymentProcess, 1, NewPaymentHandler(svc))
	q.Subscribe(jobqueue.JobTypeLicenseNotify, 2, NewNotifyHandler(dispatcher))
}
