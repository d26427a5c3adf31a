// Package workers binds queue messages to the domain services. Handlers
// return an error to trigger the queue's retry/backoff; business "skips"
// (already billed, no LINE identity) are successes.
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"dormku_backend/internals/constants"
	billService "dormku_backend/internals/features/finance/bills/service"
	notifModel "dormku_backend/internals/features/notifications/model"
	notifService "dormku_backend/internals/features/notifications/service"
	"dormku_backend/internals/mq"
	"dormku_backend/internals/mq/rabbitmq"
)

type Workers struct {
	Composer   *billService.BillComposer
	Dispatcher *notifService.Dispatcher
	Publisher  mq.Publisher
}

// Register binds every job handler with its queue's worker concurrency.
func (w *Workers) Register(consumer *rabbitmq.Consumer) {
	consumer.RegisterHandler(constants.QueueGenerateBill, constants.PrefetchGenerateBill, w.HandleGenerateBill)
	consumer.RegisterHandler(constants.QueueSendLineNotification, constants.PrefetchNotification, w.HandleSendLineNotification)
}

// HandleGenerateBill creates one tenant's bill for the month and, when a
// bill was actually created, enqueues its bill_created notification.
func (w *Workers) HandleGenerateBill(ctx context.Context, body []byte) error {
	var job mq.GenerateBillJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("bad generate-bill payload: %w", err)
	}

	bill, created, err := w.Composer.GenerateTenantBill(ctx, job.TenantID, job.BillingMonth, job.DueDate)
	if err != nil {
		return err
	}
	if !created {
		log.Printf("[WORKER] tenant=%s already billed for %s, skipping", job.TenantID, job.BillingMonth.Format("2006-01"))
		return nil
	}

	notify := mq.SendLineNotificationJob{
		TenantID:         job.TenantID,
		BillID:           &bill.BillID,
		NotificationType: string(notifModel.NotificationTypeBillCreated),
	}
	if err := mq.PublishJSON(ctx, w.Publisher, constants.QueueSendLineNotification, notify); err != nil {
		// Best-effort: the bill exists either way.
		log.Printf("[WORKER] bill_created enqueue failed tenant=%s: %v", job.TenantID, err)
	}
	return nil
}

// HandleSendLineNotification pushes one LINE message. Errors bubble up so
// the queue retries with backoff; "tenant has no LINE identity" is a clean
// skip.
func (w *Workers) HandleSendLineNotification(ctx context.Context, body []byte) error {
	var job mq.SendLineNotificationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("bad send-line-notification payload: %w", err)
	}

	_, err := w.Dispatcher.Dispatch(ctx, job.TenantID, notifModel.NotificationType(job.NotificationType), job.BillID, job.Extra)
	return err
}
