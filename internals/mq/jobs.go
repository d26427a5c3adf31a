package mq

import (
	"time"

	"github.com/google/uuid"
)

// GenerateBillJob asks the worker to create one tenant's bill for a billing
// month. Idempotent: the worker skips tenants that already have one.
type GenerateBillJob struct {
	TenantID     uuid.UUID `json:"tenantId"`
	BillingMonth time.Time `json:"billingMonth"`
	DueDate      time.Time `json:"dueDate"`
}

// SendLineNotificationJob asks the worker to build and push one LINE
// message. Extra carries type-specific context (reason, request title...).
type SendLineNotificationJob struct {
	TenantID         uuid.UUID         `json:"tenantId"`
	BillID           *uuid.UUID        `json:"billId,omitempty"`
	NotificationType string            `json:"notificationType"`
	Extra            map[string]string `json:"extra,omitempty"`
}
