// Package scheduler fires the clock-based billing triggers:
//   - daily 09:00 — bills due within 3 days → enqueue bill_due notifications
//   - daily 10:00 — mark overdue bills → enqueue bill_overdue notifications
//   - monthly, day 1 08:00 — enqueue one generate-bill job per active tenant
package scheduler

import (
	"context"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"dormku_backend/internals/configs"
	"dormku_backend/internals/constants"
	billService "dormku_backend/internals/features/finance/bills/service"
	notifModel "dormku_backend/internals/features/notifications/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	"dormku_backend/internals/helpers/dbtime"
	"dormku_backend/internals/mq"
)

const dueSoonWindowDays = 3

type Scheduler struct {
	DB        *gorm.DB
	Composer  *billService.BillComposer
	Publisher mq.Publisher
}

func New(db *gorm.DB, composer *billService.BillComposer, publisher mq.Publisher) *Scheduler {
	return &Scheduler{DB: db, Composer: composer, Publisher: publisher}
}

// Start launches the trigger loops. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runDailyAt(ctx, 9, 0, "due-soon", s.enqueueDueSoonNotifications)
	go s.runDailyAt(ctx, 10, 0, "overdue", s.processOverdueBills)
	go s.runMonthlyAt(ctx, 1, 8, 0, "monthly-generation", s.enqueueMonthlyGeneration)
	log.Println("✅ Scheduler started.")
}

/* =========================================================
   Trigger jobs
========================================================= */

func (s *Scheduler) enqueueDueSoonNotifications(ctx context.Context) {
	now := time.Now()
	bills, err := s.Composer.ListBillsDueWithin(ctx, now, dueSoonWindowDays)
	if err != nil {
		log.Printf("[SCHEDULER] due-soon query failed: %v", err)
		return
	}
	for _, b := range bills {
		billID := b.BillID
		job := mq.SendLineNotificationJob{
			TenantID:         b.BillTenantID,
			BillID:           &billID,
			NotificationType: string(notifModel.NotificationTypeBillDue),
		}
		if err := mq.PublishJSON(ctx, s.Publisher, constants.QueueSendLineNotification, job); err != nil {
			log.Printf("[SCHEDULER] bill_due enqueue failed bill=%s: %v", b.BillID, err)
		}
	}
	log.Printf("[SCHEDULER] due-soon run: %d reminder(s) enqueued", len(bills))
}

func (s *Scheduler) processOverdueBills(ctx context.Context) {
	bills, err := s.Composer.MarkOverdueBills(ctx, time.Now())
	if err != nil {
		log.Printf("[SCHEDULER] overdue marking failed: %v", err)
		return
	}
	for _, b := range bills {
		billID := b.BillID
		job := mq.SendLineNotificationJob{
			TenantID:         b.BillTenantID,
			BillID:           &billID,
			NotificationType: string(notifModel.NotificationTypeBillOverdue),
		}
		if err := mq.PublishJSON(ctx, s.Publisher, constants.QueueSendLineNotification, job); err != nil {
			log.Printf("[SCHEDULER] bill_overdue enqueue failed bill=%s: %v", b.BillID, err)
		}
	}
	log.Printf("[SCHEDULER] overdue run: %d bill(s) marked overdue", len(bills))
}

// enqueueMonthlyGeneration fans out one generate-bill job per active
// tenant; the workers handle composition and idempotent skips.
func (s *Scheduler) enqueueMonthlyGeneration(ctx context.Context) {
	now := time.Now()
	month := dbtime.NormalizeBillingMonth(now)
	dueDate := month.AddDate(0, 0, billDueDay()-1)

	var tenants []tenantModel.TenantModel
	if err := s.DB.WithContext(ctx).
		Where("tenant_status = ? AND tenant_move_in_date <= ?", tenantModel.TenantStatusActive, dbtime.EndOfMonth(month)).
		Find(&tenants).Error; err != nil {
		log.Printf("[SCHEDULER] tenant roster query failed: %v", err)
		return
	}

	for _, t := range tenants {
		job := mq.GenerateBillJob{
			TenantID:     t.TenantID,
			BillingMonth: month,
			DueDate:      dueDate,
		}
		if err := mq.PublishJSON(ctx, s.Publisher, constants.QueueGenerateBill, job); err != nil {
			log.Printf("[SCHEDULER] generate-bill enqueue failed tenant=%s: %v", t.TenantID, err)
		}
	}
	log.Printf("[SCHEDULER] monthly run: %d generation job(s) enqueued for %s", len(tenants), month.Format("2006-01"))
}

// billDueDay is the day of month bills fall due (env BILL_DUE_DAY, default 10).
func billDueDay() int {
	if v := configs.GetEnv("BILL_DUE_DAY"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d >= 1 && d <= 28 {
			return d
		}
	}
	return 10
}

/* =========================================================
   Clock loops
========================================================= */

func (s *Scheduler) runDailyAt(ctx context.Context, hour, min int, name string, fn func(context.Context)) {
	for {
		wait := time.Until(NextDailyRun(time.Now(), hour, min))
		select {
		case <-time.After(wait):
			log.Printf("[SCHEDULER] firing %s", name)
			fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runMonthlyAt(ctx context.Context, day, hour, min int, name string, fn func(context.Context)) {
	for {
		wait := time.Until(NextMonthlyRun(time.Now(), day, hour, min))
		select {
		case <-time.After(wait):
			log.Printf("[SCHEDULER] firing %s", name)
			fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// NextDailyRun is the next occurrence of hour:min after now.
func NextDailyRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextMonthlyRun is the next occurrence of day-of-month at hour:min after now.
func NextMonthlyRun(now time.Time, day, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), day, hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), 1, hour, min, 0, 0, now.Location()).AddDate(0, 1, day-1)
	}
	return next
}
