package chit

import (
	"fmt"
	"log"
	"time"

	"project/models"
)

// ReminderEngine walks every active enrollment and notifies subscribers whose
// current installment has fallen due. The sweep is stateless and idempotent:
// a reminder is keyed on (user, scheme, month index), so running it ten times
// a day still yields at most one reminder per cycle.
type ReminderEngine struct {
	ledger   Ledger
	schemes  SchemeStore
	sent     ReminderLog
	notifier Notifier
	now      func() time.Time
}

func NewReminderEngine(ledger Ledger, schemes SchemeStore, sent ReminderLog, notifier Notifier) *ReminderEngine {
	return &ReminderEngine{
		ledger:   ledger,
		schemes:  schemes,
		sent:     sent,
		notifier: notifier,
		now:      time.Now,
	}
}

// Sweep returns the number of reminders dispatched. Per-enrollment failures
// are logged and skipped so one bad row never stalls the rest of the sweep.
func (r *ReminderEngine) Sweep() (int, error) {
	enrollments, err := r.ledger.ActiveEnrollments()
	if err != nil {
		return 0, err
	}

	now := r.now()
	dispatched := 0
	for _, enrollment := range enrollments {
		if enrollment.PaymentDate == nil {
			log.Printf("[chit] enrollment %d is Paid without a payment date, skipping", enrollment.ID)
			continue
		}
		scheme, err := r.schemes.Scheme(enrollment.SchemeID)
		if err != nil {
			log.Printf("[chit] scheme %d for enrollment %d: %v", enrollment.SchemeID, enrollment.ID, err)
			continue
		}
		paid, err := r.ledger.CountPaid(enrollment.UserID, enrollment.SchemeID)
		if err != nil {
			log.Printf("[chit] count paid user %d scheme %d: %v", enrollment.UserID, enrollment.SchemeID, err)
			continue
		}
		due, _ := NextDue(*enrollment.PaymentDate, paid, scheme.DurationMonths, now)
		if due == nil || now.Before(*due) {
			continue
		}
		already, err := r.sent.HasChitNotification(enrollment.UserID, enrollment.SchemeID, paid)
		if err != nil {
			log.Printf("[chit] reminder lookup user %d scheme %d: %v", enrollment.UserID, enrollment.SchemeID, err)
			continue
		}
		if already {
			continue
		}

		r.notifier.Notify(enrollment.UserID,
			"Pengingat setoran arisan",
			fmt.Sprintf("Setoran arisan %s bulan ke-%d sebesar Rp%.0f sudah jatuh tempo. Mohon segera lakukan pembayaran.",
				scheme.Name, paid, scheme.InstallmentAmount),
			models.NotificationChit,
			map[string]interface{}{"scheme_id": enrollment.SchemeID, "month_index": paid, "reminder": true})
		dispatched++
	}
	return dispatched, nil
}
