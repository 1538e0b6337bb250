package chit

import (
	"testing"
	"time"
)

func newReminderFixture(t *testing.T, duration int) *fixture {
	t.Helper()
	f := newFixture(testScheme(1, 100000, duration))
	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := f.engine.Approve(7, 1); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return f
}

func (f *fixture) reminders() *ReminderEngine {
	r := NewReminderEngine(f.ledger, f.schemes, f.notifier, f.notifier)
	r.now = f.engine.now
	return r
}

func TestSweepBeforeDueDoesNothing(t *testing.T) {
	f := newReminderFixture(t, 12)
	f.advance(29 * 24 * time.Hour)

	n, err := f.reminders().Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("dispatched = %d, want 0", n)
	}
}

func TestSweepIsIdempotentPerCycle(t *testing.T) {
	f := newReminderFixture(t, 12)
	f.advance(31 * 24 * time.Hour)

	for i := 0; i < 5; i++ {
		if _, err := f.reminders().Sweep(); err != nil {
			t.Fatalf("Sweep %d: %v", i, err)
		}
	}
	if n := f.notifier.countTitled("Pengingat setoran arisan"); n != 1 {
		t.Fatalf("reminders after 5 sweeps = %d, want 1", n)
	}

	// Paying the due installment moves the cursor; the next cycle gets its
	// own reminder once it falls due.
	if _, err := f.engine.RecordUserPayment(7, 1); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := f.reminders().Sweep(); err != nil {
		t.Fatalf("Sweep after payment: %v", err)
	}
	if n := f.notifier.countTitled("Pengingat setoran arisan"); n != 1 {
		t.Fatalf("reminders right after payment = %d, want 1", n)
	}

	f.advance(30 * 24 * time.Hour)
	if _, err := f.reminders().Sweep(); err != nil {
		t.Fatalf("Sweep next cycle: %v", err)
	}
	if n := f.notifier.countTitled("Pengingat setoran arisan"); n != 2 {
		t.Fatalf("reminders after next cycle = %d, want 2", n)
	}
}

func TestSweepRemindsDespitePaymentConfirmations(t *testing.T) {
	f := newReminderFixture(t, 12)

	// Advance payment of month 2 leaves month 1 unpaid. Its confirmation
	// notification carries month_index=2, the same coordinates the next
	// reminder is keyed on.
	if _, err := f.engine.PayInstallment(7, 1, 2, 100000); err != nil {
		t.Fatalf("advance pay: %v", err)
	}
	f.advance(120 * 24 * time.Hour)

	n, err := f.reminders().Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("dispatched = %d, want 1 (overdue subscriber with a gap must still be reminded)", n)
	}

	// Still at most one reminder per cycle.
	if _, err := f.reminders().Sweep(); err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if c := f.notifier.countTitled("Pengingat setoran arisan"); c != 1 {
		t.Fatalf("reminders after repeat sweep = %d, want 1", c)
	}
}

func TestSweepSkipsCompletedEnrollments(t *testing.T) {
	f := newReminderFixture(t, 2)
	if _, err := f.engine.RecordUserPayment(7, 1); err != nil {
		t.Fatalf("pay: %v", err)
	}
	f.advance(90 * 24 * time.Hour)

	n, err := f.reminders().Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("dispatched for completed enrollment = %d, want 0", n)
	}
}

func TestSweepSkipsPendingEnrollments(t *testing.T) {
	f := newFixture(testScheme(1, 100000, 12))
	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	f.advance(90 * 24 * time.Hour)

	n, err := f.reminders().Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("dispatched for pending enrollment = %d, want 0", n)
	}
}

func TestSweepSurvivesMissingScheme(t *testing.T) {
	f := newReminderFixture(t, 12)

	// Second enrollment on a scheme that has since disappeared.
	f.schemes.schemes[2] = testScheme(2, 50000, 6)
	if _, err := f.engine.RequestJoin(8, 2, JoinDetails{Name: "Sari"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := f.engine.Approve(8, 2); err != nil {
		t.Fatalf("approve: %v", err)
	}
	delete(f.schemes.schemes, 2)

	f.advance(31 * 24 * time.Hour)
	n, err := f.reminders().Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("dispatched = %d, want 1 (healthy enrollment only)", n)
	}
}
