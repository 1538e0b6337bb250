package chit

import (
	"errors"
	"testing"
	"time"

	"project/models"
)

func TestFullLifecycle(t *testing.T) {
	f := newFixture(testScheme(1, 500000, 3))
	details := JoinDetails{Name: "Budi", MobileNumber: "08123456789", Address: "Jakarta"}

	enrollment, err := f.engine.RequestJoin(7, 1, details)
	if err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if enrollment.MonthIndex != 0 || enrollment.Status != models.InstallmentPending {
		t.Fatalf("enrollment = month %d status %s, want month 0 Pending", enrollment.MonthIndex, enrollment.Status)
	}
	if got := f.state(7, 1, 3); got != PendingApproval {
		t.Fatalf("state after join = %v, want PendingApproval", got)
	}
	if n := f.notifier.countTitled("Pengajuan arisan baru"); n != 1 {
		t.Fatalf("admin notifications = %d, want 1", n)
	}

	anchor := f.clock
	approved, err := f.engine.Approve(7, 1)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.PaymentDate == nil || !approved.PaymentDate.Equal(anchor) {
		t.Fatalf("anchor = %v, want %v", approved.PaymentDate, anchor)
	}
	if got := f.state(7, 1, 3); got != Active {
		t.Fatalf("state after approval = %v, want Active", got)
	}

	records, _ := f.ledger.ListForPair(7, 1)
	progress := BuildProgress(records, 3, f.clock)
	if progress.MonthsPaid != 1 || progress.NextDueDate == nil {
		t.Fatalf("progress after approval: paid=%d due=%v", progress.MonthsPaid, progress.NextDueDate)
	}
	if want := anchor.Add(30 * 24 * time.Hour); !progress.NextDueDate.Equal(want) {
		t.Fatalf("first due = %v, want %v", *progress.NextDueDate, want)
	}

	for month := 1; month < 3; month++ {
		f.advance(30 * 24 * time.Hour)
		paid, err := f.engine.RecordUserPayment(7, 1)
		if err != nil {
			t.Fatalf("RecordUserPayment month %d: %v", month, err)
		}
		if paid.MonthIndex != month {
			t.Fatalf("payment landed at month %d, want %d", paid.MonthIndex, month)
		}
		if paid.Amount != 500000 {
			t.Fatalf("payment amount = %.0f, want 500000", paid.Amount)
		}
	}

	if got := f.state(7, 1, 3); got != Completed {
		t.Fatalf("state after final payment = %v, want Completed", got)
	}
	if _, err := f.engine.RecordUserPayment(7, 1); !errors.Is(err, ErrSchemeCompleted) {
		t.Fatalf("payment after completion: err = %v, want ErrSchemeCompleted", err)
	}

	records, _ = f.ledger.ListForPair(7, 1)
	progress = BuildProgress(records, 3, f.clock)
	if progress.Status != "Completed" || progress.NextDueDate != nil || progress.PendingMonths != 0 {
		t.Fatalf("final progress = %+v", progress)
	}
	if progress.TotalPaid != 1500000 {
		t.Fatalf("total paid = %.0f, want 1500000", progress.TotalPaid)
	}
}

func TestRequestJoinRejectsDuplicatesAndUnknownSchemes(t *testing.T) {
	f := newFixture(testScheme(1, 100000, 12))

	if _, err := f.engine.RequestJoin(7, 99, JoinDetails{Name: "Budi"}); !errors.Is(err, ErrSchemeNotFound) {
		t.Fatalf("join unknown scheme: err = %v, want ErrSchemeNotFound", err)
	}

	inactive := testScheme(2, 100000, 12)
	inactive.Status = models.SchemeInactive
	f.schemes.schemes[2] = inactive
	if _, err := f.engine.RequestJoin(7, 2, JoinDetails{Name: "Budi"}); !errors.Is(err, ErrSchemeNotFound) {
		t.Fatalf("join inactive scheme: err = %v, want ErrSchemeNotFound", err)
	}

	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("second join: err = %v, want ErrAlreadyEnrolled", err)
	}

	// An active enrollment blocks re-joining too.
	if _, err := f.engine.Approve(7, 1); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("join while active: err = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestRejectFreesThePair(t *testing.T) {
	f := newFixture(testScheme(1, 100000, 12))

	if err := f.engine.Reject(7, 1); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Fatalf("reject without request: err = %v, want ErrEnrollmentNotFound", err)
	}

	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := f.engine.Reject(7, 1); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if got := f.state(7, 1, 12); got != NotEnrolled {
		t.Fatalf("state after reject = %v, want NotEnrolled", got)
	}
	if n := f.notifier.countTitled("Pengajuan arisan ditolak"); n != 1 {
		t.Fatalf("reject notifications = %d, want 1", n)
	}

	// The user may apply again after a rejection.
	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("re-join after reject: %v", err)
	}
}

func TestApproveRequiresPendingEnrollment(t *testing.T) {
	f := newFixture(testScheme(1, 100000, 12))

	if _, err := f.engine.Approve(7, 1); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Fatalf("approve without request: err = %v, want ErrEnrollmentNotFound", err)
	}

	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := f.engine.Approve(7, 1); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if _, err := f.engine.Approve(7, 1); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Fatalf("second approve: err = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestPayInstallmentGuards(t *testing.T) {
	f := newFixture(testScheme(1, 100000, 12))

	if _, err := f.engine.PayInstallment(7, 1, 1, 100000); !errors.Is(err, ErrNotActive) {
		t.Fatalf("pay while not enrolled: err = %v, want ErrNotActive", err)
	}

	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := f.engine.PayInstallment(7, 1, 1, 100000); !errors.Is(err, ErrNotActive) {
		t.Fatalf("pay while pending: err = %v, want ErrNotActive", err)
	}

	if _, err := f.engine.Approve(7, 1); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := f.engine.PayInstallment(7, 1, 0, 100000); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("pay month 0: err = %v, want ErrInvalidMonth", err)
	}
	if _, err := f.engine.PayInstallment(7, 1, 12, 100000); !errors.Is(err, ErrSchemeCompleted) {
		t.Fatalf("pay beyond duration: err = %v, want ErrSchemeCompleted", err)
	}

	if _, err := f.engine.PayInstallment(7, 1, 3, 100000); err != nil {
		t.Fatalf("pay month 3: %v", err)
	}
	if _, err := f.engine.PayInstallment(7, 1, 3, 100000); !errors.Is(err, ErrDuplicateInstallment) {
		t.Fatalf("repay month 3: err = %v, want ErrDuplicateInstallment", err)
	}

	// Backfilling an earlier month around the existing one is allowed.
	if _, err := f.engine.PayInstallment(7, 1, 1, 100000); err != nil {
		t.Fatalf("backfill month 1: %v", err)
	}
}

func TestRecordUserPaymentSkipsSettledMonths(t *testing.T) {
	// When an admin backfilled month 1, the count-based cursor points past it.
	f := newFixture(testScheme(1, 100000, 4))
	if _, err := f.engine.RequestJoin(7, 1, JoinDetails{Name: "Budi"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := f.engine.Approve(7, 1); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.engine.PayInstallment(7, 1, 1, 100000); err != nil {
		t.Fatalf("backfill: %v", err)
	}

	paid, err := f.engine.RecordUserPayment(7, 1)
	if err != nil {
		t.Fatalf("RecordUserPayment: %v", err)
	}
	if paid.MonthIndex != 2 {
		t.Fatalf("payment landed at month %d, want 2", paid.MonthIndex)
	}
}
