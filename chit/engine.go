package chit

import (
	"fmt"
	"time"

	"project/models"
	"project/utils"
)

// Engine owns every transition of a user's participation in a scheme. All
// reads and writes go through the Ledger so the unique index on
// (user, scheme, month) stays the single source of truth.
type Engine struct {
	ledger   Ledger
	schemes  SchemeStore
	notifier Notifier
	now      func() time.Time
}

func NewEngine(ledger Ledger, schemes SchemeStore, notifier Notifier) *Engine {
	return &Engine{
		ledger:   ledger,
		schemes:  schemes,
		notifier: notifier,
		now:      time.Now,
	}
}

// JoinDetails carries the contact data shown to admins on a join request.
// Empty fields are filled from the user's profile by the handler.
type JoinDetails struct {
	Name         string
	MobileNumber string
	Address      string
}

// RequestJoin creates the Pending month-0 installment for the pair. Only
// Active schemes accept new members; an inactive scheme is reported the same
// way as a missing one so the catalog and the join endpoint agree.
func (e *Engine) RequestJoin(userID, schemeID uint, details JoinDetails) (*models.InstallmentRecord, error) {
	scheme, err := e.schemes.Scheme(schemeID)
	if err != nil {
		return nil, err
	}
	if scheme.Status != models.SchemeActive {
		return nil, ErrSchemeNotFound
	}

	existing, err := e.ledger.ListForPair(userID, schemeID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrAlreadyEnrolled
	}

	rec := &models.InstallmentRecord{
		UserID:     userID,
		SchemeID:   schemeID,
		MonthIndex: 0,
		Amount:     scheme.InstallmentAmount,
		Status:     models.InstallmentPending,
		OrderID:    utils.GenerateOrderID(userID),
	}
	if err := e.ledger.CreateIfAbsent(rec); err != nil {
		if err == ErrDuplicateInstallment {
			// Lost a race against a concurrent join by the same user.
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	e.notifier.NotifyAll("admin",
		"Pengajuan arisan baru",
		fmt.Sprintf("%s mengajukan keikutsertaan arisan %s", details.Name, scheme.Name),
		models.NotificationChit,
		map[string]interface{}{
			"user_id":       userID,
			"scheme_id":     schemeID,
			"name":          details.Name,
			"mobile_number": details.MobileNumber,
			"address":       details.Address,
		})
	return rec, nil
}

// Approve flips the Pending month-0 installment to Paid. The approval
// timestamp becomes the enrollment's cycle anchor: every later due date is
// anchor + k*30 days.
func (e *Engine) Approve(userID, schemeID uint) (*models.InstallmentRecord, error) {
	scheme, err := e.schemes.Scheme(schemeID)
	if err != nil {
		return nil, err
	}
	records, err := e.ledger.ListForPair(userID, schemeID)
	if err != nil {
		return nil, err
	}
	enrollment := Enrollment(records)
	if enrollment == nil || enrollment.Status != models.InstallmentPending {
		return nil, ErrEnrollmentNotFound
	}

	now := e.now()
	if err := e.ledger.MarkPaid(enrollment.ID, now); err != nil {
		return nil, err
	}
	enrollment.Status = models.InstallmentPaid
	enrollment.PaymentDate = &now

	e.notifier.Notify(userID,
		"Arisan disetujui",
		fmt.Sprintf("Keikutsertaan Anda pada arisan %s telah disetujui. Setoran pertama sudah tercatat.", scheme.Name),
		models.NotificationChit,
		map[string]interface{}{"scheme_id": schemeID, "month_index": 0})
	return enrollment, nil
}

// Reject removes a Pending join request. The pair returns to NotEnrolled and
// the user may apply again later.
func (e *Engine) Reject(userID, schemeID uint) error {
	scheme, err := e.schemes.Scheme(schemeID)
	if err != nil {
		return err
	}
	records, err := e.ledger.ListForPair(userID, schemeID)
	if err != nil {
		return err
	}
	enrollment := Enrollment(records)
	if enrollment == nil || enrollment.Status != models.InstallmentPending {
		return ErrEnrollmentNotFound
	}
	if err := e.ledger.Delete(enrollment.ID); err != nil {
		return err
	}

	e.notifier.Notify(userID,
		"Pengajuan arisan ditolak",
		fmt.Sprintf("Pengajuan keikutsertaan arisan %s ditolak. Silakan hubungi admin untuk informasi lebih lanjut.", scheme.Name),
		models.NotificationChit,
		map[string]interface{}{"scheme_id": schemeID})
	return nil
}

// PayInstallment records a Paid installment at the month index the subscriber
// chose. Indexes may arrive out of order (paying a later month in advance);
// the unique index rejects a second payment for the same month.
func (e *Engine) PayInstallment(userID, schemeID uint, monthIndex int, amount float64) (*models.InstallmentRecord, error) {
	scheme, err := e.schemes.Scheme(schemeID)
	if err != nil {
		return nil, err
	}
	records, err := e.ledger.ListForPair(userID, schemeID)
	if err != nil {
		return nil, err
	}
	switch DeriveState(records, scheme.DurationMonths) {
	case Active:
	case Completed:
		return nil, ErrSchemeCompleted
	default:
		return nil, ErrNotActive
	}
	if monthIndex < 1 {
		return nil, ErrInvalidMonth
	}
	if monthIndex >= scheme.DurationMonths {
		return nil, ErrSchemeCompleted
	}
	return e.recordPayment(userID, scheme, monthIndex, amount)
}

// RecordUserPayment appends the next sequential installment at the scheme
// price. This is the admin path: the month index is always server-computed.
func (e *Engine) RecordUserPayment(userID, schemeID uint) (*models.InstallmentRecord, error) {
	scheme, err := e.schemes.Scheme(schemeID)
	if err != nil {
		return nil, err
	}
	records, err := e.ledger.ListForPair(userID, schemeID)
	if err != nil {
		return nil, err
	}
	switch DeriveState(records, scheme.DurationMonths) {
	case Active:
	case Completed:
		return nil, ErrSchemeCompleted
	default:
		return nil, ErrNotActive
	}
	next, err := e.ledger.CountPaid(userID, schemeID)
	if err != nil {
		return nil, err
	}
	if next >= scheme.DurationMonths {
		return nil, ErrSchemeCompleted
	}
	return e.recordPayment(userID, scheme, next, scheme.InstallmentAmount)
}

func (e *Engine) recordPayment(userID uint, scheme *models.Scheme, monthIndex int, amount float64) (*models.InstallmentRecord, error) {
	now := e.now()
	rec := &models.InstallmentRecord{
		UserID:      userID,
		SchemeID:    scheme.ID,
		MonthIndex:  monthIndex,
		Amount:      amount,
		Status:      models.InstallmentPaid,
		PaymentDate: &now,
		OrderID:     utils.GenerateOrderID(userID),
	}
	if err := e.ledger.CreateIfAbsent(rec); err != nil {
		return nil, err
	}

	e.notifier.Notify(userID,
		"Setoran arisan diterima",
		fmt.Sprintf("Setoran arisan %s bulan ke-%d sebesar Rp%.0f sudah tercatat.", scheme.Name, monthIndex, amount),
		models.NotificationChit,
		map[string]interface{}{"scheme_id": scheme.ID, "month_index": monthIndex})
	return rec, nil
}
