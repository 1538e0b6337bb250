package chit

import "project/models"

// EnrollmentState is the explicit lifecycle of one (user, scheme) pair. The
// database never stores it: it is always derived from the installment rows,
// with the month-0 record's status acting as the approval flag and the Paid
// count deciding completion.
type EnrollmentState int

const (
	NotEnrolled EnrollmentState = iota
	PendingApproval
	Active
	Completed
)

func (s EnrollmentState) String() string {
	switch s {
	case PendingApproval:
		return "Pending Approval"
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return "Not Enrolled"
	}
}

// Enrollment returns the month-0 record of the pair, or nil.
func Enrollment(records []models.InstallmentRecord) *models.InstallmentRecord {
	for i := range records {
		if records[i].MonthIndex == 0 {
			return &records[i]
		}
	}
	return nil
}

// DeriveState maps a pair's ledger rows to its lifecycle state.
func DeriveState(records []models.InstallmentRecord, durationMonths int) EnrollmentState {
	if len(records) == 0 {
		return NotEnrolled
	}
	enrollment := Enrollment(records)
	if enrollment == nil {
		// Rows without a month-0 record should not exist; treat as not enrolled
		// rather than guessing.
		return NotEnrolled
	}
	if enrollment.Status == models.InstallmentPending {
		return PendingApproval
	}
	if enrollment.Status != models.InstallmentPaid {
		return NotEnrolled
	}
	paid := 0
	for i := range records {
		if records[i].Status == models.InstallmentPaid {
			paid++
		}
	}
	if durationMonths > 0 && paid >= durationMonths {
		return Completed
	}
	return Active
}
