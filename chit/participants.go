package chit

import (
	"sort"
	"time"

	"project/models"
)

// Progress is the derived view of one (user, scheme) pair: lifecycle state,
// payment totals and, while the enrollment is active, the next due date.
type Progress struct {
	Status        string     `json:"status"`
	MonthsPaid    int        `json:"months_paid"`
	TotalPaid     float64    `json:"total_paid"`
	PendingMonths int        `json:"pending_months"`
	AnchorDate    *time.Time `json:"anchor_date,omitempty"`
	NextDueDate   *time.Time `json:"next_due_date,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
}

// BuildProgress derives the progress view from a pair's ledger rows.
func BuildProgress(records []models.InstallmentRecord, durationMonths int, now time.Time) Progress {
	state := DeriveState(records, durationMonths)
	progress := Progress{Status: state.String()}
	for i := range records {
		if records[i].Status == models.InstallmentPaid {
			progress.MonthsPaid++
			progress.TotalPaid += records[i].Amount
		}
	}
	progress.PendingMonths = durationMonths - progress.MonthsPaid
	if progress.PendingMonths < 0 {
		progress.PendingMonths = 0
	}
	if state != Active {
		return progress
	}
	enrollment := Enrollment(records)
	if enrollment == nil || enrollment.PaymentDate == nil {
		return progress
	}
	progress.AnchorDate = enrollment.PaymentDate
	progress.NextDueDate, progress.DaysRemaining = NextDue(*enrollment.PaymentDate, progress.MonthsPaid, durationMonths, now)
	return progress
}

// ParticipantProgress pairs a subscriber ID with their derived progress.
type ParticipantProgress struct {
	UserID uint
	Progress
}

// SchemeParticipants groups a scheme's ledger rows by user and derives each
// participant's progress, ordered by user ID. Callers join user names on top.
func SchemeParticipants(records []models.InstallmentRecord, durationMonths int, now time.Time) []ParticipantProgress {
	byUser := make(map[uint][]models.InstallmentRecord)
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}
	userIDs := make([]uint, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	participants := make([]ParticipantProgress, 0, len(userIDs))
	for _, userID := range userIDs {
		participants = append(participants, ParticipantProgress{
			UserID:   userID,
			Progress: BuildProgress(byUser[userID], durationMonths, now),
		})
	}
	return participants
}
