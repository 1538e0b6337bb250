package chit

import (
	"testing"
	"time"

	"project/models"
)

func paidRec(userID uint, month int, amount float64, when time.Time) models.InstallmentRecord {
	return models.InstallmentRecord{
		UserID:      userID,
		MonthIndex:  month,
		Amount:      amount,
		Status:      models.InstallmentPaid,
		PaymentDate: &when,
	}
}

func TestBuildProgressActive(t *testing.T) {
	anchor := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	now := anchor.Add(45 * 24 * time.Hour)
	records := []models.InstallmentRecord{
		paidRec(7, 0, 100000, anchor),
		paidRec(7, 1, 100000, anchor.Add(30*24*time.Hour)),
	}

	p := BuildProgress(records, 12, now)
	if p.Status != "Active" {
		t.Fatalf("status = %q, want Active", p.Status)
	}
	if p.MonthsPaid != 2 || p.PendingMonths != 10 || p.TotalPaid != 200000 {
		t.Fatalf("progress = %+v", p)
	}
	if p.AnchorDate == nil || !p.AnchorDate.Equal(anchor) {
		t.Fatalf("anchor = %v, want %v", p.AnchorDate, anchor)
	}
	wantDue := anchor.Add(60 * 24 * time.Hour)
	if p.NextDueDate == nil || !p.NextDueDate.Equal(wantDue) {
		t.Fatalf("next due = %v, want %v", p.NextDueDate, wantDue)
	}
	if p.DaysRemaining == nil || *p.DaysRemaining != 15 {
		t.Fatalf("days remaining = %v, want 15", p.DaysRemaining)
	}
}

func TestBuildProgressPendingAndCompleted(t *testing.T) {
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	pending := []models.InstallmentRecord{{UserID: 7, MonthIndex: 0, Amount: 100000, Status: models.InstallmentPending}}
	p := BuildProgress(pending, 12, now)
	if p.Status != "Pending Approval" || p.MonthsPaid != 0 || p.NextDueDate != nil {
		t.Fatalf("pending progress = %+v", p)
	}
	if p.PendingMonths != 12 {
		t.Fatalf("pending months = %d, want 12", p.PendingMonths)
	}

	completed := []models.InstallmentRecord{
		paidRec(7, 0, 100000, now),
		paidRec(7, 1, 100000, now),
	}
	p = BuildProgress(completed, 2, now)
	if p.Status != "Completed" || p.NextDueDate != nil || p.DaysRemaining != nil {
		t.Fatalf("completed progress = %+v", p)
	}
	if p.TotalPaid != 200000 || p.PendingMonths != 0 {
		t.Fatalf("completed totals = %+v", p)
	}
}

func TestSchemeParticipants(t *testing.T) {
	anchor := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	now := anchor.Add(10 * 24 * time.Hour)

	records := []models.InstallmentRecord{
		paidRec(9, 0, 100000, anchor),
		{UserID: 4, MonthIndex: 0, Amount: 100000, Status: models.InstallmentPending},
		paidRec(9, 1, 100000, anchor.Add(5*24*time.Hour)),
	}

	got := SchemeParticipants(records, 12, now)
	if len(got) != 2 {
		t.Fatalf("participants = %d, want 2", len(got))
	}
	if got[0].UserID != 4 || got[1].UserID != 9 {
		t.Fatalf("order = [%d %d], want [4 9]", got[0].UserID, got[1].UserID)
	}
	if got[0].Status != "Pending Approval" {
		t.Errorf("user 4 status = %q, want Pending Approval", got[0].Status)
	}
	if got[1].Status != "Active" || got[1].MonthsPaid != 2 {
		t.Errorf("user 9 progress = %+v", got[1].Progress)
	}
}
