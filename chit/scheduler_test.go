package chit

import (
	"testing"
	"time"
)

func TestNextDue(t *testing.T) {
	anchor := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		paid     int
		duration int
		now      time.Time
		wantDue  time.Time
		wantDays int
		wantNil  bool
	}{
		{
			name:     "first cycle after approval",
			paid:     1,
			duration: 12,
			now:      anchor,
			wantDue:  anchor.Add(30 * 24 * time.Hour),
			wantDays: 30,
		},
		{
			name:     "due exactly now",
			paid:     1,
			duration: 12,
			now:      anchor.Add(30 * 24 * time.Hour),
			wantDue:  anchor.Add(30 * 24 * time.Hour),
			wantDays: 0,
		},
		{
			name:     "partial day rounds up",
			paid:     1,
			duration: 12,
			now:      anchor.Add(29*24*time.Hour + 12*time.Hour),
			wantDue:  anchor.Add(30 * 24 * time.Hour),
			wantDays: 1,
		},
		{
			name:     "overdue by a day and a half",
			paid:     2,
			duration: 12,
			now:      anchor.Add(61*24*time.Hour + 12*time.Hour),
			wantDue:  anchor.Add(60 * 24 * time.Hour),
			wantDays: -1,
		},
		{
			name:     "mid plan",
			paid:     5,
			duration: 12,
			now:      anchor.Add(120 * 24 * time.Hour),
			wantDue:  anchor.Add(150 * 24 * time.Hour),
			wantDays: 30,
		},
		{
			name:     "all installments settled",
			paid:     12,
			duration: 12,
			now:      anchor,
			wantNil:  true,
		},
		{
			name:     "paid beyond duration",
			paid:     13,
			duration: 12,
			now:      anchor,
			wantNil:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			due, days := NextDue(anchor, tc.paid, tc.duration, tc.now)
			if tc.wantNil {
				if due != nil || days != nil {
					t.Fatalf("expected nil results, got due=%v days=%v", due, days)
				}
				return
			}
			if due == nil || days == nil {
				t.Fatalf("expected results, got due=%v days=%v", due, days)
			}
			if !due.Equal(tc.wantDue) {
				t.Errorf("due = %v, want %v", *due, tc.wantDue)
			}
			if *days != tc.wantDays {
				t.Errorf("days remaining = %d, want %d", *days, tc.wantDays)
			}
		})
	}
}

func TestNextDueRoundTrip(t *testing.T) {
	// Walking the plan one payment at a time must land each due date exactly
	// 30 days after the previous one and terminate at the duration.
	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	const duration = 6

	prev := anchor
	for paid := 1; paid < duration; paid++ {
		due, _ := NextDue(anchor, paid, duration, prev)
		if due == nil {
			t.Fatalf("paid=%d: unexpected completion", paid)
		}
		if got := due.Sub(prev); got != 30*24*time.Hour {
			t.Fatalf("paid=%d: gap = %v, want 720h", paid, got)
		}
		prev = *due
	}
	if due, _ := NextDue(anchor, duration, duration, prev); due != nil {
		t.Fatalf("expected completion at paid=%d, got due %v", duration, *due)
	}
}
