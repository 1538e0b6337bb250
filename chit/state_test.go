package chit

import (
	"testing"

	"project/models"
)

func rec(month int, status string) models.InstallmentRecord {
	return models.InstallmentRecord{MonthIndex: month, Status: status}
}

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name     string
		records  []models.InstallmentRecord
		duration int
		want     EnrollmentState
	}{
		{
			name:     "no records",
			duration: 12,
			want:     NotEnrolled,
		},
		{
			name:     "pending enrollment",
			records:  []models.InstallmentRecord{rec(0, models.InstallmentPending)},
			duration: 12,
			want:     PendingApproval,
		},
		{
			name:     "approved enrollment",
			records:  []models.InstallmentRecord{rec(0, models.InstallmentPaid)},
			duration: 12,
			want:     Active,
		},
		{
			name: "mid plan",
			records: []models.InstallmentRecord{
				rec(0, models.InstallmentPaid),
				rec(1, models.InstallmentPaid),
				rec(2, models.InstallmentPaid),
			},
			duration: 12,
			want:     Active,
		},
		{
			name: "all cycles settled",
			records: []models.InstallmentRecord{
				rec(0, models.InstallmentPaid),
				rec(1, models.InstallmentPaid),
				rec(2, models.InstallmentPaid),
			},
			duration: 3,
			want:     Completed,
		},
		{
			name: "failed rows do not count toward completion",
			records: []models.InstallmentRecord{
				rec(0, models.InstallmentPaid),
				rec(1, models.InstallmentFailed),
				rec(2, models.InstallmentPaid),
			},
			duration: 3,
			want:     Active,
		},
		{
			name:     "orphan rows without enrollment",
			records:  []models.InstallmentRecord{rec(2, models.InstallmentPaid)},
			duration: 12,
			want:     NotEnrolled,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveState(tc.records, tc.duration); got != tc.want {
				t.Errorf("DeriveState() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEnrollmentStateString(t *testing.T) {
	pairs := map[EnrollmentState]string{
		NotEnrolled:     "Not Enrolled",
		PendingApproval: "Pending Approval",
		Active:          "Active",
		Completed:       "Completed",
	}
	for state, want := range pairs {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
