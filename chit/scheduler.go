package chit

import (
	"math"
	"time"
)

// CycleDays is the fixed gap between installments. Due dates roll every 30
// days from the anchor (the approval timestamp of the joining installment),
// deliberately ignoring calendar months.
const CycleDays = 30

const cycle = CycleDays * 24 * time.Hour

// NextDue computes the upcoming due date for an active enrollment.
//
// paid is the number of Paid installments including the joining one, so right
// after approval paid=1 and the first regular installment falls due 30 days
// after the anchor. When paid >= durationMonths the scheme is settled and both
// results are nil.
//
// daysRemaining is rounded up to whole days: 0 means due today, negative means
// overdue. Callers must only invoke this once the enrollment is Active (the
// anchor exists).
func NextDue(anchor time.Time, paid, durationMonths int, now time.Time) (*time.Time, *int) {
	if paid >= durationMonths {
		return nil, nil
	}
	due := anchor.Add(time.Duration(paid) * cycle)
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	return &due, &days
}
