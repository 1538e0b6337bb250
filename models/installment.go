package models

import "time"

// InstallmentRecord is one paid (or pending) cycle of a user's participation in
// a scheme. MonthIndex 0 is the joining installment: its Pending/Paid status is
// the enrollment approval state, and its PaymentDate (set at approval) anchors
// all later due-date math.
//
// The composite unique index is the invariant the whole ledger rests on: at
// most one record per (user, scheme, month). Writers must go through
// chit.Ledger.CreateIfAbsent so a duplicate key from MySQL is surfaced as a
// domain error instead of a 500.
type InstallmentRecord struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:uniq_chit_user_scheme_month,priority:1" json:"user_id"`
	SchemeID    uint       `gorm:"not null;index;uniqueIndex:uniq_chit_user_scheme_month,priority:2" json:"scheme_id"`
	MonthIndex  int        `gorm:"not null;uniqueIndex:uniq_chit_user_scheme_month,priority:3" json:"month_index"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status      string     `gorm:"type:enum('Pending','Paid','Failed');default:'Pending'" json:"status"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	OrderID     string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Scheme *Scheme `gorm:"foreignKey:SchemeID" json:"scheme,omitempty"`
}

func (InstallmentRecord) TableName() string {
	return "chit_installments"
}

const (
	InstallmentPending = "Pending"
	InstallmentPaid    = "Paid"
	InstallmentFailed  = "Failed"
)
