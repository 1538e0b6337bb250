package models

import "time"

// Scheme is one arisan (chit fund) plan: a fixed installment paid every 30-day
// cycle for DurationMonths cycles. Amount fields are immutable once a
// subscriber holds installments against the scheme (enforced in the admin
// handlers, not at the database level).
type Scheme struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	TotalAmount       float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	InstallmentAmount float64   `gorm:"type:decimal(15,2);not null" json:"installment_amount"`
	DurationMonths    int       `gorm:"not null" json:"duration_months"`
	Description       string    `gorm:"type:text" json:"description"`
	Image             *string   `gorm:"type:varchar(255);null" json:"image,omitempty"`
	Status            string    `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Scheme) TableName() string {
	return "chit_schemes"
}

const (
	SchemeActive   = "Active"
	SchemeInactive = "Inactive"
)
