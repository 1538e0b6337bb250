package models

import "time"

// Notification is owned by its recipient; users only ever see their own rows.
// Audience separates the user and admin ID namespaces (admins live in a
// different table). SchemeID/MonthIndex are filled only for chit reminders and
// confirmations so the reminder sweep can ask "did cycle N already get a
// reminder" with a plain indexed query instead of matching JSON payloads.
// Kind separates reminders from event confirmations: a payment confirmation
// for month N must not count as the reminder for cycle N.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Audience   string    `gorm:"type:enum('user','admin');default:'user'" json:"audience"`
	Title      string    `gorm:"size:150;not null" json:"title"`
	Message    string    `gorm:"type:text" json:"message"`
	Category   string    `gorm:"type:enum('order','chit','promotion','system');default:'system'" json:"category"`
	Kind       string    `gorm:"type:enum('event','reminder');default:'event'" json:"kind"`
	Payload    *string   `gorm:"type:text" json:"payload,omitempty"`
	SchemeID   *uint     `gorm:"index" json:"scheme_id,omitempty"`
	MonthIndex *int      `json:"month_index,omitempty"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

const (
	NotificationOrder     = "order"
	NotificationChit      = "chit"
	NotificationPromotion = "promotion"
	NotificationSystem    = "system"
)

const (
	NotificationKindEvent    = "event"
	NotificationKindReminder = "reminder"
)
