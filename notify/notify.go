package notify

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"project/models"
)

// Store writes in-app notifications to the database. Delivery is fire and
// forget: a failed insert is logged and swallowed so business writes never
// roll back over a missing notification.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Notify stores one notification for a user.
func (s *Store) Notify(userID uint, title, message, category string, payload map[string]interface{}) {
	s.create(userID, "user", title, message, category, payload)
}

// NotifyAll fans a notification out to every account holding the given role.
// Only "admin" is supported today.
func (s *Store) NotifyAll(role, title, message, category string, payload map[string]interface{}) {
	if role != "admin" {
		log.Printf("[notify] unknown role %q, dropping notification %q", role, title)
		return
	}
	adminIDs, err := models.ListActiveAdminIDs()
	if err != nil {
		log.Printf("[notify] gagal memuat daftar admin: %v", err)
		return
	}
	for _, adminID := range adminIDs {
		s.create(uint(adminID), "admin", title, message, category, payload)
	}
}

func (s *Store) create(recipientID uint, audience, title, message, category string, payload map[string]interface{}) {
	notification := models.Notification{
		UserID:   recipientID,
		Audience: audience,
		Title:    title,
		Message:  message,
		Category: category,
		Kind:     models.NotificationKindEvent,
	}
	if len(payload) > 0 {
		if v, ok := payload["reminder"].(bool); ok && v {
			notification.Kind = models.NotificationKindReminder
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("[notify] payload notifikasi %q tidak valid: %v", title, err)
		} else {
			body := string(raw)
			notification.Payload = &body
		}
		notification.SchemeID, notification.MonthIndex = chitKeys(payload)
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("[notify] gagal menyimpan notifikasi untuk %s %d: %v", audience, recipientID, err)
		return
	}
	log.Printf("[notify] %s -> %s %d: %s", category, audience, recipientID, title)
}

// chitKeys lifts the chit coordinates out of the payload into their own
// columns so the reminder sweep can query them directly.
func chitKeys(payload map[string]interface{}) (*uint, *int) {
	var schemeID *uint
	var monthIndex *int
	if v, ok := payload["scheme_id"]; ok {
		if id, ok := asUint(v); ok {
			schemeID = &id
		}
	}
	if v, ok := payload["month_index"]; ok {
		if idx, ok := asInt(v); ok {
			monthIndex = &idx
		}
	}
	return schemeID, monthIndex
}

func asUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, true
	case int:
		if n >= 0 {
			return uint(n), true
		}
	case float64:
		if n >= 0 {
			return uint(n), true
		}
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case uint:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// HasChitNotification reports whether a chit reminder for the given cycle
// already exists. This is the idempotency check behind the reminder sweep.
// Only reminder rows count: a payment confirmation carrying the same month
// index must not suppress the cycle's reminder.
func (s *Store) HasChitNotification(userID, schemeID uint, monthIndex int) (bool, error) {
	var n int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND audience = 'user' AND category = ? AND kind = ? AND scheme_id = ? AND month_index = ?",
			userID, models.NotificationChit, models.NotificationKindReminder, schemeID, monthIndex).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
