package users

import (
	"net/http"
	"time"

	"project/chit"
	"project/database"
	"project/models"
	"project/utils"
)

// InfoHandler returns the authenticated user's profile together with an
// aggregate view of their arisan participation.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := database.DB.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Pengguna tidak ditemukan")
		return
	}

	records, err := ledger().ListByUser(uid)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	bySchemeID := make(map[uint][]models.InstallmentRecord)
	for _, rec := range records {
		bySchemeID[rec.SchemeID] = append(bySchemeID[rec.SchemeID], rec)
	}

	var totalPaid float64
	active, pending, completed := 0, 0, 0
	for _, pair := range bySchemeID {
		duration := 0
		if pair[0].Scheme != nil {
			duration = pair[0].Scheme.DurationMonths
		}
		progress := chit.BuildProgress(pair, duration, now)
		totalPaid += progress.TotalPaid
		switch progress.Status {
		case "Active":
			active++
		case "Pending Approval":
			pending++
		case "Completed":
			completed++
		}
	}

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND audience = 'user' AND is_read = ?", uid, false).
		Count(&unread)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Informasi pengguna berhasil dimuat",
		Data: map[string]interface{}{
			"user": map[string]interface{}{
				"id":      user.ID,
				"name":    user.Name,
				"number":  user.Number,
				"address": utils.GetStringValue(user.Address),
				"profile": user.Profile,
				"status":  user.Status,
			},
			"chits": map[string]interface{}{
				"active":     active,
				"pending":    pending,
				"completed":  completed,
				"total_paid": totalPaid,
			},
			"unread_notifications": unread,
		},
	})
}
