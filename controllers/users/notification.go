package users

import (
	"log"
	"net/http"
	"strconv"

	"project/database"
	"project/models"
	"project/utils"

	"github.com/gorilla/mux"
)

// NotificationListHandler returns the user's notifications, newest first.
// ?unread=true narrows to unread ones.
func NotificationListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := database.DB.
		Where("user_id = ? AND audience = 'user'", uid).
		Order("created_at DESC").
		Limit(100)
	if r.URL.Query().Get("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		log.Printf("[notification] list for user %d: %v", uid, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND audience = 'user' AND is_read = ?", uid, false).
		Count(&unread)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Notifikasi berhasil dimuat",
		Data: map[string]interface{}{
			"notifications": notifications,
			"unread_count":  unread,
		},
	})
}

// NotificationReadHandler marks one notification as read.
func NotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "ID notifikasi tidak valid")
		return
	}

	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND audience = 'user'", id, uid).
		Update("is_read", true)
	if res.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Notifikasi tidak ditemukan")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Notifikasi ditandai terbaca"})
}

// NotificationDeleteHandler removes one of the user's notifications.
func NotificationDeleteHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "ID notifikasi tidak valid")
		return
	}

	res := database.DB.
		Where("id = ? AND user_id = ? AND audience = 'user'", id, uid).
		Delete(&models.Notification{})
	if res.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Notifikasi tidak ditemukan")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Notifikasi dihapus"})
}

// NotificationReadAllHandler marks every unread notification as read.
func NotificationReadAllHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND audience = 'user' AND is_read = ?", uid, false).
		Update("is_read", true).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Semua notifikasi ditandai terbaca"})
}
