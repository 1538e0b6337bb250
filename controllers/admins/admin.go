package admins

import (
	"net/http"
	"strings"
	"time"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a back-office account. Admin sessions are shorter than
// user sessions and have no refresh flow.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	admin, err := models.GetAdminByUsername(strings.TrimSpace(req.Username))
	if err != nil || !admin.ValidatePassword(req.Password) {
		utils.WriteError(w, http.StatusUnauthorized, "Username atau password salah")
		return
	}

	expiry := 6 * time.Hour
	token, err := utils.GenerateAccessTokenWithExpiry(uint(admin.ID), "admin", expiry)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Gagal membuat token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login berhasil",
		Data: map[string]interface{}{
			"access_token":  token,
			"access_expire": time.Now().Add(expiry).UTC().Format(time.RFC3339),
			"admin": map[string]interface{}{
				"id":       admin.ID,
				"username": admin.Username,
				"name":     admin.Name,
				"role":     admin.Role,
			},
		},
	})
}

// GetAdminInfo returns the authenticated admin's account plus the back-office
// notification feed.
func GetAdminInfo(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var admin models.Admin
	if err := database.DB.First(&admin, adminID).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Admin tidak ditemukan")
		return
	}

	var notifications []models.Notification
	database.DB.
		Where("user_id = ? AND audience = 'admin'", adminID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Informasi admin berhasil dimuat",
		Data: map[string]interface{}{
			"admin":         admin,
			"notifications": notifications,
		},
	})
}
