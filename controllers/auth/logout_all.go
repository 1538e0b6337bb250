package auth

import (
	"net/http"

	"project/database"
	"project/models"
	"project/utils"
)

// LogoutAllHandler revokes every refresh token of the authenticated user plus
// the current access token's jti.
func LogoutAllHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.RevokeBearerJTI(r)

	if database.DB == nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ?", uid).
		Update("revoked", true).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "All sessions revoked"})
}
