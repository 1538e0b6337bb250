package auth

import (
	"encoding/json"
	"net/http"

	"project/database"
	"project/models"
	"project/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutHandler revokes the given refresh token and blacklists the current
// access token's jti.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	utils.RevokeBearerJTI(r)

	if database.DB == nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	// A miss still answers 200 to avoid token enumeration.
	_ = database.DB.Model(&models.RefreshToken{}).
		Where("id = ?", req.RefreshToken).
		Update("revoked", true).Error
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
