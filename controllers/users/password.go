package users

import (
	"net/http"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"

	"golang.org/x/crypto/bcrypt"
)

type ChangePasswordRequest struct {
	OldPassword             string `json:"old_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required,pwdmin"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required,eqfield=NewPassword"`
}

func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req ChangePasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	if err := database.DB.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Pengguna tidak ditemukan")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Password lama salah")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Old sessions die with the password.
	_ = database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ?", uid).
		Update("revoked", true).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Password berhasil diubah"})
}
