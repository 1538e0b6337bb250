package auth

import (
	"net/http"
	"strings"
	"time"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Number   string `json:"number" validate:"required,phone8"`
	Password string `json:"password" validate:"required,pwdmin"`
	IsApp    *bool  `json:"is_app,omitempty"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("maintenance, name").Take(&appSetting).Error; err == nil && appSetting.Maintenance {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Aplikasi sedang dalam pemeliharaan. Silakan coba lagi nanti.",
			Data:    map[string]interface{}{"maintenance": true, "application": appSetting.Name},
		})
		return
	}

	db := database.DB

	var user models.User
	if err := db.Where("number = ?", req.Number).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.WriteError(w, http.StatusUnauthorized, "Nomor telpon atau password salah")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	switch strings.ToLower(user.Status) {
	case "active":
	case "suspend":
		utils.WriteError(w, http.StatusForbidden, "Akun Anda telah ditangguhkan, silakan hubungi Admin")
		return
	default:
		utils.WriteError(w, http.StatusForbidden, "Akun Anda tidak aktif, silakan hubungi Admin")
		return
	}

	if locked, retry := middleware.IsAccountLocked(user.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Message: "Terlalu banyak percobaan login. Coba lagi nanti.",
			Data:    map[string]interface{}{"retry_after_seconds": int(retry.Seconds())},
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteError(w, http.StatusUnauthorized, "Nomor telpon atau password salah")
		return
	}
	middleware.ResetFailedLogin(user.ID)

	tokenExpiry := accessTokenExpiry(req.IsApp)
	exp := time.Now().Add(tokenExpiry)

	accessToken, err := utils.GenerateAccessTokenWithExpiry(user.ID, "user", tokenExpiry)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Gagal login")
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Gagal menyimpan refresh token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login berhasil! Mengalihkan ke dashboard...",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": exp.UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user":          userPayload(&user),
			"application":   applicationPayload(db),
		},
	})
}
