package auth

import (
	"errors"
	"log"
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

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,nameok"`
	Number               string `json:"number" validate:"required,phone8"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Address              string `json:"address"`
	IsApp                *bool  `json:"is_app,omitempty"` // true: long-lived token for the mobile app
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("closed_register, maintenance, name").Take(&appSetting).Error; err == nil {
		if appSetting.ClosedRegister {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Pendaftaran sedang ditutup. Silakan coba lagi nanti.",
				Data:    map[string]interface{}{"closed_register": true, "application": appSetting.Name},
			})
			return
		}
		if appSetting.Maintenance {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Aplikasi sedang dalam pemeliharaan. Silakan coba lagi nanti.",
				Data:    map[string]interface{}{"maintenance": true, "application": appSetting.Name},
			})
			return
		}
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Number = strings.TrimSpace(req.Number)
	req.Address = strings.TrimSpace(req.Address)

	db := database.DB

	var existing models.User
	if err := db.Where("number = ?", req.Number).First(&existing).Error; err == nil {
		utils.WriteError(w, http.StatusConflict, "Nomor telepon sudah terdaftar")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking number: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	newUser := models.User{
		Name:     req.Name,
		Number:   req.Number,
		Password: string(hashed),
		Status:   "Active",
	}
	if req.Address != "" {
		newUser.Address = &req.Address
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("[register] DB Create user error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Registrasi gagal, silakan coba lagi")
		return
	}

	tokenExpiry := accessTokenExpiry(req.IsApp)
	exp := time.Now().Add(tokenExpiry)

	accessToken, err := utils.GenerateAccessTokenWithExpiry(newUser.ID, "user", tokenExpiry)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Gagal membuat token")
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(newUser.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Gagal menyimpan refresh token")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registrasi berhasil, Selamat datang!",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": exp.UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user":          userPayload(&newUser),
			"application":   applicationPayload(db),
		},
	})
}

// accessTokenExpiry keeps app sessions long-lived while web sessions lean on
// the refresh flow.
func accessTokenExpiry(isApp *bool) time.Duration {
	if isApp != nil && *isApp {
		return 30 * 24 * time.Hour
	}
	return 15 * time.Minute
}

func userPayload(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":      user.ID,
		"name":    user.Name,
		"number":  user.Number,
		"address": utils.GetStringValue(user.Address),
		"profile": user.Profile,
	}
}

func applicationPayload(db *gorm.DB) map[string]interface{} {
	var setting models.Setting
	err := db.Model(&models.Setting{}).
		Select("name, company, logo, link_cs, link_group, link_app").
		Take(&setting).Error
	return map[string]interface{}{
		"name":       setting.Name,
		"company":    setting.Company,
		"logo":       setting.Logo,
		"link_cs":    setting.LinkCS,
		"link_group": setting.LinkGroup,
		"link_app":   setting.LinkApp,
		"healthy":    err == nil,
	}
}
