package users

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"
)

type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"nameok"`
	Address string `json:"address"`
}

// UpdateProfileHandler changes the user's display name and address. The phone
// number is the login identity and cannot be changed here.
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req UpdateProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		updates["address"] = address
	}
	if len(updates) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Tidak ada perubahan yang dikirim")
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", uid).Updates(updates).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Profil berhasil diperbarui"})
}

// UploadProfilePictureHandler stores a new avatar in object storage and saves
// its key on the user row.
func UploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File terlalu besar atau form tidak valid")
		return
	}
	file, header, err := r.FormFile("profile")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File profil wajib dikirim")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		utils.WriteError(w, http.StatusBadRequest, "Format gambar tidak didukung")
		return
	}

	objectName := fmt.Sprintf("profiles/u%d_%d%s", uid, time.Now().Unix(), ext)
	if err := utils.UploadToS3(objectName, file); err != nil {
		log.Printf("[profile] upload for user %d: %v", uid, err)
		utils.WriteError(w, http.StatusInternalServerError, "Gagal mengunggah gambar")
		return
	}

	var user models.User
	if err := database.DB.First(&user, uid).Error; err == nil && user.Profile != nil && *user.Profile != "" {
		_ = utils.DeleteFromS3(*user.Profile)
	}
	if err := database.DB.Model(&models.User{}).Where("id = ?", uid).Update("profile", objectName).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	url, err := utils.GenerateSignedURL(objectName, 3600)
	if err != nil {
		url = ""
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Foto profil berhasil diperbarui",
		Data:    map[string]interface{}{"profile": objectName, "url": url},
	})
}

// DeleteProfilePictureHandler removes the stored avatar.
func DeleteProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
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
	if user.Profile != nil && *user.Profile != "" {
		_ = utils.DeleteFromS3(*user.Profile)
	}
	if err := database.DB.Model(&user).Update("profile", nil).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Foto profil dihapus"})
}
