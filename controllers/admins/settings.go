package admins

import (
	"net/http"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"
)

// GetSettings returns the single application settings row.
func GetSettings(w http.ResponseWriter, r *http.Request) {
	var setting models.Setting
	if err := database.DB.First(&setting).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Pengaturan belum diinisialisasi")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Pengaturan berhasil dimuat",
		Data:    setting,
	})
}

type SettingsRequest struct {
	Name           string `json:"name" validate:"required"`
	Company        string `json:"company"`
	Logo           string `json:"logo"`
	Maintenance    bool   `json:"maintenance"`
	ClosedRegister bool   `json:"closed_register"`
	LinkCS         string `json:"link_cs"`
	LinkGroup      string `json:"link_group"`
	LinkApp        string `json:"link_app"`
}

// UpdateSettings overwrites the settings row, creating it on first use.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var setting models.Setting
	database.DB.First(&setting)
	setting.Name = req.Name
	setting.Company = req.Company
	setting.Logo = req.Logo
	setting.Maintenance = req.Maintenance
	setting.ClosedRegister = req.ClosedRegister
	setting.LinkCS = req.LinkCS
	setting.LinkGroup = req.LinkGroup
	setting.LinkApp = req.LinkApp

	if err := database.DB.Save(&setting).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Pengaturan berhasil diperbarui",
		Data:    setting,
	})
}
