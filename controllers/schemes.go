package controllers

import (
	"log"
	"net/http"
	"strconv"

	"project/database"
	"project/models"
	"project/utils"

	"github.com/gorilla/mux"
)

// Public arisan catalog. Inactive schemes are hidden here and refuse joins,
// but existing participants keep paying against them.

func ListSchemesHandler(w http.ResponseWriter, r *http.Request) {
	var schemes []models.Scheme
	if err := database.DB.
		Where("status = ?", models.SchemeActive).
		Order("installment_amount ASC").
		Find(&schemes).Error; err != nil {
		log.Printf("[schemes] list error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar arisan berhasil dimuat",
		Data:    schemes,
	})
}

func GetSchemeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "ID arisan tidak valid")
		return
	}
	var scheme models.Scheme
	if err := database.DB.
		Where("id = ? AND status = ?", id, models.SchemeActive).
		First(&scheme).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Arisan tidak ditemukan")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Detail arisan berhasil dimuat",
		Data:    scheme,
	})
}

// ProductListHandler lists active retail products, optionally filtered by
// category.
func ProductListHandler(w http.ResponseWriter, r *http.Request) {
	query := database.DB.Preload("Category").Where("status = ?", "Active")
	if cat := r.URL.Query().Get("category_id"); cat != "" {
		if catID, err := strconv.ParseUint(cat, 10, 64); err == nil {
			query = query.Where("category_id = ?", catID)
		}
	}
	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		log.Printf("[products] list error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar produk berhasil dimuat",
		Data:    products,
	})
}

// InfoPublicHandler exposes the app identity and maintenance flags shown on
// the landing screen before login.
func InfoPublicHandler(w http.ResponseWriter, r *http.Request) {
	var setting models.Setting
	err := database.DB.Model(&models.Setting{}).
		Select("name, company, logo, maintenance, closed_register, link_cs, link_group, link_app").
		Take(&setting).Error
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Informasi aplikasi",
		Data: map[string]interface{}{
			"name":            setting.Name,
			"company":         setting.Company,
			"logo":            setting.Logo,
			"maintenance":     setting.Maintenance,
			"closed_register": setting.ClosedRegister,
			"link_cs":         setting.LinkCS,
			"link_group":      setting.LinkGroup,
			"link_app":        setting.LinkApp,
		},
	})
}
