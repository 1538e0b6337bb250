package admins

import (
	"errors"
	"net/http"
	"strings"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"

	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func ListCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar kategori berhasil dimuat",
		Data:    categories,
	})
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      "Active",
	}
	if req.Status != "" {
		category.Status = req.Status
	}
	if err := database.DB.Create(&category).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Kategori berhasil dibuat",
		Data:    category,
	})
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUint(r, "category_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID kategori tidak valid")
		return
	}
	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Kategori tidak ditemukan")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	if req.Status != "" {
		category.Status = req.Status
	}
	if err := database.DB.Save(&category).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Kategori berhasil diperbarui",
		Data:    category,
	})
}

// DeleteCategory refuses to remove a category that still has products so the
// catalog never dangles.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUint(r, "category_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID kategori tidak valid")
		return
	}

	var inUse int64
	database.DB.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&inUse)
	if inUse > 0 {
		utils.WriteError(w, http.StatusConflict, "Kategori masih memiliki produk")
		return
	}

	res := database.DB.Delete(&models.Category{}, categoryID)
	if res.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Kategori tidak ditemukan")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Kategori berhasil dihapus"})
}
