package admins

import (
	"errors"
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

	"gorm.io/gorm"
)

type ProductRequest struct {
	CategoryID  uint    `json:"category_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

func (req *ProductRequest) validateFields() string {
	if req.Price <= 0 {
		return "Harga produk harus lebih dari nol"
	}
	if req.Stock < 0 {
		return "Stok tidak boleh negatif"
	}
	if req.Status != "" && req.Status != "Active" && req.Status != "Inactive" {
		return "Status produk tidak valid"
	}
	return ""
}

// ListProducts shows all products including inactive ones.
func ListProducts(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := database.DB.Preload("Category").Order("created_at DESC").Find(&products).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar produk berhasil dimuat",
		Data:    products,
	})
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if msg := req.validateFields(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Kategori tidak ditemukan")
		return
	}

	product := models.Product{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		Status:      "Active",
	}
	if req.Status != "" {
		product.Status = req.Status
	}
	if err := database.DB.Create(&product).Error; err != nil {
		log.Printf("[admin-product] create: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Produk berhasil dibuat",
		Data:    product,
	})
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "product_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID produk tidak valid")
		return
	}
	var req ProductRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if msg := req.validateFields(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Produk tidak ditemukan")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if req.CategoryID != product.CategoryID {
		var category models.Category
		if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Kategori tidak ditemukan")
			return
		}
	}

	product.CategoryID = req.CategoryID
	product.Name = strings.TrimSpace(req.Name)
	product.Price = req.Price
	product.Stock = req.Stock
	product.Description = req.Description
	if req.Status != "" {
		product.Status = req.Status
	}
	if err := database.DB.Save(&product).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Produk berhasil diperbarui",
		Data:    product,
	})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "product_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID produk tidak valid")
		return
	}
	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Produk tidak ditemukan")
		return
	}
	if product.Image != nil && *product.Image != "" {
		_ = utils.DeleteFromS3(*product.Image)
	}
	if err := database.DB.Delete(&product).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Produk berhasil dihapus"})
}

// UploadProductImage replaces the product photo in object storage.
func UploadProductImage(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "product_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID produk tidak valid")
		return
	}
	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Produk tidak ditemukan")
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File terlalu besar atau form tidak valid")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File gambar wajib dikirim")
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

	objectName := fmt.Sprintf("products/p%d_%d%s", productID, time.Now().Unix(), ext)
	if err := utils.UploadToS3(objectName, file); err != nil {
		log.Printf("[admin-product] upload image for product %d: %v", productID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Gagal mengunggah gambar")
		return
	}
	if product.Image != nil && *product.Image != "" {
		_ = utils.DeleteFromS3(*product.Image)
	}
	if err := database.DB.Model(&product).Update("image", objectName).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	url, err := utils.GenerateSignedURL(objectName, 3600)
	if err != nil {
		url = ""
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Gambar produk berhasil diperbarui",
		Data:    map[string]interface{}{"image": objectName, "url": url},
	})
}
