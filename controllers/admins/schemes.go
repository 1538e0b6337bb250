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

type SchemeRequest struct {
	Name              string  `json:"name" validate:"required"`
	TotalAmount       float64 `json:"total_amount" validate:"required"`
	InstallmentAmount float64 `json:"installment_amount" validate:"required"`
	DurationMonths    int     `json:"duration_months" validate:"required"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
}

func (req *SchemeRequest) validateAmounts() string {
	if req.TotalAmount <= 0 || req.InstallmentAmount <= 0 {
		return "Nominal arisan harus lebih dari nol"
	}
	if req.DurationMonths < 1 {
		return "Durasi arisan minimal satu bulan"
	}
	if req.Status != "" && req.Status != models.SchemeActive && req.Status != models.SchemeInactive {
		return "Status arisan tidak valid"
	}
	return ""
}

// ListSchemes returns every scheme regardless of status, with a subscriber
// count per scheme for the back-office table.
func ListSchemes(w http.ResponseWriter, r *http.Request) {
	var schemeRows []models.Scheme
	if err := database.DB.Order("created_at DESC").Find(&schemeRows).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	type schemeCount struct {
		SchemeID uint
		Total    int64
	}
	var counts []schemeCount
	database.DB.Model(&models.InstallmentRecord{}).
		Select("scheme_id, COUNT(DISTINCT user_id) AS total").
		Where("month_index = 0 AND status = ?", models.InstallmentPaid).
		Group("scheme_id").
		Scan(&counts)
	byScheme := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byScheme[c.SchemeID] = c.Total
	}

	items := make([]map[string]interface{}, 0, len(schemeRows))
	for _, s := range schemeRows {
		items = append(items, map[string]interface{}{
			"scheme":      s,
			"subscribers": byScheme[s.ID],
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar arisan berhasil dimuat",
		Data:    items,
	})
}

// CreateScheme registers a new arisan plan.
func CreateScheme(w http.ResponseWriter, r *http.Request) {
	var req SchemeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if msg := req.validateAmounts(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	scheme := models.Scheme{
		Name:              strings.TrimSpace(req.Name),
		TotalAmount:       req.TotalAmount,
		InstallmentAmount: req.InstallmentAmount,
		DurationMonths:    req.DurationMonths,
		Description:       req.Description,
		Status:            models.SchemeActive,
	}
	if req.Status != "" {
		scheme.Status = req.Status
	}
	if err := database.DB.Create(&scheme).Error; err != nil {
		log.Printf("[admin-scheme] create: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Arisan berhasil dibuat",
		Data:    scheme,
	})
}

// UpdateScheme edits a plan. Once any member holds installments against the
// scheme the financial terms are frozen; only name, description and status
// may still change.
func UpdateScheme(w http.ResponseWriter, r *http.Request) {
	schemeID, ok := pathUint(r, "scheme_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID arisan tidak valid")
		return
	}
	var req SchemeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if msg := req.validateAmounts(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	var scheme models.Scheme
	if err := database.DB.First(&scheme, schemeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Arisan tidak ditemukan")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	termsChanged := req.TotalAmount != scheme.TotalAmount ||
		req.InstallmentAmount != scheme.InstallmentAmount ||
		req.DurationMonths != scheme.DurationMonths
	if termsChanged && schemeHasInstallments(schemeID) {
		utils.WriteError(w, http.StatusConflict, "Nominal dan durasi tidak dapat diubah karena arisan sudah memiliki peserta")
		return
	}

	scheme.Name = strings.TrimSpace(req.Name)
	scheme.TotalAmount = req.TotalAmount
	scheme.InstallmentAmount = req.InstallmentAmount
	scheme.DurationMonths = req.DurationMonths
	scheme.Description = req.Description
	if req.Status != "" {
		scheme.Status = req.Status
	}
	if err := database.DB.Save(&scheme).Error; err != nil {
		log.Printf("[admin-scheme] update %d: %v", schemeID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Arisan berhasil diperbarui",
		Data:    scheme,
	})
}

// DeleteScheme removes a plan that never gained a participant. Schemes with
// installment history must be set Inactive instead so the ledger stays
// consistent.
func DeleteScheme(w http.ResponseWriter, r *http.Request) {
	schemeID, ok := pathUint(r, "scheme_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID arisan tidak valid")
		return
	}
	if schemeHasInstallments(schemeID) {
		utils.WriteError(w, http.StatusConflict, "Arisan dengan riwayat setoran tidak dapat dihapus, nonaktifkan saja")
		return
	}

	res := database.DB.Delete(&models.Scheme{}, schemeID)
	if res.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Arisan tidak ditemukan")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Arisan berhasil dihapus"})
}

// UploadSchemeImage replaces the scheme's promo image in object storage.
func UploadSchemeImage(w http.ResponseWriter, r *http.Request) {
	schemeID, ok := pathUint(r, "scheme_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID arisan tidak valid")
		return
	}
	var scheme models.Scheme
	if err := database.DB.First(&scheme, schemeID).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Arisan tidak ditemukan")
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

	objectName := fmt.Sprintf("schemes/s%d_%d%s", schemeID, time.Now().Unix(), ext)
	if err := utils.UploadToS3(objectName, file); err != nil {
		log.Printf("[admin-scheme] upload image for scheme %d: %v", schemeID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Gagal mengunggah gambar")
		return
	}
	if scheme.Image != nil && *scheme.Image != "" {
		_ = utils.DeleteFromS3(*scheme.Image)
	}
	if err := database.DB.Model(&scheme).Update("image", objectName).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	url, err := utils.GenerateSignedURL(objectName, 3600)
	if err != nil {
		url = ""
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Gambar arisan berhasil diperbarui",
		Data:    map[string]interface{}{"image": objectName, "url": url},
	})
}

func schemeHasInstallments(schemeID uint) bool {
	var count int64
	database.DB.Model(&models.InstallmentRecord{}).
		Where("scheme_id = ?", schemeID).
		Count(&count)
	return count > 0
}
