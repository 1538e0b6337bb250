package admins

import (
	"net/http"
	"time"

	"project/database"
	"project/models"
	"project/utils"
)

// GetDashboardStats aggregates the numbers shown on the back-office landing
// page: member counts, enrollment pipeline and collected installments.
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalUsers, activeSchemes int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.Scheme{}).Where("status = ?", models.SchemeActive).Count(&activeSchemes)

	var pendingRequests, activeEnrollments int64
	db.Model(&models.InstallmentRecord{}).
		Where("month_index = 0 AND status = ?", models.InstallmentPending).
		Count(&pendingRequests)
	db.Model(&models.InstallmentRecord{}).
		Where("month_index = 0 AND status = ?", models.InstallmentPaid).
		Count(&activeEnrollments)

	var totalCollected, collectedThisMonth float64
	db.Model(&models.InstallmentRecord{}).
		Where("status = ?", models.InstallmentPaid).
		Select("COALESCE(SUM(amount),0)").Scan(&totalCollected)
	monthStart := time.Now().AddDate(0, 0, -30)
	db.Model(&models.InstallmentRecord{}).
		Where("status = ? AND payment_date >= ?", models.InstallmentPaid, monthStart).
		Select("COALESCE(SUM(amount),0)").Scan(&collectedThisMonth)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Statistik dashboard berhasil dimuat",
		Data: map[string]interface{}{
			"total_users":        totalUsers,
			"active_schemes":     activeSchemes,
			"pending_requests":   pendingRequests,
			"active_enrollments": activeEnrollments,
			"total_collected":    totalCollected,
			"collected_last_30d": collectedThisMonth,
		},
	})
}
