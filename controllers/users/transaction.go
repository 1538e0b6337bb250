package users

import (
	"log"
	"net/http"
	"strconv"

	"project/database"
	"project/models"
	"project/utils"

	"github.com/gorilla/mux"
)

// GetTransactionHistory lists the user's journal entries, newest first. The
// optional {type} path segment narrows to one transaction type ("chit" for
// installments).
func GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := database.DB.Where("user_id = ?", uid)
	if txType := mux.Vars(r)["type"]; txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&transactions).Error; err != nil {
		log.Printf("[transaction] history for user %d: %v", uid, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Riwayat transaksi berhasil dimuat",
		Data: map[string]interface{}{
			"transactions": transactions,
			"page":         page,
			"limit":        limit,
		},
	})
}
