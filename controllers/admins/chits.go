package admins

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"project/chit"
	"project/controllers"
	"project/database"
	"project/models"
	"project/utils"

	"github.com/gorilla/mux"
)

func pathUint(r *http.Request, name string) (uint, bool) {
	v, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// GetPendingChits lists every join request awaiting approval, joined with
// user and scheme names for the review screen.
func GetPendingChits(w http.ResponseWriter, r *http.Request) {
	var pending []models.InstallmentRecord
	if err := database.DB.Preload("Scheme").
		Where("month_index = 0 AND status = ?", models.InstallmentPending).
		Order("created_at ASC").
		Find(&pending).Error; err != nil {
		log.Printf("[admin-chit] pending list: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	userIDs := make([]uint, 0, len(pending))
	for _, rec := range pending {
		userIDs = append(userIDs, rec.UserID)
	}
	names := userNames(userIDs)

	items := make([]map[string]interface{}, 0, len(pending))
	for _, rec := range pending {
		items = append(items, map[string]interface{}{
			"user_id":      rec.UserID,
			"user_name":    names[rec.UserID],
			"scheme":       rec.Scheme,
			"requested_at": rec.CreatedAt,
			"order_id":     rec.OrderID,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar pengajuan arisan berhasil dimuat",
		Data:    items,
	})
}

// GetSchemeParticipants returns every subscriber of a scheme with their
// derived progress.
func GetSchemeParticipants(w http.ResponseWriter, r *http.Request) {
	schemeID, ok := pathUint(r, "scheme_id")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "ID arisan tidak valid")
		return
	}
	scheme, err := schemes().Scheme(schemeID)
	if controllers.RespondChitError(w, err) {
		return
	}
	records, err := ledger().ListByScheme(schemeID)
	if err != nil {
		log.Printf("[admin-chit] participants of scheme %d: %v", schemeID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	participants := chit.SchemeParticipants(records, scheme.DurationMonths, time.Now())
	userIDs := make([]uint, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}
	names := userNames(userIDs)

	items := make([]map[string]interface{}, 0, len(participants))
	for _, p := range participants {
		items = append(items, map[string]interface{}{
			"user_id":   p.UserID,
			"user_name": names[p.UserID],
			"progress":  p.Progress,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar peserta arisan berhasil dimuat",
		Data: map[string]interface{}{
			"scheme":       scheme,
			"participants": items,
		},
	})
}

// ApproveChit accepts a pending join request. The approval moment anchors the
// member's 30-day payment cycle.
func ApproveChit(w http.ResponseWriter, r *http.Request) {
	schemeID, okS := pathUint(r, "scheme_id")
	userID, okU := pathUint(r, "user_id")
	if !okS || !okU {
		utils.WriteError(w, http.StatusBadRequest, "Parameter tidak valid")
		return
	}

	record, err := engine().Approve(userID, schemeID)
	if controllers.RespondChitError(w, err) {
		return
	}
	journalInstallment(record)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Pengajuan arisan disetujui",
		Data:    record,
	})
}

// RejectChit declines a pending join request; the user may apply again.
func RejectChit(w http.ResponseWriter, r *http.Request) {
	schemeID, okS := pathUint(r, "scheme_id")
	userID, okU := pathUint(r, "user_id")
	if !okS || !okU {
		utils.WriteError(w, http.StatusBadRequest, "Parameter tidak valid")
		return
	}

	if err := engine().Reject(userID, schemeID); controllers.RespondChitError(w, err) {
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Pengajuan arisan ditolak"})
}

// RecordChitPayment books the next sequential installment on behalf of a
// member, typically when payment arrived in cash or outside the app. The
// month index and amount are server-computed; only the subscriber path may
// pick a month.
func RecordChitPayment(w http.ResponseWriter, r *http.Request) {
	schemeID, okS := pathUint(r, "scheme_id")
	userID, okU := pathUint(r, "user_id")
	if !okS || !okU {
		utils.WriteError(w, http.StatusBadRequest, "Parameter tidak valid")
		return
	}

	record, err := engine().RecordUserPayment(userID, schemeID)
	if controllers.RespondChitError(w, err) {
		return
	}
	journalInstallment(record)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Setoran arisan berhasil dicatat",
		Data:    record,
	})
}

// GetUserChitHistory shows one member's full installment history for a
// scheme, used on the member detail screen.
func GetUserChitHistory(w http.ResponseWriter, r *http.Request) {
	schemeID, okS := pathUint(r, "scheme_id")
	userID, okU := pathUint(r, "user_id")
	if !okS || !okU {
		utils.WriteError(w, http.StatusBadRequest, "Parameter tidak valid")
		return
	}
	scheme, err := schemes().Scheme(schemeID)
	if controllers.RespondChitError(w, err) {
		return
	}
	records, err := ledger().ListForPair(userID, schemeID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Riwayat setoran berhasil dimuat",
		Data: map[string]interface{}{
			"scheme":       scheme,
			"progress":     chit.BuildProgress(records, scheme.DurationMonths, time.Now()),
			"installments": records,
		},
	})
}

func userNames(userIDs []uint) map[uint]string {
	names := make(map[uint]string, len(userIDs))
	if len(userIDs) == 0 {
		return names
	}
	var users []models.User
	if err := database.DB.Select("id, name").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		log.Printf("[admin-chit] load user names: %v", err)
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

// journalInstallment mirrors the user-side journaling for admin-recorded
// payments.
func journalInstallment(rec *models.InstallmentRecord) {
	msg := "Setoran arisan bulan ke-" + strconv.Itoa(rec.MonthIndex)
	txn := models.Transaction{
		UserID:          rec.UserID,
		Amount:          rec.Amount,
		OrderID:         rec.OrderID,
		TransactionFlow: "debit",
		TransactionType: "chit",
		Message:         &msg,
		Status:          "Success",
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		log.Printf("[admin-chit] journal entry for order %s: %v", rec.OrderID, err)
	}
}
