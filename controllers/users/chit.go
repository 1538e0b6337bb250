package users

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"project/controllers"
	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"

	"project/chit"

	"github.com/gorilla/mux"
)

type JoinChitRequest struct {
	SchemeID     uint   `json:"scheme_id"`
	Name         string `json:"name" validate:"nameok"`
	MobileNumber string `json:"mobile_number" validate:"phone8"`
	Address      string `json:"address"`
}

// JoinChitHandler files a join request for a scheme. Contact fields default
// to the user's profile so the form can stay empty in the app.
func JoinChitHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req JoinChitRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.SchemeID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "scheme_id wajib diisi")
		return
	}

	var user models.User
	if err := database.DB.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	details := chit.JoinDetails{
		Name:         strings.TrimSpace(req.Name),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		Address:      strings.TrimSpace(req.Address),
	}
	if details.Name == "" {
		details.Name = user.Name
	}
	if details.MobileNumber == "" {
		details.MobileNumber = user.Number
	}
	if details.Address == "" {
		details.Address = utils.GetStringValue(user.Address)
	}

	record, err := engine().RequestJoin(uid, req.SchemeID, details)
	if controllers.RespondChitError(w, err) {
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Pengajuan arisan terkirim, menunggu persetujuan admin",
		Data:    record,
	})
}

type PayChitRequest struct {
	SchemeID   uint     `json:"scheme_id"`
	MonthIndex int      `json:"month_index"`
	Amount     *float64 `json:"amount,omitempty"`
}

// PayChitHandler records the installment the subscriber chose to pay and
// journals it as a chit transaction. The month index comes from the caller,
// so paying ahead of schedule is possible; the amount defaults to the scheme
// price.
func PayChitHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req PayChitRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.SchemeID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "scheme_id wajib diisi")
		return
	}

	scheme, err := schemes().Scheme(req.SchemeID)
	if controllers.RespondChitError(w, err) {
		return
	}
	amount := scheme.InstallmentAmount
	if req.Amount != nil {
		if *req.Amount <= 0 {
			utils.WriteError(w, http.StatusBadRequest, "Nominal setoran tidak valid")
			return
		}
		amount = *req.Amount
	}

	record, err := engine().PayInstallment(uid, req.SchemeID, req.MonthIndex, amount)
	if controllers.RespondChitError(w, err) {
		return
	}

	journalInstallment(record)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Setoran arisan berhasil dicatat",
		Data: map[string]interface{}{
			"installment": record,
			"progress":    pairProgress(uid, req.SchemeID),
		},
	})
}

// MyChitsHandler lists every scheme the user participates in with derived
// progress per scheme.
func MyChitsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	records, err := ledger().ListByUser(uid)
	if err != nil {
		log.Printf("[chit] list by user %d: %v", uid, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	bySchemeID := make(map[uint][]models.InstallmentRecord)
	var order []uint
	for _, rec := range records {
		if _, seen := bySchemeID[rec.SchemeID]; !seen {
			order = append(order, rec.SchemeID)
		}
		bySchemeID[rec.SchemeID] = append(bySchemeID[rec.SchemeID], rec)
	}

	now := time.Now()
	items := make([]map[string]interface{}, 0, len(order))
	for _, schemeID := range order {
		pair := bySchemeID[schemeID]
		scheme := pair[0].Scheme
		duration := 0
		if scheme != nil {
			duration = scheme.DurationMonths
		}
		items = append(items, map[string]interface{}{
			"scheme":   scheme,
			"progress": chit.BuildProgress(pair, duration, now),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daftar arisan Anda berhasil dimuat",
		Data:    items,
	})
}

// ChitDetailHandler returns the full installment history of one enrollment.
func ChitDetailHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	schemeID, err := strconv.ParseUint(mux.Vars(r)["scheme_id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "ID arisan tidak valid")
		return
	}

	scheme, err := schemes().Scheme(uint(schemeID))
	if controllers.RespondChitError(w, err) {
		return
	}
	records, err := ledger().ListForPair(uid, uint(schemeID))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(records) == 0 {
		utils.WriteError(w, http.StatusNotFound, "Anda belum terdaftar pada arisan ini")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Detail arisan berhasil dimuat",
		Data: map[string]interface{}{
			"scheme":       scheme,
			"progress":     chit.BuildProgress(records, scheme.DurationMonths, time.Now()),
			"installments": records,
		},
	})
}

func pairProgress(userID, schemeID uint) *chit.Progress {
	scheme, err := schemes().Scheme(schemeID)
	if err != nil {
		return nil
	}
	records, err := ledger().ListForPair(userID, schemeID)
	if err != nil {
		return nil
	}
	p := chit.BuildProgress(records, scheme.DurationMonths, time.Now())
	return &p
}

// journalInstallment writes the settlement row for a recorded installment.
// Journal failures are logged, not surfaced: the ledger row is the source of
// truth.
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
		log.Printf("[chit] journal entry for order %s: %v", rec.OrderID, err)
	}
}
