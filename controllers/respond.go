package controllers

import (
	"errors"
	"log"
	"net/http"

	"project/chit"
	"project/utils"
)

// RespondChitError translates engine errors into the API envelope. Returns
// false when err is nil so handlers can use it as a guard.
func RespondChitError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, chit.ErrSchemeNotFound):
		utils.WriteError(w, http.StatusNotFound, "Arisan tidak ditemukan")
	case errors.Is(err, chit.ErrAlreadyEnrolled):
		utils.WriteError(w, http.StatusConflict, "Anda sudah terdaftar pada arisan ini")
	case errors.Is(err, chit.ErrEnrollmentNotFound):
		utils.WriteError(w, http.StatusNotFound, "Pengajuan arisan tidak ditemukan")
	case errors.Is(err, chit.ErrNotActive):
		utils.WriteError(w, http.StatusUnprocessableEntity, "Keikutsertaan arisan belum aktif")
	case errors.Is(err, chit.ErrDuplicateInstallment):
		utils.WriteError(w, http.StatusConflict, "Setoran untuk bulan tersebut sudah tercatat")
	case errors.Is(err, chit.ErrSchemeCompleted):
		utils.WriteError(w, http.StatusUnprocessableEntity, "Semua setoran arisan sudah lunas")
	case errors.Is(err, chit.ErrInvalidMonth):
		utils.WriteError(w, http.StatusBadRequest, "Bulan setoran tidak valid")
	default:
		log.Printf("[chit] unexpected error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
	}
	return true
}
