package users

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"

	"project/utils"
)

// RunReminderSweep executes one reminder sweep using the shared wiring. The
// in-process scheduler in main calls this on its own tick.
func RunReminderSweep() (int, error) {
	return reminders().Sweep()
}

// ChitReminderCronHandler runs the reminder sweep on demand. Protected by the
// X-CRON-KEY header so an external scheduler can drive it alongside the
// in-process cron.
func ChitReminderCronHandler(w http.ResponseWriter, r *http.Request) {
	cronKey := os.Getenv("CRON_KEY")
	if cronKey == "" {
		utils.WriteError(w, http.StatusServiceUnavailable, "Cron belum dikonfigurasi")
		return
	}
	provided := r.Header.Get("X-CRON-KEY")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(cronKey)) != 1 {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dispatched, err := reminders().Sweep()
	if err != nil {
		log.Printf("[cron] chit reminder sweep: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Sweep pengingat arisan selesai",
		Data:    map[string]interface{}{"reminders_sent": dispatched},
	})
}
