package users

import (
	"sync"

	"project/chit"
	"project/database"
	"project/notify"
)

// Lazily wired engine instances shared by the user handlers. Built on first
// use so database.Connect has run by then.
var (
	wireOnce      sync.Once
	chitEngine    *chit.Engine
	chitLedger    chit.Ledger
	chitSchemes   chit.SchemeStore
	chitReminders *chit.ReminderEngine
)

func wire() {
	wireOnce.Do(func() {
		store := notify.NewStore(database.DB)
		chitLedger = chit.NewLedger(database.DB)
		chitSchemes = chit.NewSchemeStore(database.DB)
		chitEngine = chit.NewEngine(chitLedger, chitSchemes, store)
		chitReminders = chit.NewReminderEngine(chitLedger, chitSchemes, store, store)
	})
}

func engine() *chit.Engine {
	wire()
	return chitEngine
}

func ledger() chit.Ledger {
	wire()
	return chitLedger
}

func schemes() chit.SchemeStore {
	wire()
	return chitSchemes
}

func reminders() *chit.ReminderEngine {
	wire()
	return chitReminders
}
