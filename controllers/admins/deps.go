package admins

import (
	"sync"

	"project/chit"
	"project/database"
	"project/notify"
)

var (
	wireOnce    sync.Once
	chitEngine  *chit.Engine
	chitLedger  chit.Ledger
	chitSchemes chit.SchemeStore
)

func wire() {
	wireOnce.Do(func() {
		store := notify.NewStore(database.DB)
		chitLedger = chit.NewLedger(database.DB)
		chitSchemes = chit.NewSchemeStore(database.DB)
		chitEngine = chit.NewEngine(chitLedger, chitSchemes, store)
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
