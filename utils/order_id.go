package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var mu sync.Mutex
var seededRand *rand.Rand

func init() {
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerateOrderID builds a reference like ARN-123456789<userID> used on
// installment rows and transaction journal entries.
func GenerateOrderID(userID uint) string {
	mu.Lock()
	defer mu.Unlock()

	nanoPart := time.Now().UnixNano() % 1000000
	randPart := seededRand.Intn(900) + 100

	return fmt.Sprintf("ARN-%06d%03d%d", nanoPart, randPart, userID)
}
