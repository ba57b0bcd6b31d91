package checkout

import (
	"crypto/rand"
	"time"
)

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderNumber returns SS-YYYYMMDD-XXXXXX.
func NewOrderNumber(now time.Time) string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = numberAlphabet[int(b[i])%len(numberAlphabet)]
	}
	return "SS-" + now.UTC().Format("20060102") + "-" + string(b)
}
