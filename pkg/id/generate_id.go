package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Used as the public identifier for borrowers, applications, loans and
// repayments.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ReceiptNumber formats an allocated sequence value as a printable receipt
// number. Receipt numbers must be monotonic, so the value comes from the
// sequence repository inside the payment transaction, never from NewID32.
func ReceiptNumber(seq uint64) string {
	return fmt.Sprintf("RCP-%08d", seq)
}
