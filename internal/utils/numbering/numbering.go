package numbering

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// EntryNumber formats a journal entry number from its year and the per-year
// sequence value, e.g. "JE-2025-00042".
func EntryNumber(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%05d", year, seq)
}

// TransactionNumber builds a partner transaction number of the form
// TXN-{yyyymmddHHMMSS}-{8 random hex chars}. The random suffix keeps rapid
// same-second saves from colliding; the database unique constraint is the
// final arbiter.
func TransactionNumber(now time.Time) (string, error) {
	suffix, err := randomHex(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102150405"), suffix), nil
}

// randomHex returns n random bytes hex encoded (2n characters).
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
