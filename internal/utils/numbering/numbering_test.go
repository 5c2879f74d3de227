package numbering_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/utils/numbering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-2025-00001", numbering.EntryNumber(2025, 1))
	assert.Equal(t, "JE-2025-00042", numbering.EntryNumber(2025, 42))
	// Sequence values past five digits are not truncated.
	assert.Equal(t, "JE-2026-123456", numbering.EntryNumber(2026, 123456))
}

func TestTransactionNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	num, err := numbering.TransactionNumber(now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TXN-20250314150926-[0-9a-f]{8}$`), num)

	// Two numbers generated for the same instant differ in the suffix.
	other, err := numbering.TransactionNumber(now)
	require.NoError(t, err)
	assert.NotEqual(t, num, other)
}
