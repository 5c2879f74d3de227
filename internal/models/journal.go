package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row. The partial unique index on
// (reference_type, reference_id) excludes manual entries.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	EntryNumber   string          `db:"entry_number"`
	EntryDate     time.Time       `db:"entry_date"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   string          `db:"reference_id"` // Nullable
	Description   string          `db:"description"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AuditFields
}

// JournalLine is the journal_lines table row; cascade-deleted with its entry.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
