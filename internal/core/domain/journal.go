package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single balanced double-entry record. It owns its lines;
// entry and lines are created and deleted together. The (ReferenceType,
// ReferenceID) pair points back to the originating business document and is
// unique for non-manual entries, which makes duplicate posting a database
// constraint violation rather than a caller-side race.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`     // Primary key (UUID)
	EntryNumber   string          `json:"entryNumber"` // "JE-{year}-{seq}", assigned at save when absent
	EntryDate     time.Time       `json:"entryDate"`
	ReferenceType ReferenceType   `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"` // FK-by-convention to the source document; empty for manual entries
	Description   string          `json:"description"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // Equals the debit total (== credit total)
	Lines         []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one leg of a journal entry. Exactly one of Debit/Credit is
// nonzero and positive.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary key (UUID)
	EntryID     string          `json:"entryID"` // FK -> JournalEntry
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}

// IsDebit reports whether the line is a debit leg.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the magnitude of the line regardless of side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
