package repositories

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReferencePair identifies a business document by its reference tag.
type ReferencePair struct {
	ReferenceType domain.ReferenceType
	ReferenceID   string
}

// UnbalancedEntry describes a persisted journal entry whose debit and credit
// totals disagree. The database layer should make this impossible; the
// integrity sweep checks anyway.
type UnbalancedEntry struct {
	EntryID     string
	EntryNumber string
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// PartnerDrift describes a partner whose cached balance differs from the
// replayed sum of its ledger.
type PartnerDrift struct {
	PartnerID      string
	CachedBalance  decimal.Decimal
	DerivedBalance decimal.Decimal
}

// IntegrityRepository runs the cross-ledger consistency queries.
type IntegrityRepository interface {
	// FindUnbalancedEntries returns entries whose line totals do not balance.
	FindUnbalancedEntries(ctx context.Context) ([]UnbalancedEntry, error)

	// FindDuplicateReferences returns reference pairs with more than one
	// journal entry (legacy data predating the unique constraint).
	FindDuplicateReferences(ctx context.Context) ([]ReferencePair, error)

	// FindMissingEntries returns reference pairs that have partner ledger
	// rows but no journal entry.
	FindMissingEntries(ctx context.Context) ([]ReferencePair, error)

	// FindDriftedPartners returns partners whose cached balance diverges from
	// the replayed ledger sum.
	FindDriftedPartners(ctx context.Context) ([]PartnerDrift, error)
}
