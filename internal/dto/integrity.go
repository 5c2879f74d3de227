package dto

import "github.com/shopspring/decimal"

// UnbalancedEntryReport is one journal entry whose lines do not balance.
type UnbalancedEntryReport struct {
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// ReferencePairReport identifies a business document reference.
type ReferencePairReport struct {
	ReferenceType string `json:"referenceType"`
	ReferenceID   string `json:"referenceID"`
}

// PartnerDriftReport is one partner whose cached balance diverges from its
// replayed ledger.
type PartnerDriftReport struct {
	PartnerID      string          `json:"partnerID"`
	CachedBalance  decimal.Decimal `json:"cachedBalance"`
	DerivedBalance decimal.Decimal `json:"derivedBalance"`
}

// IntegrityReport is the result of a consistency sweep across the journal
// and the partner ledger.
type IntegrityReport struct {
	Clean               bool                    `json:"clean"`
	UnbalancedEntries   []UnbalancedEntryReport `json:"unbalancedEntries"`
	DuplicateReferences []ReferencePairReport   `json:"duplicateReferences"`
	MissingEntries      []ReferencePairReport   `json:"missingEntries"`
	DriftedPartners     []PartnerDriftReport    `json:"driftedPartners"`
}

// RepairResult reports what an integrity repair pass fixed.
type RepairResult struct {
	AccountsRefreshed    int64 `json:"accountsRefreshed"`
	PartnersRecalculated int   `json:"partnersRecalculated"`
}
