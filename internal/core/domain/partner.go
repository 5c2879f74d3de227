package domain

import "github.com/shopspring/decimal"

// PartnerKind distinguishes customers from suppliers. A partner can act as
// both (the same business buys and sells).
type PartnerKind string

const (
	PartnerCustomer PartnerKind = "CUSTOMER"
	PartnerSupplier PartnerKind = "SUPPLIER"
	PartnerBoth     PartnerKind = "BOTH"
)

// IsValid reports whether k is a known partner kind.
func (k PartnerKind) IsValid() bool {
	switch k {
	case PartnerCustomer, PartnerSupplier, PartnerBoth:
		return true
	}
	return false
}

// Partner is a customer or supplier with its own running-balance ledger.
// Balance is the cached debit-minus-credit sum over the partner's
// transactions; it is rewritten from the full history inside the same
// database transaction as every insert, so it cannot drift between writes.
type Partner struct {
	PartnerID string          `json:"partnerID"` // Primary key (UUID)
	Name      string          `json:"name"`
	Kind      PartnerKind     `json:"kind"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	IsActive  bool            `json:"isActive"`
	Balance   decimal.Decimal `json:"balance"` // Positive: partner owes us; negative: we owe partner
	AuditFields
}
