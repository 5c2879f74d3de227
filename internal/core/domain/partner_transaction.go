package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartnerTransactionType names the business event behind a partner ledger row.
type PartnerTransactionType string

const (
	PartnerTxnSalesInvoice    PartnerTransactionType = "sales_invoice"
	PartnerTxnPurchaseInvoice PartnerTransactionType = "purchase_invoice"
	PartnerTxnSalesReturn     PartnerTransactionType = "sales_return"
	PartnerTxnPurchaseReturn  PartnerTransactionType = "purchase_return"
	PartnerTxnPayment         PartnerTransactionType = "payment"
	PartnerTxnAdjustment      PartnerTransactionType = "adjustment"
)

// IsValid reports whether t is a known partner transaction type.
func (t PartnerTransactionType) IsValid() bool {
	switch t {
	case PartnerTxnSalesInvoice, PartnerTxnPurchaseInvoice, PartnerTxnSalesReturn,
		PartnerTxnPurchaseReturn, PartnerTxnPayment, PartnerTxnAdjustment:
		return true
	}
	return false
}

// Direction is the side of a partner ledger row. Debit increases the
// partner's balance, credit decreases it.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// PartnerTransaction is one row of the per-partner running-balance ledger.
// BalanceAfter snapshots the partner balance as of this row, computed by
// summing every transaction for the partner ordered by (date, created_at)
// up to and including this one. The ordering makes the snapshot correct
// even when rows are inserted out of date order.
type PartnerTransaction struct {
	TransactionID     string                 `json:"transactionID"`     // Primary key (UUID)
	TransactionNumber string                 `json:"transactionNumber"` // "TXN-{yyyymmddHHMMSS}-{8 hex}", assigned at save when absent
	Date              time.Time              `json:"date"`              // Defaults to today when omitted
	PartnerID         string                 `json:"partnerID"`
	TransactionType   PartnerTransactionType `json:"transactionType"`
	Direction         Direction              `json:"direction"`
	Amount            decimal.Decimal        `json:"amount"` // Always positive; sign comes from Direction
	ReferenceType     ReferenceType          `json:"referenceType,omitempty"`
	ReferenceID       string                 `json:"referenceID,omitempty"`
	Description       string                 `json:"description"`
	BalanceAfter      decimal.Decimal        `json:"balanceAfter"`
	AuditFields
}

// SignedAmount returns the amount with the direction's sign applied.
func (t PartnerTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionCredit {
		return t.Amount.Neg()
	}
	return t.Amount
}
