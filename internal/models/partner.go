package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner is the partners (customer/supplier) table row.
type Partner struct {
	PartnerID string          `db:"partner_id"`
	Name      string          `db:"name"`
	Kind      string          `db:"kind"`
	Phone     string          `db:"phone"`
	Email     string          `db:"email"`
	IsActive  bool            `db:"is_active"`
	Balance   decimal.Decimal `db:"balance"`
	AuditFields
}

// PartnerTransaction is the partner_transactions table row.
type PartnerTransaction struct {
	TransactionID     string          `db:"transaction_id"`
	TransactionNumber string          `db:"transaction_number"`
	Date              time.Time       `db:"date"`
	PartnerID         string          `db:"partner_id"`
	TransactionType   string          `db:"transaction_type"`
	Direction         string          `db:"direction"`
	Amount            decimal.Decimal `db:"amount"`
	ReferenceType     string          `db:"reference_type"` // Nullable
	ReferenceID       string          `db:"reference_id"`   // Nullable
	Description       string          `db:"description"`
	BalanceAfter      decimal.Decimal `db:"balance_after"`
	AuditFields
}
