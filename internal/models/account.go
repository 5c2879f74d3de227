package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for database storage.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	Purchases AccountType = "PURCHASES"
	Sales     AccountType = "SALES"
)

// Account is the accounts table row. Code is the natural key; parent_code is
// nullable and carries the prefix convention only informationally.
type Account struct {
	AccountID   string          `db:"account_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	ParentCode  string          `db:"parent_code"` // Nullable
	Description string          `db:"description"`
	IsActive    bool            `db:"is_active"`
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}
