package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account and determines its normal balance side.
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

// IsDebitNormal reports whether the account type increases on the debit side.
// Asset, expense and purchases accounts are debit-normal; liability, equity,
// revenue and sales accounts are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	switch t {
	case Asset, Expense, Purchases:
		return true
	default:
		return false
	}
}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, Purchases, Sales:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. The code is the natural key;
// hierarchy is implied by shared numeric code prefixes (a customer account
// "105017" nests under the receivables parent "1050"). Nothing enforces the
// prefix convention structurally.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary key (UUID)
	Code        string          `json:"code"`      // Unique hierarchical code, e.g. "1010"
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	ParentCode  string          `json:"parentCode"` // Nullable; code of the parent node
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"` // Accounts with lines are deactivated, never deleted
	Balance     decimal.Decimal `json:"balance"`  // Cached; authoritative value is derived from journal lines
	AuditFields
}
