package repositories

import (
	"context"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its surrogate identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its natural key.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally filtered to active ones.
	ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// GetOrCreateAccount atomically looks up the account with the given code,
	// inserting the candidate when absent. A code collision returns the
	// existing row, never an error.
	GetOrCreateAccount(ctx context.Context, candidate domain.Account) (*domain.Account, error)

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountBalanceCalculator derives balances from journal lines.
type AccountBalanceCalculator interface {
	// SumAccountLines returns the raw debit and credit totals over the
	// account's journal lines, bounded by entry date when asOf is non-nil.
	SumAccountLines(ctx context.Context, accountID string, asOf *time.Time) (debitTotal decimal.Decimal, creditTotal decimal.Decimal, err error)

	// RefreshAllBalances recomputes and persists the cached balance of every
	// active account from its journal lines. Returns the number of accounts
	// updated.
	RefreshAllBalances(ctx context.Context, userID string, now time.Time) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceCalculator
}
