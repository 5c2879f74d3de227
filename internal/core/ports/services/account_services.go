package services

import (
	"context"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its natural key.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetOrCreateAccount materializes a system account by code on first
	// reference. Idempotent; a code collision returns the existing account.
	GetOrCreateAccount(ctx context.Context, code string, name string, accountType domain.AccountType, parentCode string, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts are never
	// hard-deleted once they carry journal lines.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountCalculatorSvc defines balance derivation operations
type AccountCalculatorSvc interface {
	// GetBalance derives the account's signed balance from its journal
	// lines, optionally bounded by entry date. No side effects.
	GetBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// RefreshAllBalances recomputes every active account's cached balance
	// from its lines. Returns the number of accounts updated.
	RefreshAllBalances(ctx context.Context, userID string) (int64, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
