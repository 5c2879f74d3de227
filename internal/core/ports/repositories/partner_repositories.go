package repositories

import (
	"context"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
)

// PartnerReader defines read operations for customer/supplier data
type PartnerReader interface {
	// FindPartnerByID retrieves a partner by its identifier.
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners retrieves a paginated list of partners, optionally filtered by kind.
	ListPartners(ctx context.Context, kind *domain.PartnerKind, limit int, offset int) ([]domain.Partner, error)
}

// PartnerWriter defines write operations for customer/supplier data
type PartnerWriter interface {
	// SavePartner persists a new partner.
	SavePartner(ctx context.Context, partner domain.Partner) error

	// UpdatePartner updates a partner's mutable details.
	UpdatePartner(ctx context.Context, partner domain.Partner) error

	// DeactivatePartner marks a partner as inactive.
	DeactivatePartner(ctx context.Context, partnerID string, userID string, now time.Time) error
}

// PartnerLedgerRepository maintains the per-partner running-balance ledger.
// Every write locks the partner row so concurrent inserts for the same
// partner serialize, and rewrites the partner's cached balance from the full
// transaction history inside the same database transaction.
type PartnerLedgerRepository interface {
	// SaveTransaction inserts a ledger row, computing its balance_after from
	// the (date, created_at)-ordered history, and refreshes the partner's
	// cached balance. Returns the stored transaction.
	SaveTransaction(ctx context.Context, txn domain.PartnerTransaction) (*domain.PartnerTransaction, error)

	// FindTransactionByID retrieves a single ledger row.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.PartnerTransaction, error)

	// ListTransactionsByPartner retrieves the partner's ledger ordered by
	// (date, created_at) ascending with token pagination.
	ListTransactionsByPartner(ctx context.Context, partnerID string, limit int, nextToken *string) ([]domain.PartnerTransaction, *string, error)

	// DeleteTransactionsByReference removes ledger rows for a reference pair
	// and refreshes the affected partners' cached balances. Returns the
	// number of rows deleted.
	DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error)

	// RecalculatePartnerBalance replays the partner's full history, rewriting
	// every row's balance_after and the cached partner balance. Returns the
	// recomputed balance.
	RecalculatePartnerBalance(ctx context.Context, partnerID string, userID string, now time.Time) (*domain.Partner, error)
}

// PartnerRepositoryFacade combines all partner-related repository interfaces
type PartnerRepositoryFacade interface {
	PartnerReader
	PartnerWriter
}
