package services

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/qaidhq/qaid_ledger/internal/dto"
)

// PartnerReaderSvc defines read operations for customer/supplier data
type PartnerReaderSvc interface {
	// GetPartnerByID retrieves a partner by its identifier.
	GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners retrieves a paginated list of partners.
	ListPartners(ctx context.Context, params dto.ListPartnersParams) ([]domain.Partner, error)
}

// PartnerWriterSvc defines write operations for customer/supplier data
type PartnerWriterSvc interface {
	// CreatePartner persists a new partner.
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error)

	// UpdatePartner updates a partner's mutable details.
	UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error)

	// DeactivatePartner marks a partner as inactive.
	DeactivatePartner(ctx context.Context, partnerID string, userID string) error
}

// PartnerLedgerSvc maintains the per-partner running-balance ledger.
type PartnerLedgerSvc interface {
	// CreateTransaction records a ledger row and refreshes the partner's
	// cached balance atomically.
	CreateTransaction(ctx context.Context, partnerID string, req dto.CreatePartnerTransactionRequest, userID string) (*domain.PartnerTransaction, error)

	// ListTransactions retrieves a page of the partner's ledger.
	ListTransactions(ctx context.Context, partnerID string, params dto.ListPartnerTransactionsParams) (*dto.ListPartnerTransactionsResponse, error)

	// DeleteTransactionsByReference removes the ledger rows for a reference
	// pair, refreshing affected balances. Idempotent.
	DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error)

	// RecalculateBalance replays the partner's full history, rewriting
	// per-row snapshots and the cached balance.
	RecalculateBalance(ctx context.Context, partnerID string, userID string) (*domain.Partner, error)
}

// PartnerSvcFacade combines all partner-related service interfaces
type PartnerSvcFacade interface {
	PartnerReaderSvc
	PartnerWriterSvc
	PartnerLedgerSvc
}
