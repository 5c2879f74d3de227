package services

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/qaidhq/qaid_ledger/internal/dto"
)

// JournalReaderSvc defines read operations over the journal
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByReference retrieves the entries posted for a reference pair.
	FindEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListLinesByAccount retrieves a page of one account's lines.
	ListLinesByAccount(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// JournalWriterSvc defines the posting primitives. CreateManualEntry is the
// only way callers outside the posting service create entries; the typed
// document constructors below are the only way documents are booked.
type JournalWriterSvc interface {
	// CreateManualEntry validates and persists a hand-written entry.
	CreateManualEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntriesByReference removes every entry for a reference pair.
	// Idempotent; returns the number of entries removed.
	DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error)

	// DeleteEntry removes one manual entry by ID. Document-driven entries
	// fail with apperrors.ErrConflict; they are removed by unposting their
	// document, which also unwinds the partner ledger and stock movements.
	DeleteEntry(ctx context.Context, entryID string) error
}

// DocumentEntryConstructorSvc builds the balanced entry for each business
// document kind. One method per kind keeps the set closed: adding a document
// type means adding a payload struct and a constructor, not a new string tag.
type DocumentEntryConstructorSvc interface {
	CreateSalesInvoiceEntry(ctx context.Context, inv domain.SalesInvoice, userID string) (*domain.JournalEntry, error)
	CreatePurchaseInvoiceEntry(ctx context.Context, inv domain.PurchaseInvoice, userID string) (*domain.JournalEntry, error)
	CreateSalesReturnEntry(ctx context.Context, ret domain.SalesReturn, userID string) (*domain.JournalEntry, error)
	CreatePurchaseReturnEntry(ctx context.Context, ret domain.PurchaseReturn, userID string) (*domain.JournalEntry, error)
	CreateReceiptVoucherEntry(ctx context.Context, v domain.Voucher, userID string) (*domain.JournalEntry, error)
	CreatePaymentVoucherEntry(ctx context.Context, v domain.Voucher, userID string) (*domain.JournalEntry, error)
	CreateBankTransferEntry(ctx context.Context, t domain.BankTransfer, userID string) (*domain.JournalEntry, error)
	CreateCheckBouncedEntry(ctx context.Context, c domain.CheckEvent, userID string) (*domain.JournalEntry, error)
	CreateCheckEarlyCollectionEntry(ctx context.Context, c domain.CheckEvent, userID string) (*domain.JournalEntry, error)
	CreateRevenueEntry(ctx context.Context, e domain.RevenueEntry, userID string) (*domain.JournalEntry, error)
	CreateExpenseEntry(ctx context.Context, e domain.ExpenseEntry, userID string) (*domain.JournalEntry, error)
	CreateDebitNoteEntry(ctx context.Context, n domain.Note, userID string) (*domain.JournalEntry, error)
	CreateCreditNoteEntry(ctx context.Context, n domain.Note, userID string) (*domain.JournalEntry, error)
	CreateOpeningBalanceEntry(ctx context.Context, ob domain.OpeningBalance, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	DocumentEntryConstructorSvc
}
