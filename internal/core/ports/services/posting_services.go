package services

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/qaidhq/qaid_ledger/internal/dto"
)

// PostingSvcFacade is the single choke point turning business documents into
// their ledger side effects: the journal entry, the partner ledger row, the
// inventory movements, and an audit trail row. Posting is all-or-nothing —
// when any required write fails, previously created pieces are removed and
// the error is returned to the caller. Booking never silently lags a
// document.
type PostingSvcFacade interface {
	PostSalesInvoice(ctx context.Context, inv domain.SalesInvoice, userID string) (*dto.PostingResult, error)
	PostPurchaseInvoice(ctx context.Context, inv domain.PurchaseInvoice, userID string) (*dto.PostingResult, error)
	PostSalesReturn(ctx context.Context, ret domain.SalesReturn, userID string) (*dto.PostingResult, error)
	PostPurchaseReturn(ctx context.Context, ret domain.PurchaseReturn, userID string) (*dto.PostingResult, error)
	PostReceiptVoucher(ctx context.Context, v domain.Voucher, userID string) (*dto.PostingResult, error)
	PostPaymentVoucher(ctx context.Context, v domain.Voucher, userID string) (*dto.PostingResult, error)
	PostBankTransfer(ctx context.Context, t domain.BankTransfer, userID string) (*dto.PostingResult, error)
	PostCheckBounced(ctx context.Context, c domain.CheckEvent, userID string) (*dto.PostingResult, error)
	PostCheckEarlyCollection(ctx context.Context, c domain.CheckEvent, userID string) (*dto.PostingResult, error)
	PostRevenueEntry(ctx context.Context, e domain.RevenueEntry, userID string) (*dto.PostingResult, error)
	PostExpenseEntry(ctx context.Context, e domain.ExpenseEntry, userID string) (*dto.PostingResult, error)
	PostDebitNote(ctx context.Context, n domain.Note, userID string) (*dto.PostingResult, error)
	PostCreditNote(ctx context.Context, n domain.Note, userID string) (*dto.PostingResult, error)
	PostOpeningBalance(ctx context.Context, ob domain.OpeningBalance, userID string) (*dto.PostingResult, error)

	// Unpost removes everything posted for a reference pair. Idempotent.
	Unpost(ctx context.Context, refType domain.ReferenceType, refID string, userID string) (*dto.UnpostResult, error)
}
