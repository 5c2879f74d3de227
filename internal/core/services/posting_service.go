package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingService turns business documents into their ledger side effects:
// journal entry, partner ledger row, inventory movements and an audit trail
// row, in that order. Posting is atomic from the caller's point of view —
// when a later step fails, the earlier writes are compensated by reference
// and the error is returned. A document is either fully booked or not booked
// at all.
type PostingService struct {
	journalSvc    portssvc.JournalSvcFacade
	partnerSvc    portssvc.PartnerSvcFacade
	inventoryRepo portsrepo.InventoryMovementRepository
	auditRepo     portsrepo.AuditLogRepository
}

func NewPostingService(
	journalSvc portssvc.JournalSvcFacade,
	partnerSvc portssvc.PartnerSvcFacade,
	inventoryRepo portsrepo.InventoryMovementRepository,
	auditRepo portsrepo.AuditLogRepository,
) *PostingService {
	return &PostingService{
		journalSvc:    journalSvc,
		partnerSvc:    partnerSvc,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// partnerEffect describes the partner ledger row a document posting creates.
type partnerEffect struct {
	partnerID   string
	txnType     domain.PartnerTransactionType
	direction   domain.Direction
	amount      decimal.Decimal
	description string
}

// post runs the shared posting flow. buildEntry must create the journal
// entry for (refType, refID); the remaining effects hang off that reference
// pair so compensation and unposting can find them.
func (s *PostingService) post(
	ctx context.Context,
	refType domain.ReferenceType,
	refID string,
	buildEntry func() (*domain.JournalEntry, error),
	effect *partnerEffect,
	movements []domain.InventoryMovement,
	userID string,
) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := buildEntry()
	if err != nil {
		return nil, err
	}

	result := &dto.PostingResult{
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
	}

	if effect != nil {
		date := entry.EntryDate
		txn, err := s.partnerSvc.CreateTransaction(ctx, effect.partnerID, dto.CreatePartnerTransactionRequest{
			Date:            &date,
			TransactionType: effect.txnType,
			Direction:       effect.direction,
			Amount:          effect.amount,
			ReferenceType:   refType,
			ReferenceID:     refID,
			Description:     effect.description,
		}, userID)
		if err != nil {
			s.compensate(ctx, refType, refID, false)
			return nil, err
		}
		result.PartnerTransactionID = txn.TransactionID
	}

	if len(movements) > 0 {
		if err := s.inventoryRepo.SaveMovements(ctx, movements); err != nil {
			s.compensate(ctx, refType, refID, effect != nil)
			return nil, err
		}
		result.MovementsCreated = len(movements)
	}

	// Audit is best-effort: a failed trail write never unbooks a document.
	s.writeAudit(ctx, userID, "journal.post", refType, refID)

	logger.Info("Document posted", slog.String("reference_type", string(refType)),
		slog.String("reference_id", refID), slog.String("entry_number", entry.EntryNumber))
	return result, nil
}

// compensate backs out the writes of a partially posted document.
func (s *PostingService) compensate(ctx context.Context, refType domain.ReferenceType, refID string, partnerTouched bool) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if partnerTouched {
		if _, err := s.partnerSvc.DeleteTransactionsByReference(ctx, refType, refID); err != nil {
			logger.Error("Compensation failed to remove partner transactions", slog.String("error", err.Error()),
				slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
		}
	}
	if _, err := s.journalSvc.DeleteEntriesByReference(ctx, refType, refID); err != nil {
		logger.Error("Compensation failed to remove journal entries", slog.String("error", err.Error()),
			slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
	}
}

func (s *PostingService) writeAudit(ctx context.Context, userID, action string, refType domain.ReferenceType, refID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.auditRepo.SaveLog(ctx, domain.AuditLog{
		LogID:     uuid.NewString(),
		ActorID:   userID,
		Action:    action,
		Entity:    string(refType),
		EntityID:  refID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Warn("Failed to write audit log", slog.String("error", err.Error()),
			slog.String("action", action), slog.String("entity_id", refID))
	}
}

func stockMovements(items []domain.DocumentItem, direction domain.MovementDirection, date time.Time, refType domain.ReferenceType, refID string, userID string) []domain.InventoryMovement {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	movements := make([]domain.InventoryMovement, len(items))
	for i, item := range items {
		movements[i] = domain.InventoryMovement{
			MovementID:    uuid.NewString(),
			ProductID:     item.ProductID,
			Direction:     direction,
			Quantity:      item.Quantity,
			Date:          date,
			ReferenceType: refType,
			ReferenceID:   refID,
			AuditFields:   audit,
		}
	}
	return movements
}

func (s *PostingService) PostSalesInvoice(ctx context.Context, inv domain.SalesInvoice, userID string) (*dto.PostingResult, error) {
	var effect *partnerEffect
	if inv.PartnerID != "" && !inv.IsCash {
		effect = &partnerEffect{
			partnerID:   inv.PartnerID,
			txnType:     domain.PartnerTxnSalesInvoice,
			direction:   domain.DirectionDebit,
			amount:      inv.TotalAmount,
			description: "Sales invoice " + inv.InvoiceID,
		}
	}
	movements := stockMovements(inv.Items, domain.MovementOut, inv.Date, domain.RefSalesInvoice, inv.InvoiceID, userID)

	return s.post(ctx, domain.RefSalesInvoice, inv.InvoiceID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateSalesInvoiceEntry(ctx, inv, userID)
	}, effect, movements, userID)
}

func (s *PostingService) PostPurchaseInvoice(ctx context.Context, inv domain.PurchaseInvoice, userID string) (*dto.PostingResult, error) {
	var effect *partnerEffect
	if inv.PartnerID != "" && !inv.IsCash {
		effect = &partnerEffect{
			partnerID:   inv.PartnerID,
			txnType:     domain.PartnerTxnPurchaseInvoice,
			direction:   domain.DirectionCredit,
			amount:      inv.TotalAmount,
			description: "Purchase invoice " + inv.InvoiceID,
		}
	}
	movements := stockMovements(inv.Items, domain.MovementIn, inv.Date, domain.RefPurchaseInvoice, inv.InvoiceID, userID)

	return s.post(ctx, domain.RefPurchaseInvoice, inv.InvoiceID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreatePurchaseInvoiceEntry(ctx, inv, userID)
	}, effect, movements, userID)
}

func (s *PostingService) PostSalesReturn(ctx context.Context, ret domain.SalesReturn, userID string) (*dto.PostingResult, error) {
	var effect *partnerEffect
	if ret.PartnerID != "" && !ret.IsCash {
		effect = &partnerEffect{
			partnerID:   ret.PartnerID,
			txnType:     domain.PartnerTxnSalesReturn,
			direction:   domain.DirectionCredit,
			amount:      ret.TotalAmount,
			description: "Sales return " + ret.ReturnID,
		}
	}
	movements := stockMovements(ret.Items, domain.MovementIn, ret.Date, domain.RefSalesReturn, ret.ReturnID, userID)

	return s.post(ctx, domain.RefSalesReturn, ret.ReturnID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateSalesReturnEntry(ctx, ret, userID)
	}, effect, movements, userID)
}

func (s *PostingService) PostPurchaseReturn(ctx context.Context, ret domain.PurchaseReturn, userID string) (*dto.PostingResult, error) {
	var effect *partnerEffect
	if ret.PartnerID != "" && !ret.IsCash {
		effect = &partnerEffect{
			partnerID:   ret.PartnerID,
			txnType:     domain.PartnerTxnPurchaseReturn,
			direction:   domain.DirectionDebit,
			amount:      ret.TotalAmount,
			description: "Purchase return " + ret.ReturnID,
		}
	}
	movements := stockMovements(ret.Items, domain.MovementOut, ret.Date, domain.RefPurchaseReturn, ret.ReturnID, userID)

	return s.post(ctx, domain.RefPurchaseReturn, ret.ReturnID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreatePurchaseReturnEntry(ctx, ret, userID)
	}, effect, movements, userID)
}

func (s *PostingService) PostReceiptVoucher(ctx context.Context, v domain.Voucher, userID string) (*dto.PostingResult, error) {
	effect := &partnerEffect{
		partnerID:   v.PartnerID,
		txnType:     domain.PartnerTxnPayment,
		direction:   domain.DirectionCredit,
		amount:      v.Amount,
		description: "Receipt voucher " + v.VoucherID,
	}

	return s.post(ctx, domain.RefReceiptVoucher, v.VoucherID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateReceiptVoucherEntry(ctx, v, userID)
	}, effect, nil, userID)
}

func (s *PostingService) PostPaymentVoucher(ctx context.Context, v domain.Voucher, userID string) (*dto.PostingResult, error) {
	effect := &partnerEffect{
		partnerID:   v.PartnerID,
		txnType:     domain.PartnerTxnPayment,
		direction:   domain.DirectionDebit,
		amount:      v.Amount,
		description: "Payment voucher " + v.VoucherID,
	}

	return s.post(ctx, domain.RefPaymentVoucher, v.VoucherID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreatePaymentVoucherEntry(ctx, v, userID)
	}, effect, nil, userID)
}

func (s *PostingService) PostBankTransfer(ctx context.Context, t domain.BankTransfer, userID string) (*dto.PostingResult, error) {
	return s.post(ctx, domain.RefBankTransfer, t.TransferID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateBankTransferEntry(ctx, t, userID)
	}, nil, nil, userID)
}

func (s *PostingService) PostCheckBounced(ctx context.Context, c domain.CheckEvent, userID string) (*dto.PostingResult, error) {
	var effect *partnerEffect
	if c.PartnerID != "" {
		effect = &partnerEffect{
			partnerID:   c.PartnerID,
			txnType:     domain.PartnerTxnAdjustment,
			direction:   domain.DirectionDebit,
			amount:      c.Amount,
			description: "Bounced check " + c.CheckID,
		}
	}

	return s.post(ctx, domain.RefCheckBounced, c.CheckID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateCheckBouncedEntry(ctx, c, userID)
	}, effect, nil, userID)
}

func (s *PostingService) PostCheckEarlyCollection(ctx context.Context, c domain.CheckEvent, userID string) (*dto.PostingResult, error) {
	return s.post(ctx, domain.RefCheckEarlyCollection, c.CheckID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateCheckEarlyCollectionEntry(ctx, c, userID)
	}, nil, nil, userID)
}

func (s *PostingService) PostRevenueEntry(ctx context.Context, e domain.RevenueEntry, userID string) (*dto.PostingResult, error) {
	return s.post(ctx, domain.RefRevenueEntry, e.EntryRefID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateRevenueEntry(ctx, e, userID)
	}, nil, nil, userID)
}

func (s *PostingService) PostExpenseEntry(ctx context.Context, e domain.ExpenseEntry, userID string) (*dto.PostingResult, error) {
	return s.post(ctx, domain.RefExpenseEntry, e.EntryRefID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateExpenseEntry(ctx, e, userID)
	}, nil, nil, userID)
}

func (s *PostingService) PostDebitNote(ctx context.Context, n domain.Note, userID string) (*dto.PostingResult, error) {
	effect := &partnerEffect{
		partnerID:   n.PartnerID,
		txnType:     domain.PartnerTxnAdjustment,
		direction:   domain.DirectionDebit,
		amount:      n.Amount,
		description: "Debit note " + n.NoteID,
	}

	return s.post(ctx, domain.RefDebitNote, n.NoteID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateDebitNoteEntry(ctx, n, userID)
	}, effect, nil, userID)
}

func (s *PostingService) PostCreditNote(ctx context.Context, n domain.Note, userID string) (*dto.PostingResult, error) {
	effect := &partnerEffect{
		partnerID:   n.PartnerID,
		txnType:     domain.PartnerTxnAdjustment,
		direction:   domain.DirectionCredit,
		amount:      n.Amount,
		description: "Credit note " + n.NoteID,
	}

	return s.post(ctx, domain.RefCreditNote, n.NoteID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateCreditNoteEntry(ctx, n, userID)
	}, effect, nil, userID)
}

func (s *PostingService) PostOpeningBalance(ctx context.Context, ob domain.OpeningBalance, userID string) (*dto.PostingResult, error) {
	var effect *partnerEffect
	switch ob.Kind {
	case domain.OpeningCustomer:
		effect = &partnerEffect{
			partnerID:   ob.EntityID,
			txnType:     domain.PartnerTxnAdjustment,
			direction:   domain.DirectionDebit,
			amount:      ob.Amount,
			description: "Opening balance",
		}
	case domain.OpeningSupplier:
		effect = &partnerEffect{
			partnerID:   ob.EntityID,
			txnType:     domain.PartnerTxnAdjustment,
			direction:   domain.DirectionCredit,
			amount:      ob.Amount,
			description: "Opening balance",
		}
	}

	refID := string(ob.Kind) + ":" + ob.EntityID
	return s.post(ctx, domain.RefOpeningBalance, refID, func() (*domain.JournalEntry, error) {
		return s.journalSvc.CreateOpeningBalanceEntry(ctx, ob, userID)
	}, effect, nil, userID)
}

// Unpost removes everything posted for a reference pair: journal entries,
// partner ledger rows and inventory movements. Unposting an unknown
// reference removes nothing and succeeds. A document update is modeled as
// unpost followed by a fresh post.
func (s *PostingService) Unpost(ctx context.Context, refType domain.ReferenceType, refID string, userID string) (*dto.UnpostResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entriesDeleted, err := s.journalSvc.DeleteEntriesByReference(ctx, refType, refID)
	if err != nil {
		return nil, err
	}
	txnsDeleted, err := s.partnerSvc.DeleteTransactionsByReference(ctx, refType, refID)
	if err != nil {
		return nil, err
	}
	movementsDeleted, err := s.inventoryRepo.DeleteMovementsByReference(ctx, refType, refID)
	if err != nil {
		return nil, err
	}

	if entriesDeleted > 0 || txnsDeleted > 0 || movementsDeleted > 0 {
		s.writeAudit(ctx, userID, "journal.unpost", refType, refID)
		logger.Info("Document unposted", slog.String("reference_type", string(refType)),
			slog.String("reference_id", refID), slog.Int64("entries_deleted", entriesDeleted))
	}

	return &dto.UnpostResult{
		EntriesDeleted:      entriesDeleted,
		TransactionsDeleted: txnsDeleted,
		MovementsDeleted:    movementsDeleted,
	}, nil
}
