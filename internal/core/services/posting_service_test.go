package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/core/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalSvc    *MockJournalService
	mockPartnerSvc    *MockPartnerService
	mockInventoryRepo *MockInventoryRepository
	mockAuditRepo     *MockAuditRepository
	service           portssvc.PostingSvcFacade
	userID            string
	docDate           time.Time
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockPartnerSvc = new(MockPartnerService)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewPostingService(
		suite.mockJournalSvc,
		suite.mockPartnerSvc,
		suite.mockInventoryRepo,
		suite.mockAuditRepo,
	)

	suite.userID = uuid.NewString()
	suite.docDate = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *PostingServiceTestSuite) postedEntry(refType domain.ReferenceType, refID string) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:       uuid.NewString(),
		EntryNumber:   "JE-2025-00042",
		EntryDate:     suite.docDate,
		ReferenceType: refType,
		ReferenceID:   refID,
	}
}

func (suite *PostingServiceTestSuite) expectAudit(action string) {
	suite.mockAuditRepo.On("SaveLog", mock.Anything, mock.MatchedBy(func(log domain.AuditLog) bool {
		return log.Action == action && log.ActorID == suite.userID
	})).Return(nil).Once()
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostSalesInvoice_CreditSale() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	inv := domain.SalesInvoice{
		InvoiceID:   "INV-100",
		Date:        suite.docDate,
		PartnerID:   partnerID,
		Subtotal:    decimal.NewFromInt(100),
		TaxAmount:   decimal.NewFromInt(15),
		TotalAmount: decimal.NewFromInt(115),
		Items: []domain.DocumentItem{
			{ProductID: uuid.NewString(), Quantity: decimal.NewFromInt(3)},
			{ProductID: uuid.NewString(), Quantity: decimal.NewFromInt(1)},
		},
	}
	entry := suite.postedEntry(domain.RefSalesInvoice, inv.InvoiceID)

	suite.mockJournalSvc.On("CreateSalesInvoiceEntry", ctx, inv, suite.userID).Return(entry, nil).Once()
	suite.mockPartnerSvc.On("CreateTransaction", ctx, partnerID, mock.MatchedBy(func(req dto.CreatePartnerTransactionRequest) bool {
		return req.TransactionType == domain.PartnerTxnSalesInvoice &&
			req.Direction == domain.DirectionDebit &&
			req.Amount.Equal(decimal.NewFromInt(115)) &&
			req.ReferenceType == domain.RefSalesInvoice &&
			req.ReferenceID == inv.InvoiceID
	}), suite.userID).Return(&domain.PartnerTransaction{TransactionID: "txn-1"}, nil).Once()
	suite.mockInventoryRepo.On("SaveMovements", ctx, mock.MatchedBy(func(movements []domain.InventoryMovement) bool {
		if len(movements) != 2 {
			return false
		}
		for _, m := range movements {
			if m.Direction != domain.MovementOut || m.ReferenceID != inv.InvoiceID {
				return false
			}
		}
		return true
	})).Return(nil).Once()
	suite.expectAudit("journal.post")

	result, err := suite.service.PostSalesInvoice(ctx, inv, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(entry.EntryID, result.EntryID)
	suite.Equal(entry.EntryNumber, result.EntryNumber)
	suite.Equal("txn-1", result.PartnerTransactionID)
	suite.Equal(2, result.MovementsCreated)

	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockPartnerSvc.AssertExpectations(suite.T())
	suite.mockInventoryRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostSalesInvoice_CashSaleSkipsPartnerLedger() {
	ctx := context.Background()
	inv := domain.SalesInvoice{
		InvoiceID:   "INV-101",
		Date:        suite.docDate,
		PartnerID:   uuid.NewString(),
		IsCash:      true,
		Subtotal:    decimal.NewFromInt(80),
		TotalAmount: decimal.NewFromInt(80),
	}
	entry := suite.postedEntry(domain.RefSalesInvoice, inv.InvoiceID)

	suite.mockJournalSvc.On("CreateSalesInvoiceEntry", ctx, inv, suite.userID).Return(entry, nil).Once()
	suite.expectAudit("journal.post")

	result, err := suite.service.PostSalesInvoice(ctx, inv, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result.PartnerTransactionID)
	suite.Zero(result.MovementsCreated)
	suite.mockPartnerSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SaveMovements", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostSalesInvoice_PartnerFailureCompensatesJournal() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	inv := domain.SalesInvoice{
		InvoiceID:   "INV-102",
		Date:        suite.docDate,
		PartnerID:   partnerID,
		Subtotal:    decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(100),
	}
	entry := suite.postedEntry(domain.RefSalesInvoice, inv.InvoiceID)
	ledgerErr := errors.New("partner ledger unavailable")

	suite.mockJournalSvc.On("CreateSalesInvoiceEntry", ctx, inv, suite.userID).Return(entry, nil).Once()
	suite.mockPartnerSvc.On("CreateTransaction", ctx, partnerID, mock.Anything, suite.userID).
		Return(nil, ledgerErr).Once()
	suite.mockJournalSvc.On("DeleteEntriesByReference", ctx, domain.RefSalesInvoice, inv.InvoiceID).
		Return(int64(1), nil).Once()

	result, err := suite.service.PostSalesInvoice(ctx, inv, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, ledgerErr)
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveLog", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostSalesInvoice_InventoryFailureCompensatesEverything() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	inv := domain.SalesInvoice{
		InvoiceID:   "INV-103",
		Date:        suite.docDate,
		PartnerID:   partnerID,
		Subtotal:    decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(100),
		Items:       []domain.DocumentItem{{ProductID: uuid.NewString(), Quantity: decimal.NewFromInt(2)}},
	}
	entry := suite.postedEntry(domain.RefSalesInvoice, inv.InvoiceID)
	stockErr := errors.New("movements insert failed")

	suite.mockJournalSvc.On("CreateSalesInvoiceEntry", ctx, inv, suite.userID).Return(entry, nil).Once()
	suite.mockPartnerSvc.On("CreateTransaction", ctx, partnerID, mock.Anything, suite.userID).
		Return(&domain.PartnerTransaction{TransactionID: "txn-2"}, nil).Once()
	suite.mockInventoryRepo.On("SaveMovements", ctx, mock.Anything).Return(stockErr).Once()
	suite.mockPartnerSvc.On("DeleteTransactionsByReference", ctx, domain.RefSalesInvoice, inv.InvoiceID).
		Return(int64(1), nil).Once()
	suite.mockJournalSvc.On("DeleteEntriesByReference", ctx, domain.RefSalesInvoice, inv.InvoiceID).
		Return(int64(1), nil).Once()

	result, err := suite.service.PostSalesInvoice(ctx, inv, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, stockErr)
	suite.mockPartnerSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostSalesInvoice_EntryFailureWritesNothing() {
	ctx := context.Background()
	inv := domain.SalesInvoice{InvoiceID: "INV-104", TotalAmount: decimal.NewFromInt(10)}
	entryErr := errors.New("duplicate reference")

	suite.mockJournalSvc.On("CreateSalesInvoiceEntry", ctx, inv, suite.userID).Return(nil, entryErr).Once()

	result, err := suite.service.PostSalesInvoice(ctx, inv, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockPartnerSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "DeleteEntriesByReference", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPurchaseInvoice_CreditsSupplier() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	inv := domain.PurchaseInvoice{
		InvoiceID:   "PI-10",
		Date:        suite.docDate,
		PartnerID:   partnerID,
		Subtotal:    decimal.NewFromInt(300),
		TotalAmount: decimal.NewFromInt(300),
		Items:       []domain.DocumentItem{{ProductID: uuid.NewString(), Quantity: decimal.NewFromInt(5)}},
	}
	entry := suite.postedEntry(domain.RefPurchaseInvoice, inv.InvoiceID)

	suite.mockJournalSvc.On("CreatePurchaseInvoiceEntry", ctx, inv, suite.userID).Return(entry, nil).Once()
	suite.mockPartnerSvc.On("CreateTransaction", ctx, partnerID, mock.MatchedBy(func(req dto.CreatePartnerTransactionRequest) bool {
		return req.TransactionType == domain.PartnerTxnPurchaseInvoice &&
			req.Direction == domain.DirectionCredit &&
			req.Amount.Equal(decimal.NewFromInt(300))
	}), suite.userID).Return(&domain.PartnerTransaction{TransactionID: "txn-3"}, nil).Once()
	suite.mockInventoryRepo.On("SaveMovements", ctx, mock.MatchedBy(func(movements []domain.InventoryMovement) bool {
		return len(movements) == 1 && movements[0].Direction == domain.MovementIn
	})).Return(nil).Once()
	suite.expectAudit("journal.post")

	result, err := suite.service.PostPurchaseInvoice(ctx, inv, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.MovementsCreated)
	suite.mockPartnerSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostReceiptVoucher_CreditsPartner() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	v := domain.Voucher{
		VoucherID: "RV-1",
		Date:      suite.docDate,
		PartnerID: partnerID,
		Amount:    decimal.NewFromInt(60),
	}
	entry := suite.postedEntry(domain.RefReceiptVoucher, v.VoucherID)

	suite.mockJournalSvc.On("CreateReceiptVoucherEntry", ctx, v, suite.userID).Return(entry, nil).Once()
	suite.mockPartnerSvc.On("CreateTransaction", ctx, partnerID, mock.MatchedBy(func(req dto.CreatePartnerTransactionRequest) bool {
		return req.TransactionType == domain.PartnerTxnPayment && req.Direction == domain.DirectionCredit
	}), suite.userID).Return(&domain.PartnerTransaction{TransactionID: "txn-4"}, nil).Once()
	suite.expectAudit("journal.post")

	result, err := suite.service.PostReceiptVoucher(ctx, v, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("txn-4", result.PartnerTransactionID)
}

func (suite *PostingServiceTestSuite) TestPostBankTransfer_NoPartnerNoStock() {
	ctx := context.Background()
	t := domain.BankTransfer{
		TransferID: "BT-1",
		Date:       suite.docDate,
		ToBank:     "First National",
		Amount:     decimal.NewFromInt(500),
	}
	entry := suite.postedEntry(domain.RefBankTransfer, t.TransferID)

	suite.mockJournalSvc.On("CreateBankTransferEntry", ctx, t, suite.userID).Return(entry, nil).Once()
	suite.expectAudit("journal.post")

	result, err := suite.service.PostBankTransfer(ctx, t, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result.PartnerTransactionID)
	suite.mockPartnerSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostOpeningBalance_SupplierCreditsLedger() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	ob := domain.OpeningBalance{
		Kind:     domain.OpeningSupplier,
		EntityID: partnerID,
		Date:     suite.docDate,
		Amount:   decimal.NewFromInt(250),
	}
	refID := "supplier:" + partnerID
	entry := suite.postedEntry(domain.RefOpeningBalance, refID)

	suite.mockJournalSvc.On("CreateOpeningBalanceEntry", ctx, ob, suite.userID).Return(entry, nil).Once()
	suite.mockPartnerSvc.On("CreateTransaction", ctx, partnerID, mock.MatchedBy(func(req dto.CreatePartnerTransactionRequest) bool {
		return req.TransactionType == domain.PartnerTxnAdjustment &&
			req.Direction == domain.DirectionCredit &&
			req.ReferenceType == domain.RefOpeningBalance &&
			req.ReferenceID == refID
	}), suite.userID).Return(&domain.PartnerTransaction{TransactionID: "txn-5"}, nil).Once()
	suite.expectAudit("journal.post")

	result, err := suite.service.PostOpeningBalance(ctx, ob, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("txn-5", result.PartnerTransactionID)
}

func (suite *PostingServiceTestSuite) TestPostOpeningBalance_BankHasNoPartnerEffect() {
	ctx := context.Background()
	ob := domain.OpeningBalance{
		Kind:       domain.OpeningBank,
		EntityID:   "first-national",
		EntityName: "First National",
		Date:       suite.docDate,
		Amount:     decimal.NewFromInt(1000),
	}
	entry := suite.postedEntry(domain.RefOpeningBalance, "bank:first-national")

	suite.mockJournalSvc.On("CreateOpeningBalanceEntry", ctx, ob, suite.userID).Return(entry, nil).Once()
	suite.expectAudit("journal.post")

	_, err := suite.service.PostOpeningBalance(ctx, ob, suite.userID)

	suite.Require().NoError(err)
	suite.mockPartnerSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_AuditFailureDoesNotUnbook() {
	ctx := context.Background()
	t := domain.BankTransfer{
		TransferID: "BT-2",
		Date:       suite.docDate,
		ToBank:     "First National",
		Amount:     decimal.NewFromInt(100),
	}
	entry := suite.postedEntry(domain.RefBankTransfer, t.TransferID)

	suite.mockJournalSvc.On("CreateBankTransferEntry", ctx, t, suite.userID).Return(entry, nil).Once()
	suite.mockAuditRepo.On("SaveLog", mock.Anything, mock.Anything).Return(errors.New("audit table full")).Once()

	result, err := suite.service.PostBankTransfer(ctx, t, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "DeleteEntriesByReference", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestUnpost_AggregatesCounts() {
	ctx := context.Background()

	suite.mockJournalSvc.On("DeleteEntriesByReference", ctx, domain.RefSalesInvoice, "INV-100").
		Return(int64(1), nil).Once()
	suite.mockPartnerSvc.On("DeleteTransactionsByReference", ctx, domain.RefSalesInvoice, "INV-100").
		Return(int64(1), nil).Once()
	suite.mockInventoryRepo.On("DeleteMovementsByReference", ctx, domain.RefSalesInvoice, "INV-100").
		Return(int64(2), nil).Once()
	suite.expectAudit("journal.unpost")

	result, err := suite.service.Unpost(ctx, domain.RefSalesInvoice, "INV-100", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(1), result.EntriesDeleted)
	suite.Equal(int64(1), result.TransactionsDeleted)
	suite.Equal(int64(2), result.MovementsDeleted)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestUnpost_UnknownReferenceIsNoOp() {
	ctx := context.Background()

	suite.mockJournalSvc.On("DeleteEntriesByReference", ctx, domain.RefSalesInvoice, "missing").
		Return(int64(0), nil).Once()
	suite.mockPartnerSvc.On("DeleteTransactionsByReference", ctx, domain.RefSalesInvoice, "missing").
		Return(int64(0), nil).Once()
	suite.mockInventoryRepo.On("DeleteMovementsByReference", ctx, domain.RefSalesInvoice, "missing").
		Return(int64(0), nil).Once()

	result, err := suite.service.Unpost(ctx, domain.RefSalesInvoice, "missing", suite.userID)

	suite.Require().NoError(err)
	suite.Zero(result.EntriesDeleted)
	// Nothing was removed, so no audit row either.
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveLog", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
