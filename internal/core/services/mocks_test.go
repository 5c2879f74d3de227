package services_test

import (
	"context"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetOrCreateAccount(ctx context.Context, candidate domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SumAccountLines(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountRepository) RefreshAllBalances(ctx context.Context, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	args := m.Called(ctx, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntryByID(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedNextToken, args.Error(2)
}

// --- Mock PartnerRepository ---
type MockPartnerRepository struct {
	mock.Mock
}

var _ portsrepo.PartnerRepositoryFacade = (*MockPartnerRepository)(nil)

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ListPartners(ctx context.Context, kind *domain.PartnerKind, limit int, offset int) ([]domain.Partner, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) DeactivatePartner(ctx context.Context, partnerID string, userID string, now time.Time) error {
	args := m.Called(ctx, partnerID, userID, now)
	return args.Error(0)
}

// --- Mock PartnerLedgerRepository ---
type MockPartnerLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.PartnerLedgerRepository = (*MockPartnerLedgerRepository)(nil)

func (m *MockPartnerLedgerRepository) SaveTransaction(ctx context.Context, txn domain.PartnerTransaction) (*domain.PartnerTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartnerTransaction), args.Error(1)
}

func (m *MockPartnerLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PartnerTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartnerTransaction), args.Error(1)
}

func (m *MockPartnerLedgerRepository) ListTransactionsByPartner(ctx context.Context, partnerID string, limit int, nextToken *string) ([]domain.PartnerTransaction, *string, error) {
	args := m.Called(ctx, partnerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PartnerTransaction), returnedNextToken, args.Error(2)
}

func (m *MockPartnerLedgerRepository) DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	args := m.Called(ctx, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerLedgerRepository) RecalculatePartnerBalance(ctx context.Context, partnerID string, userID string, now time.Time) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

// --- Mock InventoryMovementRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryMovementRepository = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) SaveMovements(ctx context.Context, movements []domain.InventoryMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteMovementsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	args := m.Called(ctx, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AuditLogRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveLog(ctx context.Context, log domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// --- Mock IntegrityRepository ---
type MockIntegrityRepository struct {
	mock.Mock
}

var _ portsrepo.IntegrityRepository = (*MockIntegrityRepository)(nil)

func (m *MockIntegrityRepository) FindUnbalancedEntries(ctx context.Context) ([]portsrepo.UnbalancedEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.UnbalancedEntry), args.Error(1)
}

func (m *MockIntegrityRepository) FindDuplicateReferences(ctx context.Context) ([]portsrepo.ReferencePair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.ReferencePair), args.Error(1)
}

func (m *MockIntegrityRepository) FindMissingEntries(ctx context.Context) ([]portsrepo.ReferencePair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.ReferencePair), args.Error(1)
}

func (m *MockIntegrityRepository) FindDriftedPartners(ctx context.Context) ([]portsrepo.PartnerDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.PartnerDrift), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

// Ensure MockAccountService implements portssvc.AccountSvcFacade
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetOrCreateAccount(ctx context.Context, code string, name string, accountType domain.AccountType, parentCode string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, code, name, accountType, parentCode, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) RefreshAllBalances(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) FindEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockJournalService) ListLinesByAccount(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLinesResponse), args.Error(1)
}

func (m *MockJournalService) CreateManualEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	args := m.Called(ctx, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateSalesInvoiceEntry(ctx context.Context, inv domain.SalesInvoice, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, inv, userID))
}

func (m *MockJournalService) CreatePurchaseInvoiceEntry(ctx context.Context, inv domain.PurchaseInvoice, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, inv, userID))
}

func (m *MockJournalService) CreateSalesReturnEntry(ctx context.Context, ret domain.SalesReturn, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, ret, userID))
}

func (m *MockJournalService) CreatePurchaseReturnEntry(ctx context.Context, ret domain.PurchaseReturn, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, ret, userID))
}

func (m *MockJournalService) CreateReceiptVoucherEntry(ctx context.Context, v domain.Voucher, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, v, userID))
}

func (m *MockJournalService) CreatePaymentVoucherEntry(ctx context.Context, v domain.Voucher, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, v, userID))
}

func (m *MockJournalService) CreateBankTransferEntry(ctx context.Context, t domain.BankTransfer, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, t, userID))
}

func (m *MockJournalService) CreateCheckBouncedEntry(ctx context.Context, c domain.CheckEvent, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, c, userID))
}

func (m *MockJournalService) CreateCheckEarlyCollectionEntry(ctx context.Context, c domain.CheckEvent, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, c, userID))
}

func (m *MockJournalService) CreateRevenueEntry(ctx context.Context, e domain.RevenueEntry, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, e, userID))
}

func (m *MockJournalService) CreateExpenseEntry(ctx context.Context, e domain.ExpenseEntry, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, e, userID))
}

func (m *MockJournalService) CreateDebitNoteEntry(ctx context.Context, n domain.Note, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, n, userID))
}

func (m *MockJournalService) CreateCreditNoteEntry(ctx context.Context, n domain.Note, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, n, userID))
}

func (m *MockJournalService) CreateOpeningBalanceEntry(ctx context.Context, ob domain.OpeningBalance, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, ob, userID))
}

// --- Mock PartnerService ---
type MockPartnerService struct {
	mock.Mock
}

var _ portssvc.PartnerSvcFacade = (*MockPartnerService)(nil)

func (m *MockPartnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerService) ListPartners(ctx context.Context, params dto.ListPartnersParams) ([]domain.Partner, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerService) DeactivatePartner(ctx context.Context, partnerID string, userID string) error {
	args := m.Called(ctx, partnerID, userID)
	return args.Error(0)
}

func (m *MockPartnerService) CreateTransaction(ctx context.Context, partnerID string, req dto.CreatePartnerTransactionRequest, userID string) (*domain.PartnerTransaction, error) {
	args := m.Called(ctx, partnerID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartnerTransaction), args.Error(1)
}

func (m *MockPartnerService) ListTransactions(ctx context.Context, partnerID string, params dto.ListPartnerTransactionsParams) (*dto.ListPartnerTransactionsResponse, error) {
	args := m.Called(ctx, partnerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPartnerTransactionsResponse), args.Error(1)
}

func (m *MockPartnerService) DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	args := m.Called(ctx, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerService) RecalculateBalance(ctx context.Context, partnerID string, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
