package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/apperrors"
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
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalSvcFacade
	cashAccountID   string
	salesAccountID  string
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc)

	suite.cashAccountID = uuid.NewString()
	suite.salesAccountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateManualEntry_Success() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Rent adjustment",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	var savedEntry domain.JournalEntry
	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return(&domain.JournalEntry{EntryID: "saved", EntryNumber: "JE-2025-00001"}, nil).Once()

	created, err := suite.service.CreateManualEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("JE-2025-00001", created.EntryNumber)

	suite.Equal(domain.RefManual, savedEntry.ReferenceType)
	suite.Empty(savedEntry.ReferenceID)
	suite.True(savedEntry.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(req.Date, savedEntry.EntryDate)
	suite.Equal(suite.userID, savedEntry.CreatedBy)

	suite.Require().Len(savedLines, 2)
	for _, line := range savedLines {
		suite.Equal(savedEntry.EntryID, line.EntryID)
		suite.NotEmpty(line.LineID)
	}
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateManualEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "Does not balance",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccountID, Credit: decimal.NewFromInt(90)},
		},
	}

	created, err := suite.service.CreateManualEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateManualEntry_BothSidesOnOneLine() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "Bad line shape",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	created, err := suite.service.CreateManualEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateManualEntry_SingleLine() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "One-legged",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	created, err := suite.service.CreateManualEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateManualEntry_SaveError() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "Repo failure",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.salesAccountID, Credit: decimal.NewFromInt(50)},
		},
	}
	saveErr := errors.New("insert failed")

	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil, saveErr).Once()

	created, err := suite.service.CreateManualEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, saveErr)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntry_AttachesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-2025-00007"}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, Debit: decimal.NewFromInt(40)},
		{LineID: uuid.NewString(), EntryID: entryID, Credit: decimal.NewFromInt(40)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Len(got.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestFindEntriesByReference_AttachesLinesPerEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entries := []domain.JournalEntry{{EntryID: entryID, ReferenceType: domain.RefSalesInvoice, ReferenceID: "INV-9"}}
	linesMap := map[string][]domain.JournalLine{
		entryID: {{LineID: uuid.NewString(), EntryID: entryID, Debit: decimal.NewFromInt(10)}},
	}

	suite.mockJournalRepo.On("FindEntriesByReference", ctx, domain.RefSalesInvoice, "INV-9").Return(entries, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entryID}).Return(linesMap, nil).Once()

	got, err := suite.service.FindEntriesByReference(ctx, domain.RefSalesInvoice, "INV-9")

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Len(got[0].Lines, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestFindEntriesByReference_Empty() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntriesByReference", ctx, domain.RefSalesInvoice, "missing").
		Return([]domain.JournalEntry{}, nil).Once()

	got, err := suite.service.FindEntriesByReference(ctx, domain.RefSalesInvoice, "missing")

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntriesByReference_ReturnsCount() {
	ctx := context.Background()

	suite.mockJournalRepo.On("DeleteEntriesByReference", ctx, domain.RefPurchaseInvoice, "PI-44").
		Return(int64(1), nil).Once()

	deleted, err := suite.service.DeleteEntriesByReference(ctx, domain.RefPurchaseInvoice, "PI-44")

	suite.Require().NoError(err)
	suite.Equal(int64(1), deleted)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_ManualEntryDeleted() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-2025-00007", ReferenceType: domain.RefManual}, nil).Once()
	suite.mockJournalRepo.On("DeleteEntryByID", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_DocumentEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, ReferenceType: domain.RefSalesInvoice, ReferenceID: "SI-90"}, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntryByID", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
