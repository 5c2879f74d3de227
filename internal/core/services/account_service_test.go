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
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	service          portssvc.AccountSvcFacade
	assetAccount     domain.Account
	liabilityAccount domain.Account
	userID           string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.assetAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1010",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "2030",
		Name:        "Tax payable",
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1040",
		Name:        "Prepaid expenses",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(req.Code, created.Code)
	suite.Equal(domain.Asset, created.AccountType)
	suite.True(created.IsActive)
	suite.True(created.Balance.IsZero())
	suite.Equal(suite.userID, created.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "9999",
		Name:        "Bogus",
		AccountType: domain.AccountType("FANCY"),
	}

	created, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        suite.assetAccount.Code,
		Name:        "Cash again",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_PassesCandidate() {
	ctx := context.Background()
	existing := suite.liabilityAccount

	suite.mockAccountRepo.On("GetOrCreateAccount", ctx, mock.MatchedBy(func(candidate domain.Account) bool {
		return candidate.Code == "2050X" &&
			candidate.Name == "Supplier X" &&
			candidate.AccountType == domain.Liability &&
			candidate.ParentCode == "2050" &&
			candidate.IsActive &&
			candidate.AccountID != ""
	})).Return(&existing, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, "2050X", "Supplier X", domain.Liability, "2050", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(existing.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_InvalidType() {
	ctx := context.Background()

	account, err := suite.service.GetOrCreateAccount(ctx, "1234", "Whatever", domain.AccountType("NOPE"), "", suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "GetOrCreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetBalance_DebitNormal() {
	ctx := context.Background()
	account := suite.assetAccount

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("SumAccountLines", ctx, account.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(30), nil).Once()

	balance, err := suite.service.GetBalance(ctx, account.AccountID, nil)

	suite.Require().NoError(err)
	// Asset accounts are debit-normal: 100 debit - 30 credit = 70.
	suite.True(balance.Equal(decimal.NewFromInt(70)), "expected 70, got %s", balance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetBalance_CreditNormal() {
	ctx := context.Background()
	account := suite.liabilityAccount

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("SumAccountLines", ctx, account.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(30), decimal.NewFromInt(100), nil).Once()

	balance, err := suite.service.GetBalance(ctx, account.AccountID, nil)

	suite.Require().NoError(err)
	// Liability accounts are credit-normal: 100 credit - 30 debit = 70.
	suite.True(balance.Equal(decimal.NewFromInt(70)), "expected 70, got %s", balance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetBalance_AsOfPassedThrough() {
	ctx := context.Background()
	account := suite.assetAccount
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("SumAccountLines", ctx, account.AccountID, &asOf).
		Return(decimal.NewFromInt(50), decimal.Zero, nil).Once()

	balance, err := suite.service.GetBalance(ctx, account.AccountID, &asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(50)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetBalance_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.GetBalance(ctx, accountID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.True(balance.IsZero())
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SumAccountLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesProvidedFields() {
	ctx := context.Background()
	account := suite.assetAccount
	newName := "Main cash box"
	inactive := false

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(updated domain.Account) bool {
		return updated.Name == newName && !updated.IsActive && updated.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, dto.UpdateAccountRequest{
		Name:     &newName,
		IsActive: &inactive,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.False(updated.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_RepoError() {
	ctx := context.Background()
	accountID := uuid.NewString()
	repoErr := errors.New("connection reset")

	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(repoErr).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmpty() {
	ctx := context.Background()
	params := dto.ListAccountsParams{ActiveOnly: true, Limit: 50, Offset: 0}

	suite.mockAccountRepo.On("ListAccounts", ctx, true, 50, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, params)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRefreshAllBalances_ReturnsCount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("RefreshAllBalances", ctx, suite.userID, mock.AnythingOfType("time.Time")).
		Return(int64(12), nil).Once()

	updated, err := suite.service.RefreshAllBalances(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(12), updated)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
