package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/apperrors"
	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartnerService struct {
	partnerRepo portsrepo.PartnerRepositoryFacade
	ledgerRepo  portsrepo.PartnerLedgerRepository
}

func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade, ledgerRepo portsrepo.PartnerLedgerRepository) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *PartnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown partner kind '%s'", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now()
	partner := domain.Partner{
		PartnerID: uuid.NewString(),
		Name:      req.Name,
		Kind:      req.Kind,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  true,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		logger.Error("Failed to save partner", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID), slog.String("kind", string(partner.Kind)))
	return &partner, nil
}

func (s *PartnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find partner", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return nil, err
	}
	return partner, nil
}

func (s *PartnerService) ListPartners(ctx context.Context, params dto.ListPartnersParams) ([]domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	partners, err := s.partnerRepo.ListPartners(ctx, params.Kind, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list partners", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	if partners == nil {
		return []domain.Partner{}, nil
	}
	return partners, nil
}

func (s *PartnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.Email != nil {
		partner.Email = *req.Email
	}
	if req.IsActive != nil {
		partner.IsActive = *req.IsActive
	}
	partner.LastUpdatedAt = time.Now()
	partner.LastUpdatedBy = userID

	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		logger.Error("Failed to update partner", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		return nil, err
	}

	logger.Info("Partner updated", slog.String("partner_id", partnerID))
	return partner, nil
}

func (s *PartnerService) DeactivatePartner(ctx context.Context, partnerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.partnerRepo.DeactivatePartner(ctx, partnerID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to deactivate partner", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return err
	}

	logger.Info("Partner deactivated", slog.String("partner_id", partnerID))
	return nil
}

// CreateTransaction records a ledger row. The repository serializes writes
// per partner and snapshots the running balance; the request's amount must be
// positive, with the sign coming from the direction.
func (s *PartnerService) CreateTransaction(ctx context.Context, partnerID string, req dto.CreatePartnerTransactionRequest, userID string) (*domain.PartnerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TransactionType.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, req.TransactionType)
	}
	if !req.Direction.IsValid() {
		return nil, fmt.Errorf("%w: unknown direction '%s'", apperrors.ErrValidation, req.Direction)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.ReferenceType != "" && !req.ReferenceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown reference type '%s'", apperrors.ErrValidation, req.ReferenceType)
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	txn := domain.PartnerTransaction{
		TransactionID:   uuid.NewString(),
		Date:            date,
		PartnerID:       partnerID,
		TransactionType: req.TransactionType,
		Direction:       req.Direction,
		Amount:          req.Amount,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to save partner transaction", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return nil, err
	}

	logger.Info("Partner transaction recorded", slog.String("transaction_id", saved.TransactionID),
		slog.String("partner_id", partnerID), slog.String("direction", string(saved.Direction)))
	return saved, nil
}

func (s *PartnerService) ListTransactions(ctx context.Context, partnerID string, params dto.ListPartnerTransactionsParams) (*dto.ListPartnerTransactionsResponse, error) {
	// Resolve the partner first so an unknown ID is a 404, not an empty page.
	if _, err := s.partnerRepo.FindPartnerByID(ctx, partnerID); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactionsByPartner(ctx, partnerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListPartnerTransactionsResponse{
		Transactions: dto.ToPartnerTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// DeleteTransactionsByReference removes the ledger rows for a reference pair.
func (s *PartnerService) DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.ledgerRepo.DeleteTransactionsByReference(ctx, refType, refID)
	if err != nil {
		logger.Error("Failed to delete partner transactions by reference", slog.String("error", err.Error()),
			slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
		return 0, err
	}

	if deleted > 0 {
		logger.Info("Partner transactions deleted", slog.Int64("count", deleted),
			slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
	}
	return deleted, nil
}

// RecalculateBalance replays the partner's full history.
func (s *PartnerService) RecalculateBalance(ctx context.Context, partnerID string, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	partner, err := s.ledgerRepo.RecalculatePartnerBalance(ctx, partnerID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to recalculate partner balance", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return nil, err
	}

	logger.Info("Partner balance recalculated", slog.String("partner_id", partnerID),
		slog.String("balance", partner.Balance.String()))
	return partner, nil
}
