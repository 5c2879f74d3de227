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
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/qaidhq/qaid_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalService is the single choke point for creating and deleting
// balanced journal entries. Every posting path, manual or document-driven,
// funnels through createEntry.
type JournalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

func NewJournalService(repo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) *JournalService {
	return &JournalService{
		journalRepo: repo,
		accountSvc:  accountSvc,
	}
}

// GetEntry retrieves an entry with its lines.
func (s *JournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to load journal lines", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// FindEntriesByReference retrieves the entries posted for a reference pair,
// lines included.
func (s *JournalService) FindEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.FindEntriesByReference(ctx, refType, refID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesMap[entries[i].EntryID]
	}
	return entries, nil
}

// ListEntries retrieves a page of entries with their lines.
func (s *JournalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, err
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		logger.Error("Failed to load lines for listed entries", slog.String("error", err.Error()))
		return nil, err
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		entries[i].Lines = linesMap[entries[i].EntryID]
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ListLinesByAccount retrieves a page of one account's lines.
func (s *JournalService) ListLinesByAccount(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListLinesResponse{Lines: dto.ToLineResponses(lines), NextToken: nextToken}, nil
}

// CreateManualEntry validates and persists a hand-written entry.
func (s *JournalService) CreateManualEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return s.createEntry(ctx, domain.RefManual, "", req.Date, req.Description, lines, userID)
}

// DeleteEntriesByReference removes every entry for a reference pair.
func (s *JournalService) DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.journalRepo.DeleteEntriesByReference(ctx, refType, refID)
	if err != nil {
		logger.Error("Failed to delete journal entries by reference", slog.String("error", err.Error()),
			slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
		return 0, err
	}

	if deleted > 0 {
		logger.Info("Journal entries deleted", slog.Int64("count", deleted),
			slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
	}
	return deleted, nil
}

// DeleteEntry removes one manual entry. Entries posted for a business
// document carry partner ledger and stock side effects the journal layer
// knows nothing about, so those must be unwound through Unpost instead.
func (s *JournalService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.ReferenceType != domain.RefManual {
		return fmt.Errorf("%w: entry %s was posted for %s %s; unpost the document instead",
			apperrors.ErrConflict, entryID, entry.ReferenceType, entry.ReferenceID)
	}

	if err := s.journalRepo.DeleteEntryByID(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return err
	}

	logger.Info("Manual journal entry deleted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return nil
}

// createEntry is the single posting primitive. It validates line shapes,
// asserts the debit total equals the credit total, and persists the entry and
// its lines in one repository transaction. Unbalanced input never reaches the
// database.
func (s *JournalService) createEntry(ctx context.Context, refType domain.ReferenceType, refID string, date time.Time, description string, lines []domain.JournalLine, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !refType.IsValid() {
		return nil, fmt.Errorf("%w: unknown reference type '%s'", apperrors.ErrValidation, refType)
	}
	if refType != domain.RefManual && refID == "" {
		return nil, fmt.Errorf("%w: reference ID required for %s entries", apperrors.ErrValidation, refType)
	}

	total, err := accounting.ValidateEntryBalance(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now()
	if date.IsZero() {
		date = now
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		EntryDate:     date,
		ReferenceType: refType,
		ReferenceID:   refID,
		Description:   description,
		TotalAmount:   total,
		AuditFields:   audit,
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
		lines[i].AuditFields = audit
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save journal entry", slog.String("error", err.Error()),
				slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
		}
		return nil, err
	}

	logger.Info("Journal entry posted", slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber), slog.String("reference_type", string(refType)))
	return saved, nil
}

// debitLine builds a debit leg.
func debitLine(accountID string, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: amount, Description: description}
}

// creditLine builds a credit leg.
func creditLine(accountID string, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Credit: amount, Description: description}
}
