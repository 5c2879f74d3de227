package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
)

// IntegrityService runs the cross-ledger consistency sweep and the repair
// pass. The sweep is read-only; repair only rewrites cached balances and
// never touches journal rows.
type IntegrityService struct {
	integrityRepo portsrepo.IntegrityRepository
	accountSvc    portssvc.AccountSvcFacade
	partnerSvc    portssvc.PartnerSvcFacade
}

func NewIntegrityService(
	integrityRepo portsrepo.IntegrityRepository,
	accountSvc portssvc.AccountSvcFacade,
	partnerSvc portssvc.PartnerSvcFacade,
) *IntegrityService {
	return &IntegrityService{
		integrityRepo: integrityRepo,
		accountSvc:    accountSvc,
		partnerSvc:    partnerSvc,
	}
}

// RunCheck scans the journal and the partner ledger for the four
// inconsistency classes: entries whose lines do not balance, reference pairs
// with more than one entry, partner ledger rows with no journal entry, and
// partners whose cached balance has drifted from the replayed sum.
func (s *IntegrityService) RunCheck(ctx context.Context) (*dto.IntegrityReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unbalanced, err := s.integrityRepo.FindUnbalancedEntries(ctx)
	if err != nil {
		logger.Error("Integrity check failed scanning entry balances", slog.String("error", err.Error()))
		return nil, err
	}
	duplicates, err := s.integrityRepo.FindDuplicateReferences(ctx)
	if err != nil {
		logger.Error("Integrity check failed scanning duplicate references", slog.String("error", err.Error()))
		return nil, err
	}
	missing, err := s.integrityRepo.FindMissingEntries(ctx)
	if err != nil {
		logger.Error("Integrity check failed scanning missing entries", slog.String("error", err.Error()))
		return nil, err
	}
	drifted, err := s.integrityRepo.FindDriftedPartners(ctx)
	if err != nil {
		logger.Error("Integrity check failed scanning partner balances", slog.String("error", err.Error()))
		return nil, err
	}

	report := &dto.IntegrityReport{
		UnbalancedEntries:   make([]dto.UnbalancedEntryReport, 0, len(unbalanced)),
		DuplicateReferences: make([]dto.ReferencePairReport, 0, len(duplicates)),
		MissingEntries:      make([]dto.ReferencePairReport, 0, len(missing)),
		DriftedPartners:     make([]dto.PartnerDriftReport, 0, len(drifted)),
	}
	for _, e := range unbalanced {
		report.UnbalancedEntries = append(report.UnbalancedEntries, dto.UnbalancedEntryReport{
			EntryID:     e.EntryID,
			EntryNumber: e.EntryNumber,
			DebitTotal:  e.DebitTotal,
			CreditTotal: e.CreditTotal,
		})
	}
	for _, p := range duplicates {
		report.DuplicateReferences = append(report.DuplicateReferences, dto.ReferencePairReport{
			ReferenceType: string(p.ReferenceType),
			ReferenceID:   p.ReferenceID,
		})
	}
	for _, p := range missing {
		report.MissingEntries = append(report.MissingEntries, dto.ReferencePairReport{
			ReferenceType: string(p.ReferenceType),
			ReferenceID:   p.ReferenceID,
		})
	}
	for _, d := range drifted {
		report.DriftedPartners = append(report.DriftedPartners, dto.PartnerDriftReport{
			PartnerID:      d.PartnerID,
			CachedBalance:  d.CachedBalance,
			DerivedBalance: d.DerivedBalance,
		})
	}
	report.Clean = len(unbalanced) == 0 && len(duplicates) == 0 &&
		len(missing) == 0 && len(drifted) == 0

	if !report.Clean {
		logger.Warn("Integrity check found inconsistencies",
			slog.Int("unbalanced_entries", len(unbalanced)),
			slog.Int("duplicate_references", len(duplicates)),
			slog.Int("missing_entries", len(missing)),
			slog.Int("drifted_partners", len(drifted)))
	}
	return report, nil
}

// Repair recomputes every cached account balance from the journal and
// replays the ledger of each drifted partner. Journal rows are never
// modified; unbalanced entries and duplicate references need manual review.
func (s *IntegrityService) Repair(ctx context.Context, userID string) (*dto.RepairResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountsRefreshed, err := s.accountSvc.RefreshAllBalances(ctx, userID)
	if err != nil {
		return nil, err
	}

	drifted, err := s.integrityRepo.FindDriftedPartners(ctx)
	if err != nil {
		logger.Error("Repair failed scanning partner balances", slog.String("error", err.Error()))
		return nil, err
	}
	recalculated := 0
	for _, d := range drifted {
		if _, err := s.partnerSvc.RecalculateBalance(ctx, d.PartnerID, userID); err != nil {
			logger.Error("Repair failed recalculating partner balance",
				slog.String("error", err.Error()), slog.String("partner_id", d.PartnerID))
			return nil, err
		}
		recalculated++
	}

	logger.Info("Integrity repair completed",
		slog.Int64("accounts_refreshed", accountsRefreshed),
		slog.Int("partners_recalculated", recalculated))
	return &dto.RepairResult{
		AccountsRefreshed:    accountsRefreshed,
		PartnersRecalculated: recalculated,
	}, nil
}
