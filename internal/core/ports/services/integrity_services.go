package services

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/dto"
)

// IntegritySvcFacade exposes the bookkeeping consistency sweep.
type IntegritySvcFacade interface {
	// RunCheck scans for unbalanced entries, duplicate or missing
	// reference pairs, and partner cached-balance drift.
	RunCheck(ctx context.Context) (*dto.IntegrityReport, error)

	// Repair recomputes cached account and partner balances from the
	// journal. It never touches journal rows themselves.
	Repair(ctx context.Context, userID string) (*dto.RepairResult, error)
}
