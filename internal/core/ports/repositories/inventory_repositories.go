package repositories

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
)

// InventoryMovementRepository records the stock side effects of postings.
type InventoryMovementRepository interface {
	// SaveMovements persists movements in one batch.
	SaveMovements(ctx context.Context, movements []domain.InventoryMovement) error

	// DeleteMovementsByReference removes the movements for a reference pair.
	// Returns the number of rows deleted.
	DeleteMovementsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error)
}

// AuditLogRepository appends activity-log rows.
type AuditLogRepository interface {
	// SaveLog persists one audit row.
	SaveLog(ctx context.Context, log domain.AuditLog) error
}
