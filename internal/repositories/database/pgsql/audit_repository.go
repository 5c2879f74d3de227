package pgsql

import (
	"context"
	"fmt"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuditLogRepository creates a new repository for activity-log rows.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{pool: pool}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

// SaveLog persists one audit row.
func (r *PgxAuditLogRepository) SaveLog(ctx context.Context, log domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (log_id, actor_id, action, entity, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		log.LogID,
		log.ActorID,
		log.Action,
		log.Entity,
		log.EntityID,
		log.Details,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log %s: %w", log.LogID, err)
	}
	return nil
}
