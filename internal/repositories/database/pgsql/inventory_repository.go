package pgsql

import (
	"context"
	"fmt"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInventoryMovementRepository struct {
	pool *pgxpool.Pool
}

// newPgxInventoryMovementRepository creates a new repository for stock movement rows.
func newPgxInventoryMovementRepository(pool *pgxpool.Pool) portsrepo.InventoryMovementRepository {
	return &PgxInventoryMovementRepository{pool: pool}
}

var _ portsrepo.InventoryMovementRepository = (*PgxInventoryMovementRepository)(nil)

// SaveMovements persists movements in one batch.
func (r *PgxInventoryMovementRepository) SaveMovements(ctx context.Context, movements []domain.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}

	query := `
		INSERT INTO inventory_movements (movement_id, product_id, direction, quantity, date, reference_type, reference_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, mv := range movements {
		batch.Queue(query,
			mv.MovementID,
			mv.ProductID,
			string(mv.Direction),
			mv.Quantity,
			mv.Date,
			string(mv.ReferenceType),
			mv.ReferenceID,
			mv.CreatedAt,
			mv.CreatedBy,
			mv.LastUpdatedAt,
			mv.LastUpdatedBy,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert inventory movements: %w", err)
	}
	return nil
}

// DeleteMovementsByReference removes the movements for a reference pair.
func (r *PgxInventoryMovementRepository) DeleteMovementsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	query := `DELETE FROM inventory_movements WHERE reference_type = $1 AND reference_id = $2;`

	cmdTag, err := r.pool.Exec(ctx, query, string(refType), refID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inventory movements for %s %s: %w", refType, refID, err)
	}
	return cmdTag.RowsAffected(), nil
}
