package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/apperrors"
	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/qaidhq/qaid_ledger/internal/models"
	"github.com/qaidhq/qaid_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partnerColumns = `partner_id, name, kind, phone, email, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartnerRepository struct {
	pool *pgxpool.Pool
}

// newPgxPartnerRepository creates a new repository for customer/supplier data.
func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{pool: pool}
}

// Ensure PgxPartnerRepository implements portsrepo.PartnerRepositoryFacade
var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

func scanPartner(row pgx.Row) (*models.Partner, error) {
	var m models.Partner
	err := row.Scan(
		&m.PartnerID,
		&m.Name,
		&m.Kind,
		&m.Phone,
		&m.Email,
		&m.IsActive,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePartner inserts a new partner.
func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)

	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PartnerID,
		m.Name,
		m.Kind,
		m.Phone,
		m.Email,
		m.IsActive,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: partner with ID %s already exists", apperrors.ErrDuplicate, m.PartnerID)
		}
		return fmt.Errorf("failed to save partner %s: %w", m.PartnerID, err)
	}
	return nil
}

// FindPartnerByID retrieves a partner by its ID.
func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_id = $1;`

	m, err := scanPartner(r.pool.QueryRow(ctx, query, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by ID %s: %w", partnerID, err)
	}

	p := mapping.ToDomainPartner(*m)
	return &p, nil
}

// ListPartners retrieves a paginated list of active partners, optionally
// filtered by kind. Partners of kind BOTH match either filter.
func (r *PgxPartnerRepository) ListPartners(ctx context.Context, kind *domain.PartnerKind, limit int, offset int) ([]domain.Partner, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + partnerColumns + ` FROM partners WHERE is_active = TRUE`
	args := []interface{}{}
	if kind != nil {
		args = append(args, string(*kind))
		query += ` AND (kind = $1 OR kind = 'BOTH')`
		query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	} else {
		query += ` ORDER BY name LIMIT $1 OFFSET $2;`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		m, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, mapping.ToDomainPartner(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", rows.Err())
	}

	return partners, nil
}

// UpdatePartner updates a partner's mutable details.
func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)

	query := `
		UPDATE partners
		SET name = $2, kind = $3, phone = $4, email = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE partner_id = $1;
	`
	// Balance is excluded: only the ledger writes rewrite it.

	cmdTag, err := r.pool.Exec(ctx, query,
		m.PartnerID,
		m.Name,
		m.Kind,
		m.Phone,
		m.Email,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update partner %s: %w", m.PartnerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivatePartner marks a partner as inactive.
func (r *PgxPartnerRepository) DeactivatePartner(ctx context.Context, partnerID string, userID string, now time.Time) error {
	query := `
		UPDATE partners
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE partner_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.pool.Exec(ctx, query, partnerID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate partner %s: %w", partnerID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindPartnerByID(ctx, partnerID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check partner status after deactivation attempt for %s: %w", partnerID, findErr)
		}
		return fmt.Errorf("%w: partner %s is already inactive", apperrors.ErrConflict, partnerID)
	}

	return nil
}
