package pgsql

import (
	"context"
	"fmt"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIntegrityRepository struct {
	pool *pgxpool.Pool
}

// newPgxIntegrityRepository creates a new repository for the consistency sweep queries.
func newPgxIntegrityRepository(pool *pgxpool.Pool) portsrepo.IntegrityRepository {
	return &PgxIntegrityRepository{pool: pool}
}

var _ portsrepo.IntegrityRepository = (*PgxIntegrityRepository)(nil)

// FindUnbalancedEntries returns entries whose line totals do not balance.
func (r *PgxIntegrityRepository) FindUnbalancedEntries(ctx context.Context) ([]portsrepo.UnbalancedEntry, error) {
	query := `
		SELECT e.entry_id, e.entry_number, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entries e
		LEFT JOIN journal_lines l ON l.entry_id = e.entry_id
		GROUP BY e.entry_id, e.entry_number
		HAVING COALESCE(SUM(l.debit), 0) <> COALESCE(SUM(l.credit), 0)
		ORDER BY e.entry_number;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unbalanced entries: %w", err)
	}
	defer rows.Close()

	unbalanced := []portsrepo.UnbalancedEntry{}
	for rows.Next() {
		var u portsrepo.UnbalancedEntry
		if err := rows.Scan(&u.EntryID, &u.EntryNumber, &u.DebitTotal, &u.CreditTotal); err != nil {
			return nil, fmt.Errorf("failed to scan unbalanced entry row: %w", err)
		}
		unbalanced = append(unbalanced, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unbalanced entry rows: %w", err)
	}
	return unbalanced, nil
}

// FindDuplicateReferences returns reference pairs with more than one journal
// entry. Legacy data only; the partial unique index blocks new duplicates.
func (r *PgxIntegrityRepository) FindDuplicateReferences(ctx context.Context) ([]portsrepo.ReferencePair, error) {
	query := `
		SELECT reference_type, reference_id
		FROM journal_entries
		WHERE reference_type <> 'manual' AND reference_id IS NOT NULL
		GROUP BY reference_type, reference_id
		HAVING COUNT(*) > 1
		ORDER BY reference_type, reference_id;
	`
	return r.queryReferencePairs(ctx, query, "duplicate references")
}

// FindMissingEntries returns reference pairs that have partner ledger rows
// but no journal entry.
func (r *PgxIntegrityRepository) FindMissingEntries(ctx context.Context) ([]portsrepo.ReferencePair, error) {
	query := `
		SELECT DISTINCT pt.reference_type, pt.reference_id
		FROM partner_transactions pt
		WHERE pt.reference_type IS NOT NULL AND pt.reference_id IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM journal_entries e
			WHERE e.reference_type = pt.reference_type AND e.reference_id = pt.reference_id
		  )
		ORDER BY pt.reference_type, pt.reference_id;
	`
	return r.queryReferencePairs(ctx, query, "missing entries")
}

func (r *PgxIntegrityRepository) queryReferencePairs(ctx context.Context, query string, label string) ([]portsrepo.ReferencePair, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", label, err)
	}
	defer rows.Close()

	pairs := []portsrepo.ReferencePair{}
	for rows.Next() {
		var refType, refID string
		if err := rows.Scan(&refType, &refID); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", label, err)
		}
		pairs = append(pairs, portsrepo.ReferencePair{
			ReferenceType: domain.ReferenceType(refType),
			ReferenceID:   refID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", label, err)
	}
	return pairs, nil
}

// FindDriftedPartners returns partners whose cached balance diverges from the
// replayed ledger sum.
func (r *PgxIntegrityRepository) FindDriftedPartners(ctx context.Context) ([]portsrepo.PartnerDrift, error) {
	query := `
		SELECT p.partner_id, p.balance,
		       COALESCE(SUM(CASE WHEN t.direction = 'debit' THEN t.amount ELSE -t.amount END), 0) AS derived
		FROM partners p
		LEFT JOIN partner_transactions t ON t.partner_id = p.partner_id
		GROUP BY p.partner_id, p.balance
		HAVING p.balance <> COALESCE(SUM(CASE WHEN t.direction = 'debit' THEN t.amount ELSE -t.amount END), 0)
		ORDER BY p.partner_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query drifted partners: %w", err)
	}
	defer rows.Close()

	drifted := []portsrepo.PartnerDrift{}
	for rows.Next() {
		var d portsrepo.PartnerDrift
		if err := rows.Scan(&d.PartnerID, &d.CachedBalance, &d.DerivedBalance); err != nil {
			return nil, fmt.Errorf("failed to scan drifted partner row: %w", err)
		}
		drifted = append(drifted, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drifted partner rows: %w", err)
	}
	return drifted, nil
}
