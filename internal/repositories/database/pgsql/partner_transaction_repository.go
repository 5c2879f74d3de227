package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/qaidhq/qaid_ledger/internal/apperrors"
	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/qaidhq/qaid_ledger/internal/models"
	"github.com/qaidhq/qaid_ledger/internal/utils/mapping"
	"github.com/qaidhq/qaid_ledger/internal/utils/numbering"
	"github.com/qaidhq/qaid_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const partnerTxnColumns = `transaction_id, transaction_number, date, partner_id, transaction_type, direction, amount, reference_type, reference_id, description, balance_after, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartnerLedgerRepository struct {
	BaseRepository
}

// newPgxPartnerLedgerRepository creates a new repository for the per-partner
// running-balance ledger.
func newPgxPartnerLedgerRepository(pool *pgxpool.Pool) portsrepo.PartnerLedgerRepository {
	return &PgxPartnerLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPartnerLedgerRepository implements portsrepo.PartnerLedgerRepository
var _ portsrepo.PartnerLedgerRepository = (*PgxPartnerLedgerRepository)(nil)

// lockPartner takes the partner's row lock, serializing concurrent ledger
// writes for the same partner.
func lockPartner(ctx context.Context, tx pgx.Tx, partnerID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT partner_id FROM partners WHERE partner_id = $1 FOR UPDATE;`, partnerID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, partnerID)
		}
		return fmt.Errorf("failed to lock partner %s: %w", partnerID, err)
	}
	return nil
}

// rewriteLedger recomputes balance_after for every row of the partner's
// ledger with one window-function pass over the (date, created_at,
// transaction_id) order, then rewrites the partner's cached balance. Must run
// under the partner lock. Returns the resulting balance.
func rewriteLedger(ctx context.Context, tx pgx.Tx, partnerID string, userID string, now time.Time) (decimal.Decimal, error) {
	rewriteQuery := `
		UPDATE partner_transactions t
		SET balance_after = s.running
		FROM (
			SELECT transaction_id,
			       SUM(CASE WHEN direction = 'debit' THEN amount ELSE -amount END)
			           OVER (ORDER BY date, created_at, transaction_id) AS running
			FROM partner_transactions
			WHERE partner_id = $1
		) s
		WHERE t.transaction_id = s.transaction_id AND t.balance_after <> s.running;
	`
	if _, err := tx.Exec(ctx, rewriteQuery, partnerID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to rewrite ledger for partner %s: %w", partnerID, err)
	}

	balanceQuery := `
		UPDATE partners p
		SET balance = COALESCE((
			SELECT SUM(CASE WHEN direction = 'debit' THEN amount ELSE -amount END)
			FROM partner_transactions
			WHERE partner_id = p.partner_id
		), 0), last_updated_at = $2, last_updated_by = $3
		WHERE p.partner_id = $1
		RETURNING balance;
	`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, balanceQuery, partnerID, now, userID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to refresh cached balance for partner %s: %w", partnerID, err)
	}
	return balance, nil
}

// SaveTransaction inserts a ledger row and rewrites the running balances of
// the partner's ledger inside one DB transaction. The snapshot stays correct
// even for backdated rows because every row at or after the new position is
// recomputed.
func (r *PgxPartnerLedgerRepository) SaveTransaction(ctx context.Context, txn domain.PartnerTransaction) (*domain.PartnerTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if txn.TransactionNumber == "" {
		number, err := numbering.TransactionNumber(txn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to generate transaction number: %w", err)
		}
		txn.TransactionNumber = number
	}

	if err := lockPartner(ctx, tx, txn.PartnerID); err != nil {
		return nil, err
	}

	m := mapping.ToModelPartnerTransaction(txn)
	var refType, refID sql.NullString
	if m.ReferenceType != "" {
		refType = sql.NullString{String: m.ReferenceType, Valid: true}
	}
	if m.ReferenceID != "" {
		refID = sql.NullString{String: m.ReferenceID, Valid: true}
	}

	insertQuery := `
		INSERT INTO partner_transactions (` + partnerTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.TransactionNumber,
		m.Date,
		m.PartnerID,
		m.TransactionType,
		m.Direction,
		m.Amount,
		refType,
		refID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: partner transaction %s already exists", apperrors.ErrDuplicate, m.TransactionNumber)
		}
		return nil, fmt.Errorf("failed to insert partner transaction %s: %w", m.TransactionID, err)
	}

	if _, err := rewriteLedger(ctx, tx, txn.PartnerID, txn.CreatedBy, txn.LastUpdatedAt); err != nil {
		return nil, err
	}

	// Pick up the balance_after the rewrite assigned to this row.
	var balanceAfter decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT balance_after FROM partner_transactions WHERE transaction_id = $1;`, m.TransactionID).Scan(&balanceAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to read back balance for transaction %s: %w", m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	txn.BalanceAfter = balanceAfter
	return &txn, nil
}

func scanPartnerTransaction(row pgx.Row) (*models.PartnerTransaction, error) {
	var m models.PartnerTransaction
	var refType, refID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.Date,
		&m.PartnerID,
		&m.TransactionType,
		&m.Direction,
		&m.Amount,
		&refType,
		&refID,
		&m.Description,
		&m.BalanceAfter,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if refType.Valid {
		m.ReferenceType = refType.String
	}
	if refID.Valid {
		m.ReferenceID = refID.String
	}
	return &m, nil
}

// FindTransactionByID retrieves a single ledger row.
func (r *PgxPartnerLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PartnerTransaction, error) {
	query := `SELECT ` + partnerTxnColumns + ` FROM partner_transactions WHERE transaction_id = $1;`

	m, err := scanPartnerTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainPartnerTransaction(*m)
	return &txn, nil
}

// ListTransactionsByPartner retrieves the partner's ledger in statement order,
// oldest first, with token-based pagination.
func (r *PgxPartnerLedgerRepository) ListTransactionsByPartner(ctx context.Context, partnerID string, limit int, nextToken *string) ([]domain.PartnerTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + partnerTxnColumns + ` FROM partner_transactions WHERE partner_id = $1`
	orderByClause := `ORDER BY date, created_at, transaction_id`

	var rows pgx.Rows
	var err error
	args := []interface{}{partnerID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (date, created_at) > ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $2;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger for partner %s: %w", partnerID, err)
	}
	defer rows.Close()

	scanned := make([]models.PartnerTransaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPartnerTransaction(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan partner transaction row for partner %s: %w", partnerID, scanErr)
		}
		scanned = append(scanned, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating partner transaction rows for partner %s: %w", partnerID, err)
	}

	var nextTokenVal *string
	results := scanned
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = scanned[:limit]
	}

	return mapping.ToDomainPartnerTransactionSlice(results), nextTokenVal, nil
}

// DeleteTransactionsByReference removes the ledger rows for a reference pair
// and rewrites the affected partners' ledgers. Deleting an unknown reference
// deletes zero rows.
func (r *PgxPartnerLedgerRepository) DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	// Lock every partner touched by the reference before deleting, in a
	// stable order to avoid deadlocking against concurrent saves.
	lockQuery := `
		SELECT partner_id FROM partners
		WHERE partner_id IN (
			SELECT DISTINCT partner_id FROM partner_transactions
			WHERE reference_type = $1 AND reference_id = $2
		)
		ORDER BY partner_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, string(refType), refID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock partners for %s %s: %w", refType, refID, err)
	}
	partnerIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan locked partner row: %w", err)
		}
		partnerIDs = append(partnerIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating locked partner rows: %w", err)
	}

	deleteQuery := `DELETE FROM partner_transactions WHERE reference_type = $1 AND reference_id = $2;`
	cmdTag, err := tx.Exec(ctx, deleteQuery, string(refType), refID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete partner transactions for %s %s: %w", refType, refID, err)
	}

	now := time.Now().UTC()
	for _, partnerID := range partnerIDs {
		if _, err := rewriteLedger(ctx, tx, partnerID, "system", now); err != nil {
			return 0, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

// RecalculatePartnerBalance replays the partner's full history, rewriting
// every row's balance_after and the cached partner balance.
func (r *PgxPartnerLedgerRepository) RecalculatePartnerBalance(ctx context.Context, partnerID string, userID string, now time.Time) (*domain.Partner, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := lockPartner(ctx, tx, partnerID); err != nil {
		return nil, err
	}

	if _, err := rewriteLedger(ctx, tx, partnerID, userID, now); err != nil {
		return nil, err
	}

	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_id = $1;`
	m, err := scanPartner(tx.QueryRow(ctx, query, partnerID))
	if err != nil {
		return nil, fmt.Errorf("failed to read partner %s after recalculation: %w", partnerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	p := mapping.ToDomainPartner(*m)
	return &p, nil
}
