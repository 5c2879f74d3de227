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
)

const entryColumns = `entry_id, entry_number, entry_date, reference_type, reference_id, description, total_amount, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// nextEntryNumber claims the next per-year sequence value inside tx. The
// upsert either creates the year's counter row or bumps it, atomically.
func nextEntryNumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	var seq int64
	query := `
		INSERT INTO journal_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	if err := tx.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to advance journal sequence for year %d: %w", year, err)
	}
	return numbering.EntryNumber(year, seq), nil
}

// SaveEntry persists an entry and its lines within one DB transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	// 1. Assign the per-year entry number when the caller left it blank.
	if entry.EntryNumber == "" {
		number, err := nextEntryNumber(ctx, tx, entry.EntryDate.Year())
		if err != nil {
			return nil, err
		}
		entry.EntryNumber = number
	}

	// 2. Insert the entry row. The partial unique index on
	// (reference_type, reference_id) turns a double post into a 23505.
	m := mapping.ToModelJournalEntry(entry)
	var refID sql.NullString
	if m.ReferenceID != "" {
		refID = sql.NullString{String: m.ReferenceID, Valid: true}
	}

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.ReferenceType,
		refID,
		m.Description,
		m.TotalAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: journal entry already posted for %s %s",
				apperrors.ErrDuplicate, m.ReferenceType, m.ReferenceID)
		}
		return nil, fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	// 3. Insert the lines in one batch. Account balances are not touched
	// here: they are projections over the lines, derived on read and
	// refreshed in bulk by the reconciliation sweep. A line naming a missing
	// account fails on the FK and aborts the whole transaction.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for i := range lines {
		lines[i].EntryID = entry.EntryID
		ml := mapping.ToModelJournalLine(lines[i])
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert journal lines for entry %s: %w", m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Lines = lines
	return &entry, nil
}

// FindEntryByID retrieves a journal entry (without lines) by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	var refID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.ReferenceType,
		&refID,
		&m.Description,
		&m.TotalAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if refID.Valid {
		m.ReferenceID = refID.String
	}
	return &m, nil
}

// FindEntriesByReference retrieves every entry posted for a reference pair.
func (r *PgxJournalRepository) FindEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, string(refType), refID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for %s %s: %w", refType, refID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row for %s %s: %w", refType, refID, err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows for %s %s: %w", refType, refID, err)
	}

	return entries, nil
}

// ListEntries retrieves a paginated list of entries using token-based
// pagination over the stable (entry_date, created_at) descending order.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// DeleteEntriesByReference removes all entries for a reference pair. Lines
// go with their entries via the cascade. Deleting a missing reference deletes
// zero rows.
func (r *PgxJournalRepository) DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	query := `DELETE FROM journal_entries WHERE reference_type = $1 AND reference_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, string(refType), refID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries for %s %s: %w", refType, refID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteEntryByID removes a single entry; its lines go via the cascade.
func (r *PgxJournalRepository) DeleteEntryByID(ctx context.Context, entryID string) error {
	query := `DELETE FROM journal_entries WHERE entry_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLinesByEntryID retrieves all lines of one entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for several entries, grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for entry IDs: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row during batch fetch: %w", err)
		}
		domainLine := mapping.ToDomainJournalLine(l)
		linesMap[domainLine.EntryID] = append(linesMap[domainLine.EntryID], domainLine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows during batch fetch: %w", err)
	}

	// Entries with no lines still get an entry (empty slice).
	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.JournalLine{}
		}
	}

	return linesMap, nil
}

// ListLinesByAccountID retrieves a paginated list of lines for one account,
// newest first, using the same token scheme as ListEntries.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (e.entry_date, l.created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.JournalLine
		entryDate time.Time
	}
	scanned := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var lw lineWithDate
		err := rows.Scan(
			&lw.line.LineID,
			&lw.line.EntryID,
			&lw.line.AccountID,
			&lw.line.Debit,
			&lw.line.Credit,
			&lw.line.Description,
			&lw.line.CreatedAt,
			&lw.line.CreatedBy,
			&lw.line.LastUpdatedAt,
			&lw.line.LastUpdatedBy,
			&lw.entryDate,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal line row for account %s: %w", accountID, err)
		}
		scanned = append(scanned, lw)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal line rows for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	results := scanned
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &token
		results = scanned[:limit]
	}

	lines := make([]domain.JournalLine, len(results))
	for i, lw := range results {
		lines[i] = mapping.ToDomainJournalLine(lw.line)
	}
	return lines, nextTokenVal, nil
}
