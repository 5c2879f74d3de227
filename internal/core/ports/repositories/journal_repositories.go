package repositories

import (
	"context"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry (without lines) by its identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByReference retrieves every entry posted for a business
	// document reference pair. Normally at most one row.
	FindEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries ordered by
	// (entry_date, created_at) descending, using token pagination.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry and its lines in one database transaction,
	// assigning the per-year entry number when absent. A duplicate
	// (reference_type, reference_id) pair fails with apperrors.ErrDuplicate.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)

	// DeleteEntriesByReference removes all entries (and their lines) for a
	// reference pair. Returns the number of entries deleted; deleting a
	// missing reference is a no-op, not an error.
	DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error)

	// DeleteEntryByID removes a single entry and its lines. Returns
	// apperrors.ErrNotFound when no entry has that ID.
	DeleteEntryByID(ctx context.Context, entryID string) error
}

// LineReader defines read operations for journal line data
type LineReader interface {
	// FindLinesByEntryID retrieves all lines of one entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for several entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated list of lines for one account.
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
