package pgsql

import (
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	partnerRepo := newPgxPartnerRepository(dbPool)
	partnerLedgerRepo := newPgxPartnerLedgerRepository(dbPool)
	inventoryRepo := newPgxInventoryMovementRepository(dbPool)
	auditRepo := newPgxAuditLogRepository(dbPool)
	integrityRepo := newPgxIntegrityRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		JournalRepo:       journalRepo,
		PartnerRepo:       partnerRepo,
		PartnerLedgerRepo: partnerLedgerRepo,
		InventoryRepo:     inventoryRepo,
		AuditRepo:         auditRepo,
		IntegrityRepo:     integrityRepo,
	}
}
