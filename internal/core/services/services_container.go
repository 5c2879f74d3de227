package services

import (
	portsrepo "github.com/qaidhq/qaid_ledger/internal/core/ports/repositories"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account first: the journal service resolves system accounts through it
	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account)
	container.Partner = NewPartnerService(repos.PartnerRepo, repos.PartnerLedgerRepo)
	container.Posting = NewPostingService(container.Journal, container.Partner, repos.InventoryRepo, repos.AuditRepo)
	container.Integrity = NewIntegrityService(repos.IntegrityRepo, container.Account, container.Partner)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade   = (*AccountService)(nil)
	_ portssvc.JournalSvcFacade   = (*JournalService)(nil)
	_ portssvc.PartnerSvcFacade   = (*PartnerService)(nil)
	_ portssvc.PostingSvcFacade   = (*PostingService)(nil)
	_ portssvc.IntegritySvcFacade = (*IntegrityService)(nil)
)
