package services

// ServiceContainer bundles every service facade the handlers depend on.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Partner   PartnerSvcFacade
	Posting   PostingSvcFacade
	Integrity IntegritySvcFacade
}
