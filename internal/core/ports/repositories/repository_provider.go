package repositories

// RepositoryProvider groups the outbound adapters the services are built on.
type RepositoryProvider struct {
	Backend         BackendConnector
	WizardEventRepo WizardEventRepository
}
