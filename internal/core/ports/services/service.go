package services

// ServiceContainer holds instances of all the application services.
// It is built once at the composition root and handed to the handlers.
type ServiceContainer struct {
	Auth      AuthSvcFacade
	Reference ReferenceSvc
	Wizard    WizardSvcFacade
}
