package services

import (
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/platform/config"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, analytics *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	// Sessions come first: reference data and wizards hook into their teardown.
	sessions := NewSessionStore(repos.Backend)

	reference := NewReferenceService(sessions, cfg.ReferenceCacheTTL)

	wizard := NewWizardService(WizardConfig{
		SessionTTL:         cfg.WizardSessionTTL,
		SearchDebounce:     cfg.SearchDebounce,
		MaxUploadFiles:     cfg.MaxUploadFiles,
		MaxUploadFileBytes: cfg.MaxUploadFileBytes,
	}, sessions, reference, repos.WizardEventRepo, WithAnalytics(analytics))

	auth := NewAuthService(AuthConfig{
		JWTSecret: cfg.JWTSecret,
		JWTIssuer: cfg.JWTIssuer,
		JWTExpiry: cfg.JWTExpiryDuration,
	}, repos.Backend, sessions)

	return &portssvc.ServiceContainer{
		Auth:      auth,
		Reference: reference,
		Wizard:    wizard,
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade   = (*AuthService)(nil)
	_ portssvc.ReferenceSvc    = (*ReferenceService)(nil)
	_ portssvc.WizardSvcFacade = (*WizardService)(nil)
)
