package pgsql

import (
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repositories next to the
// backend connector.
func NewRepositoryProvider(dbPool *pgxpool.Pool, backend portsrepo.BackendConnector) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Backend:         backend,
		WizardEventRepo: newPgxWizardEventRepository(dbPool),
	}
}
