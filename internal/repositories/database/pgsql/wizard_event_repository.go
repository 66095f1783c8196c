package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/models"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWizardEventRepository struct {
	BaseRepository
}

// newPgxWizardEventRepository creates a new repository for the wizard audit journal.
func newPgxWizardEventRepository(pool *pgxpool.Pool) portsrepo.WizardEventRepository {
	return &PgxWizardEventRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.WizardEventRepository = (*PgxWizardEventRepository)(nil)

// AppendEvent inserts one journal row.
func (r *PgxWizardEventRepository) AppendEvent(ctx context.Context, event domain.WizardEvent) error {
	m, err := mapping.ToModelWizardEvent(event)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO wizard_events (event_id, wizard_id, session_id, transaction_id, event_type, step, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.EventID,
		m.WizardID,
		m.SessionID,
		m.TransactionID,
		m.EventType,
		m.Step,
		m.Payload,
		m.OccurredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: wizard event %s", apperrors.ErrDuplicate, m.EventID)
		}
		return fmt.Errorf("failed to insert wizard event %s: %w", m.EventID, err)
	}
	return nil
}

// ListEvents returns a wizard's events oldest first, starting strictly after
// the (AfterTime, AfterEvent) cursor when one is given.
func (r *PgxWizardEventRepository) ListEvents(ctx context.Context, q portsrepo.ListEventsQuery) ([]domain.WizardEvent, error) {
	baseQuery := `
		SELECT event_id, wizard_id, session_id, transaction_id, event_type, step, payload, occurred_at
		FROM wizard_events
		WHERE wizard_id = $1`
	orderByClause := `ORDER BY occurred_at ASC, event_id ASC`
	args := []interface{}{q.WizardID}

	query := baseQuery
	if q.AfterTime != nil {
		args = append(args, *q.AfterTime, q.AfterEvent)
		query += " AND (occurred_at, event_id) > ($2, $3)"
	}
	args = append(args, q.Limit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events of wizard %s: %w", q.WizardID, err)
	}
	defer rows.Close()

	var results []models.WizardEvent
	for rows.Next() {
		var m models.WizardEvent
		if err := rows.Scan(
			&m.EventID,
			&m.WizardID,
			&m.SessionID,
			&m.TransactionID,
			&m.EventType,
			&m.Step,
			&m.Payload,
			&m.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wizard event row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wizard event rows: %w", err)
	}

	return mapping.ToDomainWizardEventSlice(results)
}
