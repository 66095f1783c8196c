package mapping

import (
	"testing"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardEventMapping(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("transaction id is nullable", func(t *testing.T) {
		m, err := ToModelWizardEvent(domain.WizardEvent{ID: "e1", WizardID: "w1", Type: domain.EventWizardStarted, Step: domain.StepClient, OccurredAt: at})
		require.NoError(t, err)
		assert.Nil(t, m.TransactionID)
		assert.JSONEq(t, `{}`, string(m.Payload))

		d, err := ToDomainWizardEvent(m)
		require.NoError(t, err)
		assert.Empty(t, d.TransactionID)
		assert.Nil(t, d.Payload)
	})

	t.Run("payload survives", func(t *testing.T) {
		m, err := ToModelWizardEvent(domain.WizardEvent{
			ID: "e2", WizardID: "w1", TransactionID: "tx-9", Type: domain.EventValuesSaved,
			Step: domain.StepValues, Payload: map[string]any{"documents": 2}, OccurredAt: at,
		})
		require.NoError(t, err)
		require.NotNil(t, m.TransactionID)
		assert.Equal(t, "tx-9", *m.TransactionID)

		d, err := ToDomainWizardEvent(m)
		require.NoError(t, err)
		assert.Equal(t, "tx-9", d.TransactionID)
		assert.EqualValues(t, 2, d.Payload["documents"])
		assert.Equal(t, domain.EventValuesSaved, d.Type)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		_, err := ToDomainWizardEventSlice([]models.WizardEvent{{EventID: "bad", Payload: []byte("{")}})
		assert.Error(t, err)
	})
}
