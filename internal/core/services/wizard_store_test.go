package services

import (
	"testing"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(id string) *wizardSession {
	return newWizardSession(id, &ConsoleSession{ID: "session-1"}, 10*time.Millisecond, time.Now())
}

func TestWizardStore_RemovedWizardStaysRemoved(t *testing.T) {
	store := newWizardStore(time.Hour)
	w := newTestWizard("w1")
	store.add(w)

	got, err := store.get("session-1", "w1")
	require.NoError(t, err)
	assert.Same(t, w, got)

	store.remove("w1")

	assert.True(t, w.closed(), "removal discards the wizard")
	assert.False(t, store.touch(w), "a late refresh must not re-insert the wizard")
	assert.Zero(t, store.wizards.ItemCount())

	_, err = store.get("session-1", "w1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWizardStore_OtherSessionCannotSeeWizard(t *testing.T) {
	store := newWizardStore(time.Hour)
	store.add(newTestWizard("w1"))

	_, err := store.get("session-2", "w1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWizardSession_NextListSeqRefusedAfterDiscard(t *testing.T) {
	w := newTestWizard("w1")

	seq, err := w.nextListSeq(time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	w.discard()

	_, err = w.nextListSeq(time.Now())
	assert.ErrorIs(t, err, apperrors.ErrWizardClosed)
	assert.Equal(t, uint64(1), w.client.listSeq)
}
