package dto

import (
	"testing"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func statuses(p []StepProgress) []StepStatus {
	out := make([]StepStatus, len(p))
	for i, s := range p {
		out[i] = s.Status
	}
	return out
}

func TestBuildProgress(t *testing.T) {
	assert.Equal(t, []StepStatus{StepCurrent, StepPending, StepPending, StepPending}, statuses(BuildProgress(domain.StepClient)))
	assert.Equal(t, []StepStatus{StepDone, StepDone, StepCurrent, StepPending}, statuses(BuildProgress(domain.StepValues)))
	assert.Equal(t, []StepStatus{StepDone, StepDone, StepDone, StepDone}, statuses(BuildProgress(domain.StepFinished)))
}
