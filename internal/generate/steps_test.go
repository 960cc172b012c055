package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusByID(t *testing.T, steps []Step, id string) StepStatus {
	t.Helper()
	for _, s := range steps {
		if s.ID == id {
			return s.Status
		}
	}
	t.Fatalf("step %q not found", id)
	return ""
}

func TestAdvanceCompletesEarlierAndKeepsLaterPending(t *testing.T) {
	steps := NewSteps()

	advance(steps, StepCSS, StepInProgress)

	assert.Equal(t, StepCompleted, statusByID(t, steps, StepInit))
	assert.Equal(t, StepCompleted, statusByID(t, steps, StepHTML))
	assert.Equal(t, StepInProgress, statusByID(t, steps, StepCSS))
	assert.Equal(t, StepPending, statusByID(t, steps, StepJS))
	assert.Equal(t, StepPending, statusByID(t, steps, StepComponents))
	assert.Equal(t, StepPending, statusByID(t, steps, StepImages))
	assert.Equal(t, StepPending, statusByID(t, steps, StepFinalize))
}

func TestAdvanceDoesNotOverrideErrors(t *testing.T) {
	steps := NewSteps()
	advance(steps, StepCSS, StepInProgress)
	failCurrent(steps)

	advance(steps, StepFinalize, StepInProgress)

	assert.Equal(t, StepError, statusByID(t, steps, StepCSS))
}

func TestAdvanceUnknownIDIsNoop(t *testing.T) {
	steps := NewSteps()
	before := cloneSteps(steps)

	advance(steps, "nope", StepInProgress)

	assert.Equal(t, before, steps)
}

func TestFailCurrentPreservesCompletedSteps(t *testing.T) {
	steps := NewSteps()
	advance(steps, StepJS, StepInProgress)

	failCurrent(steps)

	assert.Equal(t, StepCompleted, statusByID(t, steps, StepInit))
	assert.Equal(t, StepCompleted, statusByID(t, steps, StepHTML))
	assert.Equal(t, StepCompleted, statusByID(t, steps, StepCSS))
	assert.Equal(t, StepError, statusByID(t, steps, StepJS))
	// Nothing past the failure changes.
	assert.Equal(t, StepPending, statusByID(t, steps, StepComponents))
}

func TestCompleteAllSparesErrors(t *testing.T) {
	steps := NewSteps()
	advance(steps, StepCSS, StepInProgress)
	failCurrent(steps)

	completeAll(steps)

	assert.Equal(t, StepError, statusByID(t, steps, StepCSS))
	assert.Equal(t, StepCompleted, statusByID(t, steps, StepFinalize))
}

func TestNewStepsAllPending(t *testing.T) {
	steps := NewSteps()
	require.Len(t, steps, 7)
	for _, s := range steps {
		assert.Equal(t, StepPending, s.Status)
	}
}
