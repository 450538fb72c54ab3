package dispatch

import (
	"testing"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.IncidentState
		to      models.IncidentState
		allowed bool
	}{
		{"active -> assigned", models.StateActive, models.StateAssigned, true},
		{"active -> cancelled", models.StateActive, models.StateCancelled, true},
		{"assigned -> resolved", models.StateAssigned, models.StateResolved, true},
		{"assigned -> cancelled", models.StateAssigned, models.StateCancelled, true},
		{"active -> resolved", models.StateActive, models.StateResolved, false},
		{"assigned -> active", models.StateAssigned, models.StateActive, false},
		{"resolved -> assigned", models.StateResolved, models.StateAssigned, false},
		{"resolved -> cancelled", models.StateResolved, models.StateCancelled, false},
		{"cancelled -> active", models.StateCancelled, models.StateActive, false},
		{"cancelled -> cancelled", models.StateCancelled, models.StateCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(models.StateActive, models.StateAssigned))

	err := ValidateTransition(models.StateResolved, models.StateCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTerminalStatesHaveNoOutgoingTransitions(t *testing.T) {
	all := []models.IncidentState{models.StateActive, models.StateAssigned, models.StateResolved, models.StateCancelled}
	for _, from := range all {
		if !from.Terminal() {
			continue
		}
		for _, to := range all {
			assert.Falsef(t, CanTransition(from, to), "terminal state %s must not allow transition to %s", from, to)
		}
	}
}
