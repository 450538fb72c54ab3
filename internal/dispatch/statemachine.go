package dispatch

import (
	"fmt"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// transitions - граф жизненного цикла инцидента. Единственное место, где описаны
// допустимые переходы: active -> assigned -> resolved, отмена возможна из любого
// незакрытого состояния. Из конечных состояний переходов нет.
var transitions = map[models.IncidentState]map[models.IncidentState]bool{
	models.StateActive: {
		models.StateAssigned:  true,
		models.StateCancelled: true,
	},
	models.StateAssigned: {
		models.StateResolved:  true,
		models.StateCancelled: true,
	},
}

// CanTransition сообщает, допустим ли переход from -> to
func CanTransition(from, to models.IncidentState) bool {
	return transitions[from][to]
}

// ValidateTransition возвращает ErrInvalidTransition для недопустимого перехода
func ValidateTransition(from, to models.IncidentState) error {
	if transitions[from][to] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
