package dispatch

import (
	"errors"
	"fmt"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

var (
	// ErrValidation - входные данные отклонены до обращения к хранилищу
	ErrValidation = errors.New("validation failed")
	// ErrNotFound - инцидент с таким id не существует
	ErrNotFound = errors.New("incident not found")
	// ErrInvalidTransition - операция недопустима из текущего состояния инцидента
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrAlreadyAssigned - гонка за принятие инцидента проиграна другому исполнителю
	ErrAlreadyAssigned = errors.New("already_assigned")
	// ErrStateConflict - условная запись в хранилище не прошла проверку состояния
	ErrStateConflict = errors.New("incident state conflict")
)

// StateConflictError возвращается хранилищем, когда состояние инцидента на момент
// записи не совпало с ожидаемым. Несет фактическое состояние, чтобы движок мог
// отличить проигранную гонку за принятие от попытки изменить закрытый инцидент.
type StateConflictError struct {
	Expected models.IncidentState
	Current  models.IncidentState
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("state conflict: expected %q, current %q", e.Expected, e.Current)
}

func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}
