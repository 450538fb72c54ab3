package broadcast

import (
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// Имена событий, публикуемых диспетчерским движком
const (
	EventIncidentRaised    = "incident_raised"
	EventIncidentAssigned  = "incident_assigned"
	EventIncidentRejected  = "incident_rejected"
	EventIncidentStatus    = "incident_status"
	EventIncidentLocation  = "incident_location"
	EventIncidentResolved  = "incident_resolved"
	EventIncidentCancelled = "incident_cancelled"
)

// OperatorsRoom - комната мониторинга для операторов
const OperatorsRoom = "operators"

// IncidentRoom возвращает имя комнаты инцидента (заявитель, назначенный исполнитель, операторы)
func IncidentRoom(id uuid.UUID) string {
	return "incident:" + id.String()
}

// ResponderRoom возвращает имя персональной комнаты исполнителя для адресных уведомлений
func ResponderRoom(id uuid.UUID) string {
	return "responder:" + id.String()
}

// Event - событие, адресованное одной комнате канала уведомлений
type Event struct {
	Room    string `json:"room"`
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// IncidentRaisedPayload - данные события о новом инциденте
type IncidentRaisedPayload struct {
	IncidentID uuid.UUID           `json:"incident_id"`
	ReporterID uuid.UUID           `json:"reporter_id"`
	Kind       models.IncidentKind `json:"kind"`
	Location   models.Location     `json:"location"`
}

// IncidentAssignedPayload - данные о назначении; содержит только публичные поля исполнителя
type IncidentAssignedPayload struct {
	IncidentID  uuid.UUID               `json:"incident_id"`
	ResponderID uuid.UUID               `json:"responder_id"`
	Responder   models.ResponderProfile `json:"responder"`
}

// IncidentRejectedPayload отправляется проигравшему кандидату
type IncidentRejectedPayload struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Reason     string    `json:"reason"`
}

// IncidentStatusPayload - текстовое обновление статуса по инциденту
type IncidentStatusPayload struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
}

// IncidentLocationPayload - обновление текущей геопозиции инцидента
type IncidentLocationPayload struct {
	IncidentID uuid.UUID       `json:"incident_id"`
	Location   models.Location `json:"location"`
}

// IncidentClosedPayload - данные о закрытии (resolved или cancelled)
type IncidentClosedPayload struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Note       string    `json:"note,omitempty"`
}
