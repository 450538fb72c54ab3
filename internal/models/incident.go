package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentKind - тип экстренного происшествия
type IncidentKind string

const (
	KindSOS       IncidentKind = "sos"
	KindAccident  IncidentKind = "accident"
	KindMedical   IncidentKind = "medical"
	KindBreakdown IncidentKind = "breakdown"
)

// Valid проверяет, что тип происшествия известен системе
func (k IncidentKind) Valid() bool {
	switch k {
	case KindSOS, KindAccident, KindMedical, KindBreakdown:
		return true
	}
	return false
}

// IncidentState - состояние жизненного цикла инцидента
type IncidentState string

const (
	StateActive    IncidentState = "active"
	StateAssigned  IncidentState = "assigned"
	StateResolved  IncidentState = "resolved"
	StateCancelled IncidentState = "cancelled"
)

// Terminal сообщает, является ли состояние конечным
func (s IncidentState) Terminal() bool {
	return s == StateResolved || s == StateCancelled
}

// DeliveryStatus - статус доставки уведомления кандидату или контакту
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Location - текущая геопозиция инцидента (долгота/широта + адрес)
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Address   string  `json:"address,omitempty"`
}

// ValidCoordinates проверяет диапазоны координат
func (l Location) ValidCoordinates() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// HistoryEntry - запись аудит-журнала переходов инцидента.
// Порядок записей назначается хранилищем, не вызывающей стороной.
type HistoryEntry struct {
	ID        int64         `json:"id"`
	FromState IncidentState `json:"from_state,omitempty"`
	ToState   IncidentState `json:"to_state"`
	ActorID   string        `json:"actor_id,omitempty"`
	Note      string        `json:"note,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// NotifiedCandidate - запись об уведомленном кандидате-исполнителе.
// Список только пополняется, статус доставки может обновляться.
type NotifiedCandidate struct {
	ResponderID    uuid.UUID      `json:"responder_id"`
	Name           string         `json:"name"`
	ContactHandle  string         `json:"contact_handle,omitempty"`
	DistanceMeters float64        `json:"distance_meters"`
	Round          int            `json:"round"`
	Status         DeliveryStatus `json:"status"`
	NotifiedAt     time.Time      `json:"notified_at"`
}

// NotifiedContact - экстренный контакт путешественника, уведомленный об инциденте
type NotifiedContact struct {
	Name     string         `json:"name"`
	Relation string         `json:"relation,omitempty"`
	Phone    string         `json:"phone"`
	Status   DeliveryStatus `json:"status"`
}

// Incident - происшествие, отслеживаемое диспетчерским движком от создания до закрытия
type Incident struct {
	ID                  uuid.UUID           `json:"id"`
	ReporterID          uuid.UUID           `json:"reporter_id"`
	Kind                IncidentKind        `json:"kind"`
	Location            Location            `json:"location"`
	State               IncidentState       `json:"state"`
	AssignedResponderID *uuid.UUID          `json:"assigned_responder_id,omitempty"`
	NotifiedCandidates  []NotifiedCandidate `json:"notified_candidates,omitempty"`
	NotifiedContacts    []NotifiedContact   `json:"notified_contacts,omitempty"`
	History             []HistoryEntry      `json:"history,omitempty"`
	ResolutionNote      string              `json:"resolution_note,omitempty"`
	ResolvedAt          *time.Time          `json:"resolved_at,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// DispatchStats - сводка по инцидентам для операторской панели
type DispatchStats struct {
	ActiveCount      int `json:"active_count"`
	AssignedCount    int `json:"assigned_count"`
	ResolvedInWindow int `json:"resolved_in_window"`
	WindowMinutes    int `json:"window_minutes"`
}

// CapabilitiesForKind возвращает требуемые специализации исполнителей для типа происшествия
func CapabilitiesForKind(kind IncidentKind) []string {
	switch kind {
	case KindBreakdown:
		return []string{"mechanic", "mobile_mechanic", "garage"}
	case KindAccident:
		return []string{"towing", "garage"}
	case KindMedical:
		return []string{"medical"}
	default:
		return []string{"towing", "mechanic"}
	}
}
