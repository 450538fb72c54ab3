package v1

import (
	"time"

	"github.com/google/uuid"
)

// RaiseIncidentRequest DTO для подачи сигнала SOS
// @Description DTO для подачи сигнала SOS
type RaiseIncidentRequest struct {
	ReporterID string  `json:"reporter_id" validate:"required,uuid"`
	Kind       string  `json:"kind" validate:"required,oneof=sos accident medical breakdown"`
	Latitude   float64 `json:"latitude" validate:"required,latitude"`
	Longitude  float64 `json:"longitude" validate:"required,longitude"`
	Address    string  `json:"address,omitempty"`
}

// AcceptIncidentRequest DTO для принятия инцидента исполнителем
// @Description DTO для принятия инцидента исполнителем
type AcceptIncidentRequest struct {
	ResponderID string `json:"responder_id" validate:"required,uuid"`
}

// CloseIncidentRequest DTO для завершения или отмены инцидента
// @Description DTO для завершения или отмены инцидента
type CloseIncidentRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid"`
	Note    string `json:"note,omitempty"`
}

// StatusUpdateRequest DTO для текстового обновления статуса
// @Description DTO для текстового обновления статуса
type StatusUpdateRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid"`
	Status  string `json:"status" validate:"required,min=2,max=255"`
	Note    string `json:"note,omitempty"`
}

// LocationUpdateRequest DTO для обновления геопозиции инцидента
// @Description DTO для обновления геопозиции инцидента
type LocationUpdateRequest struct {
	ActorID   string  `json:"actor_id" validate:"required,uuid"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
	Address   string  `json:"address,omitempty"`
}

// HistoryEntryResponse DTO записи аудит-журнала
type HistoryEntryResponse struct {
	FromState string    `json:"from_state,omitempty"`
	ToState   string    `json:"to_state"`
	ActorID   string    `json:"actor_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CandidateResponse DTO уведомленного кандидата
type CandidateResponse struct {
	ResponderID    uuid.UUID `json:"responder_id"`
	Name           string    `json:"name"`
	DistanceMeters float64   `json:"distance_meters"`
	Round          int       `json:"round"`
	Status         string    `json:"status"`
}

// ContactResponse DTO уведомленного экстренного контакта
type ContactResponse struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                  uuid.UUID              `json:"id"`
	ReporterID          uuid.UUID              `json:"reporter_id"`
	Kind                string                 `json:"kind"`
	Latitude            float64                `json:"latitude"`
	Longitude           float64                `json:"longitude"`
	Address             string                 `json:"address,omitempty"`
	State               string                 `json:"state"`
	AssignedResponderID *uuid.UUID             `json:"assigned_responder_id,omitempty"`
	NotifiedCandidates  []CandidateResponse    `json:"notified_candidates,omitempty"`
	NotifiedContacts    []ContactResponse      `json:"notified_contacts,omitempty"`
	History             []HistoryEntryResponse `json:"history,omitempty"`
	ResolutionNote      string                 `json:"resolution_note,omitempty"`
	ResolvedAt          *time.Time             `json:"resolved_at,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// StatsResponse DTO для ответа со сводкой по инцидентам
// @Description DTO для ответа со сводкой по инцидентам
type StatsResponse struct {
	ActiveCount      int `json:"active_count"`
	AssignedCount    int `json:"assigned_count"`
	ResolvedInWindow int `json:"resolved_in_window"`
	WindowMinutes    int `json:"window_minutes"`
}
