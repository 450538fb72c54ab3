package models

import "github.com/google/uuid"

// Candidate - кандидат-исполнитель, подобранный справочником под конкретный инцидент.
// Запись временная: движок использует ее один раз для построения списка уведомлений.
type Candidate struct {
	ResponderID    uuid.UUID `json:"responder_id"`
	Name           string    `json:"name"`
	ContactHandle  string    `json:"contact_handle,omitempty"`
	DistanceMeters float64   `json:"distance_meters"`
}

// ResponderProfile - публичные данные исполнителя, передаваемые заявителю при назначении
type ResponderProfile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
}

// EmergencyContact - экстренный контакт из профиля пользователя
type EmergencyContact struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone"`
}
