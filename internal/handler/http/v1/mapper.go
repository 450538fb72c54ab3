package v1

import "github.com/shenikar/emergency_dispatch_system/internal/models"

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                  model.ID,
		ReporterID:          model.ReporterID,
		Kind:                string(model.Kind),
		Latitude:            model.Location.Latitude,
		Longitude:           model.Location.Longitude,
		Address:             model.Location.Address,
		State:               string(model.State),
		AssignedResponderID: model.AssignedResponderID,
		ResolutionNote:      model.ResolutionNote,
		ResolvedAt:          model.ResolvedAt,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}

	for _, c := range model.NotifiedCandidates {
		resp.NotifiedCandidates = append(resp.NotifiedCandidates, CandidateResponse{
			ResponderID:    c.ResponderID,
			Name:           c.Name,
			DistanceMeters: c.DistanceMeters,
			Round:          c.Round,
			Status:         string(c.Status),
		})
	}
	for _, c := range model.NotifiedContacts {
		resp.NotifiedContacts = append(resp.NotifiedContacts, ContactResponse{
			Name:     c.Name,
			Relation: c.Relation,
			Phone:    c.Phone,
			Status:   string(c.Status),
		})
	}
	for _, h := range model.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			FromState: string(h.FromState),
			ToState:   string(h.ToState),
			ActorID:   h.ActorID,
			Note:      h.Note,
			CreatedAt: h.CreatedAt,
		})
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToStatsResponse преобразует сводку в DTO для ответа
func ModelToStatsResponse(stats *models.DispatchStats) *StatsResponse {
	return &StatsResponse{
		ActiveCount:      stats.ActiveCount,
		AssignedCount:    stats.AssignedCount,
		ResolvedInWindow: stats.ResolvedInWindow,
		WindowMinutes:    stats.WindowMinutes,
	}
}
