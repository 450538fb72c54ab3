package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/broadcast"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/dispatch"
	"github.com/shenikar/emergency_dispatch_system/internal/dispatch/mocks"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным движком
func newTestHandler(t *testing.T) (*Handler, *mocks.MockEngine, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockEngine := mocks.NewMockEngine(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(mockEngine, broadcast.NewHub(logger), logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockEngine, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader() map[string]string {
	return map[string]string{"X-API-Key": "test-api-key"}
}

func TestRaiseIncident_Created(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	reporterID := uuid.New()
	incidentID := uuid.New()
	reqBody := RaiseIncidentRequest{
		ReporterID: reporterID.String(),
		Kind:       "breakdown",
		Latitude:   48.85,
		Longitude:  2.35,
		Address:    "Paris",
	}
	expectedIncident := &models.Incident{
		ID:         incidentID,
		ReporterID: reporterID,
		Kind:       models.KindBreakdown,
		Location:   models.Location{Latitude: 48.85, Longitude: 2.35, Address: "Paris"},
		State:      models.StateActive,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	mockEngine.EXPECT().
		RaiseIncident(gomock.Any(), reporterID, models.KindBreakdown, expectedIncident.Location).
		Return(expectedIncident, nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergency/sos", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "active", resp.State)
	assert.Equal(t, 48.85, resp.Latitude)
}

func TestRaiseIncident_InvalidBody(t *testing.T) {
	_, _, router := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"не JSON", "{"},
		{"пустое тело", "{}"},
		{"неизвестный тип происшествия", fmt.Sprintf(`{"reporter_id":%q,"kind":"fire","latitude":10,"longitude":20}`, uuid.New())},
		{"широта вне диапазона", fmt.Sprintf(`{"reporter_id":%q,"kind":"sos","latitude":91,"longitude":20}`, uuid.New())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := makeRequest(router, "POST", "/api/v1/emergency/sos", bytes.NewBufferString(tt.body), authHeader())
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRaiseIncident_Unauthorized(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/emergency/sos", bytes.NewBufferString("{}"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "POST", "/api/v1/emergency/sos", bytes.NewBufferString("{}"), map[string]string{"X-API-Key": "wrong-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAcceptIncident_OK(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	responderID := uuid.New()
	assigned := &models.Incident{
		ID:                  incidentID,
		State:               models.StateAssigned,
		AssignedResponderID: &responderID,
	}

	mockEngine.EXPECT().
		AcceptIncident(gomock.Any(), incidentID, responderID).
		Return(assigned, nil).Times(1)

	body := fmt.Sprintf(`{"responder_id":%q}`, responderID)
	w := makeRequest(router, "PUT", "/api/v1/emergency/accept/"+incidentID.String(), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "assigned", resp.State)
	require.NotNil(t, resp.AssignedResponderID)
	assert.Equal(t, responderID, *resp.AssignedResponderID)
}

func TestAcceptIncident_AlreadyAssignedConflict(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	responderID := uuid.New()

	mockEngine.EXPECT().
		AcceptIncident(gomock.Any(), incidentID, responderID).
		Return(nil, fmt.Errorf("incident %s: %w", incidentID, dispatch.ErrAlreadyAssigned)).Times(1)

	body := fmt.Sprintf(`{"responder_id":%q}`, responderID)
	w := makeRequest(router, "PUT", "/api/v1/emergency/accept/"+incidentID.String(), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already_assigned")
}

func TestAcceptIncident_InvalidIncidentID(t *testing.T) {
	_, _, router := newTestHandler(t)

	body := fmt.Sprintf(`{"responder_id":%q}`, uuid.New())
	w := makeRequest(router, "PUT", "/api/v1/emergency/accept/not-a-uuid", bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveIncident_OK(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	actorID := uuid.New()
	resolved := &models.Incident{ID: incidentID, State: models.StateResolved, ResolutionNote: "done"}

	mockEngine.EXPECT().
		ResolveIncident(gomock.Any(), incidentID, actorID, "done").
		Return(resolved, nil).Times(1)

	body := fmt.Sprintf(`{"actor_id":%q,"note":"done"}`, actorID)
	w := makeRequest(router, "PUT", "/api/v1/emergency/resolve/"+incidentID.String(), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resolved")
}

func TestResolveIncident_InvalidTransition(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	actorID := uuid.New()

	mockEngine.EXPECT().
		ResolveIncident(gomock.Any(), incidentID, actorID, "").
		Return(nil, fmt.Errorf("%w: cannot resolve incident in state %q", dispatch.ErrInvalidTransition, models.StateActive)).Times(1)

	body := fmt.Sprintf(`{"actor_id":%q}`, actorID)
	w := makeRequest(router, "PUT", "/api/v1/emergency/resolve/"+incidentID.String(), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelIncident_OK(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	actorID := uuid.New()
	cancelled := &models.Incident{ID: incidentID, State: models.StateCancelled}

	mockEngine.EXPECT().
		CancelIncident(gomock.Any(), incidentID, actorID, "no longer needed").
		Return(cancelled, nil).Times(1)

	body := fmt.Sprintf(`{"actor_id":%q,"note":"no longer needed"}`, actorID)
	w := makeRequest(router, "PUT", "/api/v1/emergency/cancel/"+incidentID.String(), bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
}

func TestPostStatusUpdate_NoContent(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	actorID := uuid.New()

	mockEngine.EXPECT().
		PostStatusUpdate(gomock.Any(), incidentID, actorID, "en_route", "5 min").
		Return(nil).Times(1)

	body := fmt.Sprintf(`{"actor_id":%q,"status":"en_route","note":"5 min"}`, actorID)
	w := makeRequest(router, "POST", "/api/v1/emergency/"+incidentID.String()+"/status", bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPostStatusUpdate_NotFound(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	actorID := uuid.New()

	mockEngine.EXPECT().
		PostStatusUpdate(gomock.Any(), incidentID, actorID, "en_route", "").
		Return(dispatch.ErrNotFound).Times(1)

	body := fmt.Sprintf(`{"actor_id":%q,"status":"en_route"}`, actorID)
	w := makeRequest(router, "POST", "/api/v1/emergency/"+incidentID.String()+"/status", bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostLocationUpdate_NoContent(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	actorID := uuid.New()
	location := models.Location{Latitude: 48.86, Longitude: 2.36}

	mockEngine.EXPECT().
		PostLocationUpdate(gomock.Any(), incidentID, actorID, location).
		Return(nil).Times(1)

	body := fmt.Sprintf(`{"actor_id":%q,"latitude":48.86,"longitude":2.36}`, actorID)
	w := makeRequest(router, "POST", "/api/v1/emergency/"+incidentID.String()+"/location", bytes.NewBufferString(body), authHeader())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetIncident_OK(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()
	incident := &models.Incident{
		ID:    incidentID,
		Kind:  models.KindMedical,
		State: models.StateActive,
		History: []models.HistoryEntry{
			{ToState: models.StateActive, Note: "incident raised", CreatedAt: time.Now()},
		},
	}

	mockEngine.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(incident, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergency/"+incidentID.String(), nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "medical", resp.Kind)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "incident raised", resp.History[0].Note)
}

func TestGetIncident_NotFound(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidentID := uuid.New()

	mockEngine.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, dispatch.ErrNotFound).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergency/"+incidentID.String(), nil, authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListIncidents_OK(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	incidents := []*models.Incident{
		{ID: uuid.New(), State: models.StateActive},
		{ID: uuid.New(), State: models.StateResolved},
	}

	mockEngine.EXPECT().
		ListIncidents(gomock.Any(), 2, 5).
		Return(incidents, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergency?page=2&pageSize=5", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetStats_OK(t *testing.T) {
	_, mockEngine, router := newTestHandler(t)
	stats := &models.DispatchStats{ActiveCount: 4, AssignedCount: 1, ResolvedInWindow: 9, WindowMinutes: 60}

	mockEngine.EXPECT().
		GetStats(gomock.Any()).
		Return(stats, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergency/stats", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.ActiveCount)
	assert.Equal(t, 9, resp.ResolvedInWindow)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
