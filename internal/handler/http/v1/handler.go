package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/broadcast"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/dispatch"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	engine   dispatch.Engine
	hub      *broadcast.Hub
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(engine dispatch.Engine, hub *broadcast.Hub, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		engine:   engine,
		hub:      hub,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// @Summary Raise an SOS incident
// @Description Register a new emergency incident and notify candidate responders. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body RaiseIncidentRequest true "Incident raise request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency/sos [post]
func (h *Handler) raiseIncident(c *gin.Context) {
	var input RaiseIncidentRequest
	log := h.logger.WithField("method", "raiseIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reporterID, err := uuid.Parse(input.ReporterID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reporter ID"})
		return
	}

	location := models.Location{
		Longitude: input.Longitude,
		Latitude:  input.Latitude,
		Address:   input.Address,
	}
	incident, err := h.engine.RaiseIncident(c.Request.Context(), reporterID, models.IncidentKind(input.Kind), location)
	if err != nil {
		log.WithError(err).Error("Failed to raise incident")
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Accept an incident
// @Description Accept an active incident as a responder. Exactly one responder wins; the rest get already_assigned. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param accept body AcceptIncidentRequest true "Accept request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Already assigned or invalid transition"
// @Router /emergency/accept/{id} [put]
func (h *Handler) acceptIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "acceptIncident").WithField("id", id)

	var input AcceptIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responderID, err := uuid.Parse(input.ResponderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid responder ID"})
		return
	}

	incident, err := h.engine.AcceptIncident(c.Request.Context(), id, responderID)
	if err != nil {
		log.WithError(err).Warn("Failed to accept incident")
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Resolve an incident
// @Description Resolve an assigned incident with a closing note. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param resolve body CloseIncidentRequest true "Resolve request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /emergency/resolve/{id} [put]
func (h *Handler) resolveIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "resolveIncident").WithField("id", id)

	var input CloseIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, err := uuid.Parse(input.ActorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor ID"})
		return
	}

	incident, err := h.engine.ResolveIncident(c.Request.Context(), id, actorID, input.Note)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve incident")
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Cancel an incident
// @Description Cancel a non-terminal incident (by reporter or operator). Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param cancel body CloseIncidentRequest true "Cancel request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /emergency/cancel/{id} [put]
func (h *Handler) cancelIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "cancelIncident").WithField("id", id)

	var input CloseIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, err := uuid.Parse(input.ActorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor ID"})
		return
	}

	incident, err := h.engine.CancelIncident(c.Request.Context(), id, actorID, input.Note)
	if err != nil {
		log.WithError(err).Warn("Failed to cancel incident")
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Post a status update
// @Description Post a textual status update to an assigned incident. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param status body StatusUpdateRequest true "Status update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /emergency/{id}/status [post]
func (h *Handler) postStatusUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "postStatusUpdate").WithField("id", id)

	var input StatusUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, err := uuid.Parse(input.ActorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor ID"})
		return
	}

	if err := h.engine.PostStatusUpdate(c.Request.Context(), id, actorID, input.Status, input.Note); err != nil {
		log.WithError(err).Warn("Failed to post status update")
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Post a location update
// @Description Refresh the current location of an assigned incident. Relayed to the incident room, not recorded in history. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param location body LocationUpdateRequest true "Location update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /emergency/{id}/location [post]
func (h *Handler) postLocationUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "postLocationUpdate").WithField("id", id)

	var input LocationUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, err := uuid.Parse(input.ActorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor ID"})
		return
	}

	location := models.Location{
		Longitude: input.Longitude,
		Latitude:  input.Latitude,
		Address:   input.Address,
	}
	if err := h.engine.PostLocationUpdate(c.Request.Context(), id, actorID, location); err != nil {
		log.WithError(err).Warn("Failed to post location update")
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get incident by ID
// @Description Get a single incident with its full history and notified candidates. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /emergency/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.engine.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from engine")
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of incidents for the operator dashboard. Requires API key.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	incidents, err := h.engine.ListIncidents(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from engine")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get dispatch statistics
// @Description Get counts of active, assigned and recently resolved incidents. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.engine.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from engine")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Subscribe to dispatch events
// @Description Upgrade to WebSocket. Clients join incident rooms with {"action":"join_room","room":"incident:<id>"}.
// @Tags Realtime
// @Router /ws [get]
func (h *Handler) serveWS(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError транслирует ошибки движка в HTTP-статусы.
// Проигранная гонка за принятие - это конфликт, а не ошибка сервера.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dispatch.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dispatch.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, dispatch.ErrAlreadyAssigned):
		c.JSON(http.StatusConflict, gin.H{"error": "already_assigned"})
	case errors.Is(err, dispatch.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
