package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты диспетчеризации защищены API-ключом
	emergency := api.Group("/emergency")
	emergency.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		emergency.POST("/sos", h.raiseIncident)
		emergency.PUT("/accept/:id", h.acceptIncident)
		emergency.PUT("/resolve/:id", h.resolveIncident)
		emergency.PUT("/cancel/:id", h.cancelIncident)
		emergency.POST("/:id/status", h.postStatusUpdate)
		emergency.POST("/:id/location", h.postLocationUpdate)
		emergency.GET("", h.listIncidents)
		emergency.GET("/stats", h.getStats)
		emergency.GET("/:id", h.getIncident)
	}

	// WebSocket-подписка на события комнат
	api.GET("/ws", h.serveWS)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
