package handlers

import (
	"net/http"

	"villafinder/services/orchestrator"
	"villafinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves the session view, theme and banner.
type SessionHandler struct {
	App    Dispatcher
	Health *utils.HealthMonitor
}

func NewSessionHandler(app Dispatcher, health *utils.HealthMonitor) *SessionHandler {
	return &SessionHandler{App: app, Health: health}
}

// GetStateHandler returns the full view of the current session.
func (h *SessionHandler) GetStateHandler(c *gin.Context) {
	view, err := h.App.View(c.Request.Context(), sessionID(c))
	if err != nil {
		getLogger(c).Error("Failed to load session view", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load session", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) ToggleThemeHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.ToggleTheme{})
}

func (h *SessionHandler) DismissBannerHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.DismissBanner{})
}

// HealthHandler reports the last upstream health snapshot.
func (h *SessionHandler) HealthHandler(c *gin.Context) {
	resp := gin.H{"status": "ok", "message": "Hi, I'm Villa Finder"}
	if h.Health != nil {
		status := h.Health.Status()
		resp["upstream"] = status
		if !status.CheckedAt.IsZero() && !status.Redis {
			resp["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}
