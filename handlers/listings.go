package handlers

import (
	"net/http"

	"villafinder/models"
	"villafinder/services/orchestrator"
	"villafinder/utils"

	"github.com/gin-gonic/gin"
)

// ListingsHandler serves search and the detail panel.
type ListingsHandler struct {
	App Dispatcher
}

func NewListingsHandler(app Dispatcher) *ListingsHandler {
	return &ListingsHandler{App: app}
}

// SearchVillasHandler runs a search with the filter from the query string.
func (h *ListingsHandler) SearchVillasHandler(c *gin.Context) {
	var query models.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid search filter", err.Error())
		return
	}
	filter, err := query.Filter()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid search filter", err.Error())
		return
	}
	dispatch(c, h.App, orchestrator.Search{Filter: filter})
}

func (h *ListingsHandler) OpenDetailsHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.ViewDetails{ListingID: c.Param("id")})
}

func (h *ListingsHandler) SelectTabHandler(c *gin.Context) {
	var req struct {
		Tab string `json:"tab" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	dispatch(c, h.App, orchestrator.SelectTab{Tab: req.Tab})
}

func (h *ListingsHandler) CloseDetailsHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.CloseDetails{})
}
