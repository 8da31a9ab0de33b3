package handlers

import (
	"errors"
	"io"
	"net/http"

	"villafinder/models"
	"villafinder/services/orchestrator"
	"villafinder/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the two-step booking form.
type BookingHandler struct {
	App Dispatcher
}

func NewBookingHandler(app Dispatcher) *BookingHandler {
	return &BookingHandler{App: app}
}

// BookNowHandler opens the booking form, or asks for sign-in first.
func (h *BookingHandler) BookNowHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.BookNow{ListingID: c.Param("id")})
}

// UpdateDraftHandler applies the changed form fields.
func (h *BookingHandler) UpdateDraftHandler(c *gin.Context) {
	var update models.DraftUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking fields", err.Error())
		return
	}
	dispatch(c, h.App, orchestrator.UpdateDraft{Update: update})
}

func (h *BookingHandler) NextStepHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.NextStep{})
}

func (h *BookingHandler) PreviousStepHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.PreviousStep{})
}

// SubmitHandler confirms the booking. Card number and CVC arrive here since
// they are not kept between requests; the body is optional otherwise.
func (h *BookingHandler) SubmitHandler(c *gin.Context) {
	var update models.DraftUpdate
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&update); err != nil && !errors.Is(err, io.EOF) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking fields", err.Error())
			return
		}
	}
	dispatch(c, h.App, orchestrator.SubmitBooking{Update: update})
}

func (h *BookingHandler) CloseBookingHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.CloseBooking{})
}
