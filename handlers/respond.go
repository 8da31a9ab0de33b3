package handlers

import (
	"context"
	"errors"
	"net/http"

	"villafinder/services/auth"
	"villafinder/services/booking"
	"villafinder/services/details"
	"villafinder/services/orchestrator"
	"villafinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dispatcher applies browser commands to session state.
type Dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, cmd orchestrator.Command) (*orchestrator.Result, error)
	View(ctx context.Context, sessionID string) (orchestrator.View, error)
}

// errorBody is an error response that still carries the session view, so
// the browser can render field errors and dialogs.
type errorBody struct {
	utils.ErrorResponse
	View *orchestrator.View `json:"view,omitempty"`
}

func sessionID(c *gin.Context) string {
	return c.GetString(utils.SessionContextKey)
}

// dispatch runs cmd for the current session and writes the result.
func dispatch(c *gin.Context, app Dispatcher, cmd orchestrator.Command) {
	res, err := app.Dispatch(c.Request.Context(), sessionID(c), cmd)
	if err != nil {
		writeError(c, res, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// statusFor maps domain errors to HTTP statuses and a user-facing message.
func statusFor(err error) (int, string) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		switch authErr.Kind {
		case auth.KindValidation:
			return http.StatusBadRequest, authErr.Message
		case auth.KindUnauthorized:
			return http.StatusUnauthorized, authErr.Message
		case auth.KindUnavailable:
			return http.StatusServiceUnavailable, authErr.Message
		default:
			return http.StatusBadGateway, authErr.Message
		}
	}

	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "Please correct the highlighted fields."
	case errors.Is(err, booking.ErrPriceUnavailable):
		return http.StatusUnprocessableEntity, booking.MsgPriceUnavailable
	case errors.Is(err, orchestrator.ErrListingNotFound):
		return http.StatusNotFound, "Villa not found"
	case errors.Is(err, orchestrator.ErrNoBooking),
		errors.Is(err, orchestrator.ErrDetailsClosed),
		errors.Is(err, orchestrator.ErrSignInInFlight),
		errors.Is(err, booking.ErrWrongStep):
		return http.StatusConflict, capitalize(err.Error())
	case errors.Is(err, details.ErrUnknownTab),
		errors.Is(err, orchestrator.ErrOAuthState),
		errors.Is(err, orchestrator.ErrUnknownCommand):
		return http.StatusBadRequest, capitalize(err.Error())
	case errors.Is(err, orchestrator.ErrSocialUnavailable):
		return http.StatusServiceUnavailable, auth.MsgSocialDisabled
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func writeError(c *gin.Context, res *orchestrator.Result, err error) {
	status, message := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(message, zap.Error(err), zap.Int("status", status))
	} else {
		logger.Warn(message, zap.Error(err), zap.Int("status", status))
	}

	body := errorBody{ErrorResponse: utils.ErrorResponse{Message: message}}
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	if errors.Is(err, booking.ErrPriceUnavailable) {
		body.Fields = map[string]string{booking.FormErrorKey: booking.MsgPriceUnavailable}
	}
	if res != nil {
		body.View = &res.View
	}
	c.JSON(status, body)
}
