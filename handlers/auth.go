package handlers

import (
	"net/http"

	"villafinder/services/auth"
	"villafinder/services/orchestrator"
	"villafinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the sign-in dialog and third-party sign-in.
type AuthHandler struct {
	App               Dispatcher
	Auth              auth.Service
	PostLoginRedirect string
}

func NewAuthHandler(app Dispatcher, authService auth.Service, postLoginRedirect string) *AuthHandler {
	if postLoginRedirect == "" {
		postLoginRedirect = "/"
	}
	return &AuthHandler{App: app, Auth: authService, PostLoginRedirect: postLoginRedirect}
}

// SignInRequestHandler opens the sign-in dialog.
func (h *AuthHandler) SignInRequestHandler(c *gin.Context) {
	var req struct {
		ForBooking bool `json:"forBooking"`
	}
	// An empty body is a plain sign-in request.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	}
	dispatch(c, h.App, orchestrator.RequestSignIn{ForBooking: req.ForBooking})
}

func (h *AuthHandler) CloseSignInHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.CloseSignIn{})
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	h.authenticate(c, auth.ModeLogin)
}

func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	h.authenticate(c, auth.ModeRegister)
}

func (h *AuthHandler) authenticate(c *gin.Context, mode auth.Mode) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		getLogger(c).Debug("Invalid credentials payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, auth.MsgValidation, err.Error())
		return
	}
	dispatch(c, h.App, orchestrator.SignIn{Mode: mode, Credentials: creds})
}

// GoogleStartHandler redirects the browser to the identity provider.
func (h *AuthHandler) GoogleStartHandler(c *gin.Context) {
	res, err := h.App.Dispatch(c.Request.Context(), sessionID(c), orchestrator.StartSocialSignIn{})
	if err != nil {
		writeError(c, res, err)
		return
	}
	c.Redirect(http.StatusFound, res.Redirect)
}

// GoogleCallbackHandler completes sign-in and sends the browser back to the app.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	cmd := orchestrator.CompleteSocialSignIn{
		Code:  c.Query("code"),
		State: c.Query("state"),
	}
	if cmd.Code == "" {
		utils.JSONError(c, http.StatusBadRequest, auth.MsgSocialFailed, c.Query("error"))
		return
	}
	res, err := h.App.Dispatch(c.Request.Context(), sessionID(c), cmd)
	if err != nil {
		writeError(c, res, err)
		return
	}
	c.Redirect(http.StatusFound, h.PostLoginRedirect)
}

func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	dispatch(c, h.App, orchestrator.SignOut{})
}

// AvailabilityHandler reports whether the remote API currently answers.
func (h *AuthHandler) AvailabilityHandler(c *gin.Context) {
	if err := h.Auth.Probe(c.Request.Context()); err != nil {
		getLogger(c).Info("Availability probe failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"available": false, "message": auth.MsgStartingUp})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}
