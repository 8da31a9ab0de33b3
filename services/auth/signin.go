package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"villafinder/models"
	"villafinder/services/api"
	"villafinder/services/session"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidEmail reports whether s has a basic local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// DefaultAuthService implements Service against the remote villa API.
type DefaultAuthService struct {
	API          *api.Client
	HealthPath   string
	ProbeEnabled bool
	Logger       *zap.Logger
}

// authResponse is the success body of login/register.
type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	User  *struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func (s *DefaultAuthService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultAuthService) Authenticate(ctx context.Context, store session.Store, mode Mode, creds Credentials) (*models.Identity, error) {
	if !mode.Valid() {
		return nil, newError(KindValidation, MsgValidation, 0, errors.New("unknown auth mode "+string(mode)))
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if !ValidEmail(creds.Email) {
		return nil, newError(KindValidation, "Please enter a valid email address.", 0, nil)
	}
	if creds.Password == "" {
		return nil, newError(KindValidation, "Password is required.", 0, nil)
	}

	if s.ProbeEnabled {
		if err := s.Probe(ctx); err != nil {
			s.logger().Warn("Refusing sign-in, API probe failed", zap.Error(err))
			return nil, newError(KindUnavailable, MsgStartingUp, 0, err)
		}
	}

	resp, err := s.API.PostJSON(ctx, api.UsersPath+"/"+string(mode), creds)
	if err != nil {
		return nil, newError(KindNetwork, MsgNetwork, 0, err)
	}
	if !resp.OK() {
		return nil, classifyFailure(mode, resp)
	}

	var body authResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, newError(KindMalformed, MsgMalformed, resp.StatusCode, err)
	}
	if strings.TrimSpace(body.Token) == "" {
		return nil, newError(KindMalformed, MsgMalformed, resp.StatusCode, nil)
	}

	if err := store.Set(ctx, session.KeyUserToken, body.Token, 0); err != nil {
		return nil, err
	}

	identity := &models.Identity{
		Email:    firstNonEmpty(body.Email, userField(body, true), creds.Email),
		Name:     firstNonEmpty(body.Name, userField(body, false)),
		Token:    body.Token,
		Provider: models.ProviderPassword,
	}
	s.logger().Info("User authenticated", zap.String("mode", string(mode)), zap.String("email", identity.Email))
	return identity, nil
}

// classifyFailure maps a non-2xx identity response to a user-facing error.
func classifyFailure(mode Mode, resp *api.Response) *Error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return newError(KindUnavailable, MsgNotFound, resp.StatusCode, nil)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return newError(KindValidation, firstNonEmpty(serverMessage(resp.Body), MsgValidation), resp.StatusCode, nil)
	case http.StatusConflict:
		if mode == ModeRegister {
			return newError(KindValidation, firstNonEmpty(serverMessage(resp.Body), MsgAccountExists), resp.StatusCode, nil)
		}
	case http.StatusUnauthorized:
		return newError(KindUnauthorized, MsgUnauthorized, resp.StatusCode, nil)
	}
	return newError(KindNetwork, MsgNetwork, resp.StatusCode, nil)
}

// serverMessage extracts {"message": ...} or {"error": ...} from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(firstNonEmpty(payload.Message, payload.Error))
}

func userField(body authResponse, email bool) string {
	if body.User == nil {
		return ""
	}
	if email {
		return body.User.Email
	}
	return body.User.Name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
