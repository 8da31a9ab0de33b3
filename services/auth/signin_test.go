package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"villafinder/services/api"
	"villafinder/services/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) session.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, time.Hour).Scope("test")
}

func newService(url string) *DefaultAuthService {
	return &DefaultAuthService{API: api.NewClient(url, time.Second, nil)}
}

var creds = Credentials{Email: "guest@villa.test", Password: "secret"}

func TestAuthenticate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"tok-123","name":"Guest"}`))
	}))
	defer srv.Close()

	store := newStore(t)
	identity, err := newService(srv.URL).Authenticate(context.Background(), store, ModeLogin, creds)
	require.NoError(t, err)

	assert.Equal(t, "guest@villa.test", identity.Email)
	assert.Equal(t, "Guest", identity.Name)
	assert.Equal(t, "tok-123", identity.Token)

	stored, err := store.Get(context.Background(), session.KeyUserToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)
}

func TestAuthenticate_RegisterUsesRegisterEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"new","user":{"email":"guest@villa.test","name":"New Guest"}}`))
	}))
	defer srv.Close()

	identity, err := newService(srv.URL).Authenticate(context.Background(), newStore(t), ModeRegister, creds)
	require.NoError(t, err)
	assert.Equal(t, "New Guest", identity.Name)
}

func TestAuthenticate_FailureMapping(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"not found", ModeLogin, http.StatusNotFound, ``, KindUnavailable, MsgNotFound},
		{"validation with server text", ModeRegister, http.StatusBadRequest, `{"message":"Password too short"}`, KindValidation, "Password too short"},
		{"validation without text", ModeLogin, http.StatusBadRequest, `oops`, KindValidation, MsgValidation},
		{"unauthorized", ModeLogin, http.StatusUnauthorized, `{"message":"nope"}`, KindUnauthorized, MsgUnauthorized},
		{"conflict on register", ModeRegister, http.StatusConflict, ``, KindValidation, MsgAccountExists},
		{"server error", ModeLogin, http.StatusInternalServerError, ``, KindNetwork, MsgNetwork},
		{"success without token", ModeLogin, http.StatusOK, `{"email":"x@y.z"}`, KindMalformed, MsgMalformed},
		{"success with bad json", ModeLogin, http.StatusOK, `<html>`, KindMalformed, MsgMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			store := newStore(t)
			_, err := newService(srv.URL).Authenticate(context.Background(), store, tt.mode, creds)

			var authErr *Error
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.kind, authErr.Kind)
			assert.Equal(t, tt.message, authErr.Message)

			_, err = store.Get(context.Background(), session.KeyUserToken)
			assert.ErrorIs(t, err, session.ErrNotFound)
		})
	}
}

func TestAuthenticate_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newService(srv.URL).Authenticate(context.Background(), newStore(t), ModeLogin, creds)

	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, KindNetwork, authErr.Kind)
}

func TestAuthenticate_LocalValidationSkipsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	_, err := svc.Authenticate(context.Background(), newStore(t), ModeLogin, Credentials{Email: "a.b.com", Password: "x"})
	assert.Error(t, err)
	_, err = svc.Authenticate(context.Background(), newStore(t), ModeLogin, Credentials{Email: "a@b.com"})
	assert.Error(t, err)
	_, err = svc.Authenticate(context.Background(), newStore(t), Mode("admin"), creds)
	assert.Error(t, err)

	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestAuthenticate_ProbeFailureRefusesLocally(t *testing.T) {
	var loginHits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		atomic.AddInt32(&loginHits, 1)
		_, _ = w.Write([]byte(`{"token":"t"}`))
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	svc.ProbeEnabled = true

	_, err := svc.Authenticate(context.Background(), newStore(t), ModeLogin, creds)

	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, KindUnavailable, authErr.Kind)
	assert.Equal(t, MsgStartingUp, authErr.Message)
	assert.Zero(t, atomic.LoadInt32(&loginHits))
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	assert.Error(t, svc.Probe(context.Background()))

	svc.HealthPath = "/healthz"
	assert.NoError(t, svc.Probe(context.Background()))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail(" a@b.com "))
	assert.False(t, ValidEmail("a.b.com"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail(""))
}
