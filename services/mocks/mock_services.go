// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"

	"villafinder/models"
	"villafinder/services/auth"
	"villafinder/services/session"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of auth.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, store session.Store, mode auth.Mode, creds auth.Credentials) (*models.Identity, error) {
	args := m.Called(ctx, store, mode, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockAuthService) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Initiate(ctx context.Context, state string) (string, error) {
	args := m.Called(ctx, state)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) Profile(ctx context.Context, code string) (*auth.Profile, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Profile), args.Error(1)
}

// MockCatalogService is a mock implementation of catalog.Service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Search(ctx context.Context, filter models.Filter) ([]models.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}
