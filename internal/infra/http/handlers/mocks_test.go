package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/integration/payhub"
	"github.com/homelead/territory-api/internal/usecase"
)

// MockClaimer
type MockClaimer struct {
	mock.Mock
}

func (m *MockClaimer) Execute(ctx context.Context, input usecase.ClaimTerritoryInput) (*usecase.ClaimTerritoryOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ClaimTerritoryOutput), args.Error(1)
}

// MockChecker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, zipCode string) (*usecase.AvailabilityResult, error) {
	args := m.Called(ctx, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AvailabilityResult), args.Error(1)
}

func (m *MockChecker) CheckLedger(ctx context.Context, zipCode string) (*usecase.AvailabilityResult, error) {
	args := m.Called(ctx, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AvailabilityResult), args.Error(1)
}

// MockLeadService
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Execute(ctx context.Context, input usecase.CreateLeadInput) (*usecase.CreateLeadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateLeadOutput), args.Error(1)
}

func (m *MockLeadService) Reassign(ctx context.Context, leadID string) (*usecase.CreateLeadOutput, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateLeadOutput), args.Error(1)
}

func (m *MockLeadService) Update(ctx context.Context, input usecase.UpdateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

// MockCheckoutGateway
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, input payhub.CreateSessionInput) (*payhub.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payhub.Session), args.Error(1)
}

func (m *MockCheckoutGateway) GetSession(ctx context.Context, sessionID string) (*payhub.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payhub.Session), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *entity.TerritoryRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepo) MarkCompleted(ctx context.Context, zipCode, userID string) error {
	args := m.Called(ctx, zipCode, userID)
	return args.Error(0)
}

func (m *MockRequestRepo) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
