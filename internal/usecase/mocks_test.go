package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/queue"
)

// MockTerritoryRepository
type MockTerritoryRepository struct {
	mock.Mock
}

func (m *MockTerritoryRepository) ClaimActive(ctx context.Context, t *entity.Territory) (*entity.Territory, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Territory), args.Error(1)
}

func (m *MockTerritoryRepository) FindActiveByZip(ctx context.Context, zipCode string) ([]*entity.Territory, error) {
	args := m.Called(ctx, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Territory), args.Error(1)
}

func (m *MockTerritoryRepository) FindByID(ctx context.Context, id string) (*entity.Territory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Territory), args.Error(1)
}

func (m *MockTerritoryRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Territory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Territory), args.Error(1)
}

func (m *MockTerritoryRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTerritoryRepository) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) EnsureExists(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *entity.TerritoryRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) MarkCompleted(ctx context.Context, zipCode, userID string) error {
	args := m.Called(ctx, zipCode, userID)
	return args.Error(0)
}

func (m *MockRequestRepository) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAvailabilityCache
type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) Get(ctx context.Context, zipCode string) (bool, string, bool, error) {
	args := m.Called(ctx, zipCode)
	return args.Bool(0), args.String(1), args.Bool(2), args.Error(3)
}

func (m *MockAvailabilityCache) SetClaimed(ctx context.Context, zipCode, ownerID string) error {
	args := m.Called(ctx, zipCode, ownerID)
	return args.Error(0)
}

func (m *MockAvailabilityCache) SetAvailable(ctx context.Context, zipCode string) error {
	args := m.Called(ctx, zipCode)
	return args.Error(0)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, zipCode string) error {
	args := m.Called(ctx, zipCode)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadAssigned(ctx context.Context, payload queue.LeadAssignedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockAccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
