package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/usecase"
)

func TestCheckAvailabilityInvalidFormat(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	cache := new(MockAvailabilityCache)
	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, cache)

	for _, zip := range []string{"", "123", "abcde", "902101"} {
		result, err := uc.Check(context.Background(), zip)
		assert.NoError(t, err)
		assert.Equal(t, usecase.AvailabilityInvalidFormat, result.Status)
	}

	// Bad format short-circuits before cache or ledger.
	cache.AssertNotCalled(t, "Get")
	territoryRepo.AssertNotCalled(t, "FindActiveByZip")
}

func TestCheckAvailabilityCacheHit(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	cache := new(MockAvailabilityCache)
	cache.On("Get", mock.Anything, "90210").Return(true, "user-1", true, nil)

	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, cache)

	result, err := uc.Check(context.Background(), "90210")
	assert.NoError(t, err)
	assert.Equal(t, usecase.AvailabilityClaimed, result.Status)
	// Public checks never expose the owner, cached or not.
	assert.Empty(t, result.OwnerID)

	territoryRepo.AssertNotCalled(t, "FindActiveByZip")
}

func TestCheckAvailabilityCacheMissFallsBackToLedger(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "90210").
		Return([]*entity.Territory{entity.NewTerritory("90210", "user-1", entity.LeadTypeSeller)}, nil)

	cache := new(MockAvailabilityCache)
	cache.On("Get", mock.Anything, "90210").Return(false, "", false, nil)
	cache.On("SetClaimed", mock.Anything, "90210", "user-1").Return(nil)

	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, cache)

	result, err := uc.Check(context.Background(), "90210")
	assert.NoError(t, err)
	assert.Equal(t, usecase.AvailabilityClaimed, result.Status)
	assert.Empty(t, result.OwnerID)

	// The miss is backfilled.
	cache.AssertCalled(t, "SetClaimed", mock.Anything, "90210", "user-1")
}

func TestCheckAvailabilityNoHistoryMeansAvailable(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "30301").Return(nil, nil)

	cache := new(MockAvailabilityCache)
	cache.On("Get", mock.Anything, "30301").Return(false, "", false, nil)
	cache.On("SetAvailable", mock.Anything, "30301").Return(nil)

	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, cache)

	result, err := uc.Check(context.Background(), "30301")
	assert.NoError(t, err)
	assert.Equal(t, usecase.AvailabilityAvailable, result.Status)
}

func TestCheckAvailabilityCacheErrorFallsBackToLedger(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "30301").Return(nil, nil)

	cache := new(MockAvailabilityCache)
	cache.On("Get", mock.Anything, "30301").Return(false, "", false, errors.New("redis down"))
	cache.On("SetAvailable", mock.Anything, "30301").Return(errors.New("redis down"))

	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, cache)

	// A broken cache degrades to ledger reads, it does not fail the check.
	result, err := uc.Check(context.Background(), "30301")
	assert.NoError(t, err)
	assert.Equal(t, usecase.AvailabilityAvailable, result.Status)
}

func TestCheckAvailabilityLedgerFailure(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "30301").
		Return(nil, errors.New("connection refused"))

	cache := new(MockAvailabilityCache)
	cache.On("Get", mock.Anything, "30301").Return(false, "", false, nil)

	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, cache)

	result, err := uc.Check(context.Background(), "30301")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, usecase.IsTechnicalError(err))
}

func TestCheckLedgerIncludesOwner(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "90210").
		Return([]*entity.Territory{entity.NewTerritory("90210", "user-1", entity.LeadTypeSeller)}, nil)

	uc := usecase.NewCheckAvailabilityUseCase(territoryRepo, new(MockAvailabilityCache))

	result, err := uc.CheckLedger(context.Background(), "90210")
	assert.NoError(t, err)
	assert.Equal(t, usecase.AvailabilityClaimed, result.Status)
	assert.Equal(t, "user-1", result.OwnerID)
}
