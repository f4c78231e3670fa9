package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
)

type CheckAvailabilityUseCase struct {
	TerritoryRepo entity.TerritoryRepositoryInterface
	Cache         AvailabilityCacheInterface
}

func NewCheckAvailabilityUseCase(
	territoryRepo entity.TerritoryRepositoryInterface,
	cache AvailabilityCacheInterface,
) *CheckAvailabilityUseCase {
	return &CheckAvailabilityUseCase{TerritoryRepo: territoryRepo, Cache: cache}
}

// Check answers "can this zip be claimed right now?" for public callers. Bad
// format short-circuits before any storage access. A zip with no territory
// history at all is available. Reads go through the cache; a concurrent claim
// between check and claim is resolved by the claim's own atomicity, not here.
func (uc *CheckAvailabilityUseCase) Check(ctx context.Context, zipCode string) (*AvailabilityResult, error) {
	if !IsValidZipCode(zipCode) {
		return &AvailabilityResult{ZipCode: zipCode, Status: AvailabilityInvalidFormat}, nil
	}

	if uc.Cache != nil {
		claimed, _, hit, err := uc.Cache.Get(ctx, zipCode)
		if err != nil {
			zap.L().Warn("availability cache read failed", zap.String("zip", zipCode), zap.Error(err))
		} else if hit {
			return uc.result(zipCode, claimed), nil
		}
	}

	result, ownerID, err := uc.checkLedger(ctx, zipCode)
	if err != nil {
		return nil, err
	}

	if uc.Cache != nil {
		var cacheErr error
		if result.Status == AvailabilityClaimed {
			cacheErr = uc.Cache.SetClaimed(ctx, zipCode, ownerID)
		} else {
			cacheErr = uc.Cache.SetAvailable(ctx, zipCode)
		}
		if cacheErr != nil {
			zap.L().Warn("availability cache write failed", zap.String("zip", zipCode), zap.Error(cacheErr))
		}
	}

	return result, nil
}

// CheckLedger is the admin variant: it always consults the territory table
// and includes the current owner's identity.
func (uc *CheckAvailabilityUseCase) CheckLedger(ctx context.Context, zipCode string) (*AvailabilityResult, error) {
	if !IsValidZipCode(zipCode) {
		return &AvailabilityResult{ZipCode: zipCode, Status: AvailabilityInvalidFormat}, nil
	}

	result, ownerID, err := uc.checkLedger(ctx, zipCode)
	if err != nil {
		return nil, err
	}
	result.OwnerID = ownerID
	return result, nil
}

func (uc *CheckAvailabilityUseCase) checkLedger(ctx context.Context, zipCode string) (*AvailabilityResult, string, error) {
	rows, err := uc.TerritoryRepo.FindActiveByZip(ctx, zipCode)
	if err != nil {
		return nil, "", &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "could not check availability: " + err.Error(),
		}
	}

	if len(rows) == 0 {
		return uc.result(zipCode, false), "", nil
	}
	return uc.result(zipCode, true), rows[0].UserID, nil
}

// result never carries the owner; only CheckLedger adds identity, so public
// callers cannot leak who holds a zip.
func (uc *CheckAvailabilityUseCase) result(zipCode string, claimed bool) *AvailabilityResult {
	status := AvailabilityAvailable
	if claimed {
		status = AvailabilityClaimed
	}
	return &AvailabilityResult{ZipCode: zipCode, Status: status}
}
