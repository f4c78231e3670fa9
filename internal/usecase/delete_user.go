package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
)

type DeleteUserUseCase struct {
	LeadRepo      entity.LeadRepositoryInterface
	ProfileRepo   entity.ProfileRepositoryInterface
	TerritoryRepo entity.TerritoryRepositoryInterface
	RequestRepo   entity.TerritoryRequestRepositoryInterface
	Accounts      AccountService
	Cache         AvailabilityCacheInterface
}

func NewDeleteUserUseCase(
	leadRepo entity.LeadRepositoryInterface,
	profileRepo entity.ProfileRepositoryInterface,
	territoryRepo entity.TerritoryRepositoryInterface,
	requestRepo entity.TerritoryRequestRepositoryInterface,
	accounts AccountService,
	cache AvailabilityCacheInterface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		LeadRepo:      leadRepo,
		ProfileRepo:   profileRepo,
		TerritoryRepo: territoryRepo,
		RequestRepo:   requestRepo,
		Accounts:      accounts,
		Cache:         cache,
	}
}

// Execute removes everything the user owns, then the account itself. The
// order (leads, profile, territories, territory requests, account) follows
// the foreign-key dependencies and must not be reshuffled. This is the one
// place territory rows are hard-deleted.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "user_id is required"}
	}

	// Capture the zips being freed before their rows disappear.
	territories, err := uc.TerritoryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "could not list territories: " + err.Error()}
	}

	if err := uc.LeadRepo.DeleteByOwnerID(ctx, userID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "could not delete leads: " + err.Error()}
	}
	if err := uc.ProfileRepo.Delete(ctx, userID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "could not delete profile: " + err.Error()}
	}
	if err := uc.TerritoryRepo.DeleteByUserID(ctx, userID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "could not delete territories: " + err.Error()}
	}
	if err := uc.RequestRepo.DeleteByUserID(ctx, userID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "could not delete territory requests: " + err.Error()}
	}
	if err := uc.Accounts.DeleteAccount(ctx, userID); err != nil {
		return &TechnicalError{Code: "AUTH_PROVIDER_ERROR", Message: "could not delete account: " + err.Error()}
	}

	if uc.Cache != nil {
		for _, t := range territories {
			if !t.Active {
				continue
			}
			if err := uc.Cache.Invalidate(ctx, t.ZipCode); err != nil {
				zap.L().Warn("availability cache invalidation failed",
					zap.String("zip", t.ZipCode), zap.Error(err))
			}
		}
	}

	zap.L().Info("user deleted", zap.String("user_id", userID),
		zap.Int("territories_released", len(territories)))
	return nil
}
