package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
)

type BootstrapProfileUseCase struct {
	ProfileRepo entity.ProfileRepositoryInterface
}

func NewBootstrapProfileUseCase(profileRepo entity.ProfileRepositoryInterface) *BootstrapProfileUseCase {
	return &BootstrapProfileUseCase{ProfileRepo: profileRepo}
}

// Ensure returns the user's profile, creating the minimal default on first
// touch. Concurrent calls for the same id are safe: the repository uses a
// conditional insert, not read-then-insert. If storage is down the caller
// still gets a usable in-memory default; profile data is supplementary, not
// blocking.
func (uc *BootstrapProfileUseCase) Ensure(ctx context.Context, userID, email string) (*entity.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "user_id is required"}
	}

	profile, err := uc.ProfileRepo.EnsureExists(ctx, entity.DefaultProfile(userID, email))
	if err != nil {
		zap.L().Warn("profile bootstrap hit storage error, serving in-memory default",
			zap.String("user_id", userID), zap.Error(err))
		return entity.DefaultProfile(userID, email), nil
	}

	return profile, nil
}
