package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/queue"
)

type ClaimTerritoryUseCase struct {
	TerritoryRepo entity.TerritoryRepositoryInterface
	RequestRepo   entity.TerritoryRequestRepositoryInterface
	LeadRepo      entity.LeadRepositoryInterface
	Profiles      *BootstrapProfileUseCase
	Cache         AvailabilityCacheInterface
	Producer      QueueProducerInterface
}

func NewClaimTerritoryUseCase(
	territoryRepo entity.TerritoryRepositoryInterface,
	requestRepo entity.TerritoryRequestRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	profiles *BootstrapProfileUseCase,
	cache AvailabilityCacheInterface,
	producer QueueProducerInterface,
) *ClaimTerritoryUseCase {
	return &ClaimTerritoryUseCase{
		TerritoryRepo: territoryRepo,
		RequestRepo:   requestRepo,
		LeadRepo:      leadRepo,
		Profiles:      profiles,
		Cache:         cache,
		Producer:      producer,
	}
}

// Execute transitions a zip to claimed-by-this-user. It is idempotent and
// re-entrant: a retried payment webhook or a reloaded success page hits the
// same (zip, user) pair and returns the existing territory as a success. The
// check-and-write race is settled by the storage layer's conditional insert,
// never by a read here.
func (uc *ClaimTerritoryUseCase) Execute(ctx context.Context, input ClaimTerritoryInput) (*ClaimTerritoryOutput, error) {
	if errs := ValidateClaimInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: validationMessage(errs)}
	}

	leadType := entity.LeadTypeSeller
	if input.LeadType != "" {
		parsed, err := entity.ParseLeadType(input.LeadType)
		if err != nil {
			return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
		}
		leadType = parsed
	}

	// Profile must exist before the territory row references the user.
	profile, err := uc.Profiles.Ensure(ctx, input.UserID, input.Email)
	if err != nil {
		return nil, err
	}

	territory := entity.NewTerritory(input.ZipCode, input.UserID, leadType)

	claimed, err := uc.TerritoryRepo.ClaimActive(ctx, territory)
	if err != nil {
		if errors.Is(err, entity.ErrTerritoryUnavailable) {
			return nil, &ConflictError{
				Code:    "TERRITORY_UNAVAILABLE",
				Message: "zip code " + input.ZipCode + " is already claimed",
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "could not claim territory: " + err.Error(),
		}
	}

	alreadyOwned := claimed.ID != territory.ID

	if uc.RequestRepo != nil {
		if err := uc.RequestRepo.MarkCompleted(ctx, input.ZipCode, input.UserID); err != nil {
			zap.L().Warn("could not complete territory request",
				zap.String("zip", input.ZipCode), zap.Error(err))
		}
	}

	// Cache is a mirror, updated best-effort; the ledger row above is the
	// source of truth either way.
	if uc.Cache != nil {
		if err := uc.Cache.SetClaimed(ctx, input.ZipCode, input.UserID); err != nil {
			zap.L().Warn("availability cache update failed",
				zap.String("zip", input.ZipCode), zap.Error(err))
		}
	}

	zap.L().Info("territory claimed",
		zap.String("zip", input.ZipCode),
		zap.String("user_id", input.UserID),
		zap.String("source", input.Source),
		zap.Bool("already_owned", alreadyOwned))

	if !alreadyOwned {
		go uc.seedWelcomeLead(claimed, profile)
	}

	return &ClaimTerritoryOutput{Territory: claimed, AlreadyOwned: alreadyOwned}, nil
}

// seedWelcomeLead drops a sample lead into the new territory so the owner
// sees the notification path working on day one. Best-effort: any failure is
// logged and never unwinds the claim.
func (uc *ClaimTerritoryUseCase) seedWelcomeLead(territory *entity.Territory, profile *entity.UserProfile) {
	if uc.LeadRepo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lead := entity.NewLead("Sample Seller", territory.ZipCode, "welcome_seed")
	lead.Notes = "This is a sample lead so you can see how new leads arrive."
	lead.OwnerID = &territory.UserID

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		zap.L().Warn("welcome lead seed failed",
			zap.String("zip", territory.ZipCode), zap.Error(err))
		return
	}

	if uc.Producer == nil {
		return
	}
	err := uc.Producer.PublishLeadAssigned(ctx, queue.LeadAssignedPayload{
		LeadID:      lead.ID,
		LeadName:    lead.Name,
		ZipCode:     lead.ZipCode,
		Source:      lead.Source,
		OwnerID:     profile.ID,
		OwnerEmails: profile.Emails(),
		OwnerPhones: profile.Phones(),
		NotifyEmail: profile.NotifyEmail,
		NotifySMS:   profile.NotifySMS,
	})
	if err != nil {
		zap.L().Warn("welcome lead notification publish failed",
			zap.String("lead_id", lead.ID), zap.Error(err))
	}
}
