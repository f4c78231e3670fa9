package handlers

import (
	"context"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/integration/payhub"
	"github.com/homelead/territory-api/internal/usecase"
)

type AvailabilityCheckerInterface interface {
	Check(ctx context.Context, zipCode string) (*usecase.AvailabilityResult, error)
	CheckLedger(ctx context.Context, zipCode string) (*usecase.AvailabilityResult, error)
}

type TerritoryClaimerInterface interface {
	Execute(ctx context.Context, input usecase.ClaimTerritoryInput) (*usecase.ClaimTerritoryOutput, error)
}

type LeadServiceInterface interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*usecase.CreateLeadOutput, error)
	Reassign(ctx context.Context, leadID string) (*usecase.CreateLeadOutput, error)
	Update(ctx context.Context, input usecase.UpdateLeadInput) (*entity.Lead, error)
}

type UserDeleterInterface interface {
	Execute(ctx context.Context, userID string) error
}

type CheckoutGatewayInterface interface {
	CreateSession(ctx context.Context, input payhub.CreateSessionInput) (*payhub.Session, error)
	GetSession(ctx context.Context, sessionID string) (*payhub.Session, error)
}
