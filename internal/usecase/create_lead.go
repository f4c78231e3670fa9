package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/queue"
)

type CreateLeadUseCase struct {
	LeadRepo      entity.LeadRepositoryInterface
	TerritoryRepo entity.TerritoryRepositoryInterface
	ProfileRepo   entity.ProfileRepositoryInterface
	Producer      QueueProducerInterface
}

func NewCreateLeadUseCase(
	leadRepo entity.LeadRepositoryInterface,
	territoryRepo entity.TerritoryRepositoryInterface,
	profileRepo entity.ProfileRepositoryInterface,
	producer QueueProducerInterface,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		LeadRepo:      leadRepo,
		TerritoryRepo: territoryRepo,
		ProfileRepo:   profileRepo,
		Producer:      producer,
	}
}

// Execute validates, routes and persists a new lead, then notifies the owner.
// Routing is evaluated exactly once here; a later ownership change never
// re-routes existing leads. The notification publish happens after the lead
// commits and its failure is logged, not returned.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: validationMessage(errs)}
	}

	lead := entity.NewLead(input.Name, input.ZipCode, input.Source)
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Address = input.Address
	lead.Notes = input.Notes

	ownerID, err := uc.routeOwner(ctx, input.ZipCode)
	if err != nil {
		return nil, err
	}
	lead.OwnerID = ownerID

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "could not persist lead: " + err.Error(),
		}
	}

	if ownerID != nil {
		uc.publishAssignment(ctx, lead, *ownerID)
	}

	return &CreateLeadOutput{Lead: lead, Assigned: ownerID != nil}, nil
}

// Reassign re-runs routing for an existing lead (admin override). Same rules
// as creation-time routing.
func (uc *CreateLeadUseCase) Reassign(ctx context.Context, leadID string) (*CreateLeadOutput, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	ownerID, err := uc.routeOwner(ctx, lead.ZipCode)
	if err != nil {
		return nil, err
	}
	lead.OwnerID = ownerID

	if err := uc.LeadRepo.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if ownerID != nil {
		uc.publishAssignment(ctx, lead, *ownerID)
	}

	return &CreateLeadOutput{Lead: lead, Assigned: ownerID != nil}, nil
}

// Update applies owner-editable fields. The actor must own the lead or be an
// admin. Leads are archived, never hard-deleted.
func (uc *CreateLeadUseCase) Update(ctx context.Context, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if !input.ActorAdmin && (lead.OwnerID == nil || *lead.OwnerID != input.ActorID) {
		return nil, ErrForbidden
	}

	if input.Status != nil {
		status, err := entity.ParseLeadStatus(*input.Status)
		if err != nil {
			return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
		}
		lead.Status = status
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	if input.Archived != nil {
		lead.Archived = *input.Archived
	}

	if err := uc.LeadRepo.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return lead, nil
}

// routeOwner finds the active territory owner for a zip. No active territory
// means the lead stays unassigned (admin-only visibility). More than one
// active row violates the ledger invariant; rather than crash, pick the most
// recently started owner and flag the anomaly loudly.
func (uc *CreateLeadUseCase) routeOwner(ctx context.Context, zipCode string) (*string, error) {
	rows, err := uc.TerritoryRepo.FindActiveByZip(ctx, zipCode)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "could not route lead: " + err.Error(),
		}
	}

	if len(rows) == 0 {
		return nil, nil
	}

	if len(rows) > 1 {
		ids := make([]string, len(rows))
		for i, t := range rows {
			ids[i] = t.ID
		}
		zap.L().Error("multiple active territories for zip, exclusivity invariant violated",
			zap.String("zip", zipCode),
			zap.Strings("territory_ids", ids))
	}

	// Rows come back most recent start first.
	return &rows[0].UserID, nil
}

func (uc *CreateLeadUseCase) publishAssignment(ctx context.Context, lead *entity.Lead, ownerID string) {
	if uc.Producer == nil {
		return
	}

	profile, err := uc.ProfileRepo.FindByID(ctx, ownerID)
	if err != nil {
		zap.L().Warn("owner profile lookup failed, skipping notification",
			zap.String("lead_id", lead.ID),
			zap.String("owner_id", ownerID),
			zap.Error(err))
		return
	}

	err = uc.Producer.PublishLeadAssigned(ctx, queue.LeadAssignedPayload{
		LeadID:      lead.ID,
		LeadName:    lead.Name,
		LeadEmail:   lead.Email,
		LeadPhone:   lead.Phone,
		LeadAddress: lead.Address,
		ZipCode:     lead.ZipCode,
		Source:      lead.Source,
		OwnerID:     profile.ID,
		OwnerEmails: profile.Emails(),
		OwnerPhones: profile.Phones(),
		NotifyEmail: profile.NotifyEmail,
		NotifySMS:   profile.NotifySMS,
	})
	if err != nil {
		// The lead is committed and assigned; a queue outage only costs the
		// notification, never the assignment.
		zap.L().Warn("lead-assigned publish failed",
			zap.String("lead_id", lead.ID), zap.Error(err))
	}
}
