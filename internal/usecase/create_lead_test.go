package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/queue"
	"github.com/homelead/territory-api/internal/usecase"
)

func ownerProfile(userID string) *entity.UserProfile {
	p := entity.DefaultProfile(userID, "owner@example.com")
	p.Phone = "5551234567"
	p.SecondaryEmails = []string{"second@example.com"}
	return p
}

func TestCreateLeadAssignedToActiveOwner(t *testing.T) {
	ctx := context.Background()

	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "90210").
		Return([]*entity.Territory{entity.NewTerritory("90210", "user-1", entity.LeadTypeSeller)}, nil)

	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByID", mock.Anything, "user-1").Return(ownerProfile("user-1"), nil)

	producer := new(MockQueueProducer)
	producer.On("PublishLeadAssigned", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, territoryRepo, profileRepo, producer)

	out, err := uc.Execute(ctx, usecase.CreateLeadInput{
		Name:    "Jane Seller",
		Email:   "jane@example.com",
		ZipCode: "90210",
		Source:  "public_intake",
	})

	assert.NoError(t, err)
	assert.True(t, out.Assigned)
	if assert.NotNil(t, out.Lead.OwnerID) {
		assert.Equal(t, "user-1", *out.Lead.OwnerID)
	}
	assert.Equal(t, entity.LeadStatusNew, out.Lead.Status)

	// The published payload carries the full owner snapshot so the worker
	// never reads the database.
	producer.AssertCalled(t, "PublishLeadAssigned", mock.Anything, mock.MatchedBy(func(p queue.LeadAssignedPayload) bool {
		return p.OwnerID == "user-1" &&
			len(p.OwnerEmails) == 2 &&
			len(p.OwnerPhones) == 1 &&
			p.NotifyEmail
	}))
}

func TestCreateLeadUnassignedWhenZipUnclaimed(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "30301").Return(nil, nil)

	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	producer := new(MockQueueProducer)

	uc := usecase.NewCreateLeadUseCase(leadRepo, territoryRepo, new(MockProfileRepository), producer)

	out, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Name:    "Orphan Lead",
		ZipCode: "30301",
		Source:  "public_intake",
	})

	// An unclaimed zip still accepts the lead; it just stays unassigned.
	assert.NoError(t, err)
	assert.False(t, out.Assigned)
	assert.Nil(t, out.Lead.OwnerID)
	producer.AssertNotCalled(t, "PublishLeadAssigned")
}

func TestCreateLeadPicksMostRecentOnDoubleActive(t *testing.T) {
	// Two active rows violate the exclusivity invariant. Routing must still
	// produce a deterministic owner: the most recently started row.
	older := entity.NewTerritory("90210", "old-owner", entity.LeadTypeSeller)
	newer := entity.NewTerritory("90210", "new-owner", entity.LeadTypeSeller)

	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "90210").
		Return([]*entity.Territory{newer, older}, nil)

	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByID", mock.Anything, "new-owner").Return(ownerProfile("new-owner"), nil)

	producer := new(MockQueueProducer)
	producer.On("PublishLeadAssigned", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, territoryRepo, profileRepo, producer)

	out, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Name:    "Jane Seller",
		ZipCode: "90210",
		Source:  "public_intake",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, out.Lead.OwnerID) {
		assert.Equal(t, "new-owner", *out.Lead.OwnerID)
	}
}

func TestCreateLeadPublishFailureDoesNotFailCreation(t *testing.T) {
	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "90210").
		Return([]*entity.Territory{entity.NewTerritory("90210", "user-1", entity.LeadTypeSeller)}, nil)

	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByID", mock.Anything, "user-1").Return(ownerProfile("user-1"), nil)

	producer := new(MockQueueProducer)
	producer.On("PublishLeadAssigned", mock.Anything, mock.Anything).
		Return(errors.New("broker unreachable"))

	uc := usecase.NewCreateLeadUseCase(leadRepo, territoryRepo, profileRepo, producer)

	out, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Name:    "Jane Seller",
		ZipCode: "90210",
		Source:  "public_intake",
	})

	// Lead creation commits regardless of the broker.
	assert.NoError(t, err)
	assert.True(t, out.Assigned)
}

func TestCreateLeadValidation(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewCreateLeadUseCase(leadRepo, new(MockTerritoryRepository), new(MockProfileRepository), new(MockQueueProducer))

	cases := []usecase.CreateLeadInput{
		{Name: "", ZipCode: "90210"},
		{Name: "Jane", ZipCode: "bad"},
		{Name: "Jane", ZipCode: "90210", Email: "not-an-email"},
		{Name: "Jane", ZipCode: "90210", Phone: "123"},
	}
	for _, input := range cases {
		out, err := uc.Execute(context.Background(), input)
		assert.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, usecase.IsDomainError(err))
	}

	leadRepo.AssertNotCalled(t, "Create")
}

func TestReassignLead(t *testing.T) {
	lead := entity.NewLead("Jane Seller", "90210", "public_intake")
	oldOwner := "old-owner"
	lead.OwnerID = &oldOwner

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leadRepo.On("Update", mock.Anything, lead).Return(nil)

	territoryRepo := new(MockTerritoryRepository)
	territoryRepo.On("FindActiveByZip", mock.Anything, "90210").
		Return([]*entity.Territory{entity.NewTerritory("90210", "new-owner", entity.LeadTypeSeller)}, nil)

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByID", mock.Anything, "new-owner").Return(ownerProfile("new-owner"), nil)

	producer := new(MockQueueProducer)
	producer.On("PublishLeadAssigned", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, territoryRepo, profileRepo, producer)

	out, err := uc.Reassign(context.Background(), lead.ID)
	assert.NoError(t, err)
	assert.True(t, out.Assigned)
	assert.Equal(t, "new-owner", *out.Lead.OwnerID)
}

func TestUpdateLeadOwnershipCheck(t *testing.T) {
	lead := entity.NewLead("Jane Seller", "90210", "public_intake")
	owner := "user-1"
	lead.OwnerID = &owner

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leadRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, new(MockTerritoryRepository), new(MockProfileRepository), new(MockQueueProducer))

	status := "working"

	// Someone else's lead.
	_, err := uc.Update(context.Background(), usecase.UpdateLeadInput{
		LeadID:  lead.ID,
		ActorID: "intruder",
		Status:  &status,
	})
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	// The owner may update.
	updated, err := uc.Update(context.Background(), usecase.UpdateLeadInput{
		LeadID:  lead.ID,
		ActorID: "user-1",
		Status:  &status,
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.LeadStatusWorking, updated.Status)

	// An admin may update anyone's lead.
	archived := true
	updated, err = uc.Update(context.Background(), usecase.UpdateLeadInput{
		LeadID:     lead.ID,
		ActorID:    "admin-1",
		ActorAdmin: true,
		Archived:   &archived,
	})
	assert.NoError(t, err)
	assert.True(t, updated.Archived)
}

func TestUpdateLeadRejectsUnknownStatus(t *testing.T) {
	lead := entity.NewLead("Jane Seller", "90210", "public_intake")
	owner := "user-1"
	lead.OwnerID = &owner

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, new(MockTerritoryRepository), new(MockProfileRepository), new(MockQueueProducer))

	bad := "unknown"
	_, err := uc.Update(context.Background(), usecase.UpdateLeadInput{
		LeadID:  lead.ID,
		ActorID: "user-1",
		Status:  &bad,
	})
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	leadRepo.AssertNotCalled(t, "Update")
}
