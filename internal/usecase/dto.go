package usecase

import "github.com/homelead/territory-api/internal/entity"

// AvailabilityStatus is the checker's verdict for a zip.
type AvailabilityStatus string

const (
	AvailabilityAvailable     AvailabilityStatus = "available"
	AvailabilityClaimed       AvailabilityStatus = "claimed"
	AvailabilityInvalidFormat AvailabilityStatus = "invalid_format"
)

type AvailabilityResult struct {
	ZipCode string             `json:"zip_code"`
	Status  AvailabilityStatus `json:"status"`
	// OwnerID is only populated on the ledger (admin) path; public callers
	// never see the current owner's identity.
	OwnerID string `json:"owner_id,omitempty"`
}

type ClaimTerritoryInput struct {
	ZipCode  string `json:"zip_code"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	LeadType string `json:"lead_type"`
	Source   string `json:"source"` // payment_success, webhook, admin
}

type ClaimTerritoryOutput struct {
	Territory *entity.Territory `json:"territory"`
	// AlreadyOwned marks the idempotent no-op path: the user held this exact
	// zip before the call.
	AlreadyOwned bool `json:"already_owned"`
}

type CreateLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`
	Source  string `json:"source"`
}

type CreateLeadOutput struct {
	Lead     *entity.Lead `json:"lead"`
	Assigned bool         `json:"assigned"`
}

type UpdateLeadInput struct {
	LeadID     string
	ActorID    string
	ActorAdmin bool

	Status   *string
	Notes    *string
	Archived *bool
}
