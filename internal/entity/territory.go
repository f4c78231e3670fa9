package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Billing convention: every claim starts a 30-day cycle plus a 7-day initial
// lead-delivery grace period. Applied uniformly, no per-call-site variants.
const (
	BillingCycleDays  = 30
	LeadDeliveryGrace = 7
	BillingOffsetDays = BillingCycleDays + LeadDeliveryGrace
)

// LeadType classifies which kind of leads a territory receives.
type LeadType string

const (
	LeadTypeSeller LeadType = "seller"
	LeadTypeBuyer  LeadType = "buyer"
)

// ParseLeadType maps a persisted string onto the enum. Unknown values are an
// error at the boundary, not a silent passthrough.
func ParseLeadType(s string) (LeadType, error) {
	switch LeadType(s) {
	case LeadTypeSeller:
		return LeadTypeSeller, nil
	case LeadTypeBuyer:
		return LeadTypeBuyer, nil
	default:
		return "", fmt.Errorf("unknown lead type %q", s)
	}
}

// Territory is the exclusive right of one user to receive leads for one zip
// code during an active period. At most one row per zip may be active;
// historical inactive rows from prior owners may coexist.
type Territory struct {
	ID              string    `json:"id"`
	ZipCode         string    `json:"zip_code"`
	UserID          string    `json:"user_id"`
	LeadType        LeadType  `json:"lead_type"`
	Active          bool      `json:"active"`
	StartDate       time.Time `json:"start_date"`
	NextBillingDate time.Time `json:"next_billing_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewTerritory builds an active territory starting now.
func NewTerritory(zipCode, userID string, leadType LeadType) *Territory {
	now := time.Now()
	return &Territory{
		ID:              uuid.New().String(),
		ZipCode:         zipCode,
		UserID:          userID,
		LeadType:        leadType,
		Active:          true,
		StartDate:       now,
		NextBillingDate: now.AddDate(0, 0, BillingOffsetDays),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type TerritoryRepositoryInterface interface {
	// ClaimActive atomically inserts t as the active territory for its zip.
	// If the zip is already active for the same user it returns the existing
	// row and no error (idempotent re-claim). If it is active for another
	// user it returns ErrTerritoryUnavailable. The storage layer enforces
	// this with a conditional write, not a check-then-insert.
	ClaimActive(ctx context.Context, t *Territory) (*Territory, error)

	// FindActiveByZip returns active rows for the zip, most recent start
	// first. There is at most one; callers still tolerate more.
	FindActiveByZip(ctx context.Context, zipCode string) ([]*Territory, error)

	FindByID(ctx context.Context, id string) (*Territory, error)
	FindByUserID(ctx context.Context, userID string) ([]*Territory, error)
	Deactivate(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
