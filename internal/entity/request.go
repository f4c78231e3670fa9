package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TerritoryRequestStatus tracks a claim attempt from checkout to completion.
type TerritoryRequestStatus string

const (
	RequestStatusPending   TerritoryRequestStatus = "pending"
	RequestStatusCompleted TerritoryRequestStatus = "completed"
	RequestStatusCanceled  TerritoryRequestStatus = "canceled"
)

// TerritoryRequest records that a user started checkout for a zip. Completed
// by the claim workflow once payment lands; duplicate webhook deliveries hit
// an already-completed request and are harmless.
type TerritoryRequest struct {
	ID              string                 `json:"id"`
	ZipCode         string                 `json:"zip_code"`
	UserID          string                 `json:"user_id"`
	LeadType        LeadType               `json:"lead_type"`
	Status          TerritoryRequestStatus `json:"status"`
	CheckoutSession string                 `json:"checkout_session,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func NewTerritoryRequest(zipCode, userID string, leadType LeadType, checkoutSession string) *TerritoryRequest {
	now := time.Now()
	return &TerritoryRequest{
		ID:              uuid.New().String(),
		ZipCode:         zipCode,
		UserID:          userID,
		LeadType:        leadType,
		Status:          RequestStatusPending,
		CheckoutSession: checkoutSession,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type TerritoryRequestRepositoryInterface interface {
	Create(ctx context.Context, req *TerritoryRequest) error
	// MarkCompleted flips every pending request for (zip, user) to completed.
	MarkCompleted(ctx context.Context, zipCode, userID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
