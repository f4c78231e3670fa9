package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the lifecycle of a lead in the owner's pipeline.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusWorking   LeadStatus = "working"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusDeleted   LeadStatus = "deleted"
)

func ParseLeadStatus(s string) (LeadStatus, error) {
	switch LeadStatus(s) {
	case LeadStatusNew:
		return LeadStatusNew, nil
	case LeadStatusWorking:
		return LeadStatusWorking, nil
	case LeadStatusQualified:
		return LeadStatusQualified, nil
	case LeadStatusClosed:
		return LeadStatusClosed, nil
	case LeadStatusDeleted:
		return LeadStatusDeleted, nil
	default:
		return "", fmt.Errorf("unknown lead status %q", s)
	}
}

// Lead is a prospective seller contact destined for whoever owns the lead's
// target zip code. OwnerID is nil when no active territory existed at
// assignment time; routing is evaluated once and not re-validated when
// ownership later changes.
type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	ZipCode   string     `json:"zip_code"`
	OwnerID   *string    `json:"owner_id,omitempty"`
	Status    LeadStatus `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	Archived  bool       `json:"archived"`
	Source    string     `json:"source"` // public_intake, admin, welcome_seed
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewLead(name, zipCode, source string) *Lead {
	now := time.Now()
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		ZipCode:   zipCode,
		Status:    LeadStatusNew,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*Lead, error)
	// Update persists status, notes, archived flag and owner assignment.
	Update(ctx context.Context, lead *Lead) error
	DeleteByOwnerID(ctx context.Context, ownerID string) error
}
