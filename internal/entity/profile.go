package entity

import (
	"context"
	"time"
)

// UserProfile is one-to-one with an authenticated account. The ID is the auth
// provider's user id, treated as opaque. It must exist before territory or
// lead operations reference the user; bootstrap is get-or-create.
type UserProfile struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	SecondaryEmails []string  `json:"secondary_emails"`
	SecondaryPhones []string  `json:"secondary_phones"`
	NotifyEmail     bool      `json:"notify_email"`
	NotifySMS       bool      `json:"notify_sms"`
	IsAdmin         bool      `json:"is_admin"`
	LeadType        LeadType  `json:"lead_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultProfile is the minimal profile created on first touch: email
// notifications on, SMS off, seller classification, empty contact lists.
func DefaultProfile(userID, email string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		ID:              userID,
		Email:           email,
		SecondaryEmails: []string{},
		SecondaryPhones: []string{},
		NotifyEmail:     true,
		NotifySMS:       false,
		LeadType:        LeadTypeSeller,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Emails returns every address notifications may be delivered to.
func (p *UserProfile) Emails() []string {
	var out []string
	if p.Email != "" {
		out = append(out, p.Email)
	}
	return append(out, p.SecondaryEmails...)
}

// Phones returns every number notifications may be delivered to.
func (p *UserProfile) Phones() []string {
	var out []string
	if p.Phone != "" {
		out = append(out, p.Phone)
	}
	return append(out, p.SecondaryPhones...)
}

type ProfileRepositoryInterface interface {
	// EnsureExists inserts a default profile unless one is already present,
	// then returns the stored row. Safe under concurrent calls for the same
	// id (conditional insert, not read-then-insert).
	EnsureExists(ctx context.Context, profile *UserProfile) (*UserProfile, error)

	FindByID(ctx context.Context, id string) (*UserProfile, error)
	Update(ctx context.Context, profile *UserProfile) error
	Delete(ctx context.Context, id string) error
}
