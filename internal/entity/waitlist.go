package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WaitlistEntry is an email+zip pair recorded when a visitor wants to hear
// about a claimed zip opening up. Additive only, no uniqueness requirement.
type WaitlistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ZipCode   string    `json:"zip_code"`
	CreatedAt time.Time `json:"created_at"`
}

func NewWaitlistEntry(email, zipCode string) *WaitlistEntry {
	return &WaitlistEntry{
		ID:        uuid.New().String(),
		Email:     email,
		ZipCode:   zipCode,
		CreatedAt: time.Now(),
	}
}

type WaitlistRepositoryInterface interface {
	Create(ctx context.Context, entry *WaitlistEntry) error
	FindByZip(ctx context.Context, zipCode string) ([]*WaitlistEntry, error)
}
