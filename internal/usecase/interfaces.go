package usecase

import (
	"context"

	"github.com/homelead/territory-api/internal/infra/queue"
)

// AvailabilityCacheInterface is the denormalized zip-availability mirror.
// Treated strictly as a cache: on any disagreement the territory table wins,
// and every mutation of the ledger invalidates or rewrites the entry.
type AvailabilityCacheInterface interface {
	// Get returns (claimed, ownerID, hit). A miss is not an error.
	Get(ctx context.Context, zipCode string) (bool, string, bool, error)
	SetClaimed(ctx context.Context, zipCode, ownerID string) error
	SetAvailable(ctx context.Context, zipCode string) error
	Invalidate(ctx context.Context, zipCode string) error
}

type QueueProducerInterface interface {
	PublishLeadAssigned(ctx context.Context, payload queue.LeadAssignedPayload) error
}

// AccountService is the auth provider's admin surface. User ids are opaque.
type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) error
}
