package ports

import (
	"context"

	"github.com/storo/booking-api/internal/core/domain"
)

// PartnerRepository defines persistence operations for partners.
type PartnerRepository interface {
	Create(ctx context.Context, p *domain.Partner) (*domain.Partner, error)
	FindByID(ctx context.Context, id string) (*domain.Partner, error)
	// FindNearby returns approved partners within radiusMeters of the point,
	// nearest first. Unapproved partners are never returned.
	FindNearby(ctx context.Context, lng, lat float64, radiusMeters int) ([]*domain.Partner, error)
	// ListByApproval returns partners with the given approval flag, newest first.
	ListByApproval(ctx context.Context, approved bool) ([]*domain.Partner, error)
	// Approve sets the approval flag in a single conditional update. Approving
	// an already-approved partner is a no-op success.
	Approve(ctx context.Context, id string) (*domain.Partner, error)
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
	CountByApproval(ctx context.Context, approved bool) (int64, error)
}
