package ports

import (
	"context"

	"github.com/storo/booking-api/internal/core/domain"
)

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalPartners    int64 `json:"total_partners"`
	ApprovedPartners int64 `json:"approved_partners"`
	PendingPartners  int64 `json:"pending_partners"`
	TotalUsers       int64 `json:"total_users"`
}

// PartnerWithOwner pairs a partner with its owning account. The owner's
// credential fields are never serialized.
type PartnerWithOwner struct {
	Partner *domain.Partner `json:"partner"`
	Owner   *domain.User    `json:"user"`
}

// AdminService implements the admin approval workflow.
type AdminService interface {
	Stats(ctx context.Context) (*PlatformStats, error)
	ListPending(ctx context.Context) ([]*PartnerWithOwner, error)
	ListApproved(ctx context.Context) ([]*PartnerWithOwner, error)
	// Approve is idempotent: approving an already-approved partner succeeds
	// without change.
	Approve(ctx context.Context, partnerID string) (*domain.Partner, error)
	// Reject deletes the partner and its paired owner account.
	Reject(ctx context.Context, partnerID string) error
}
