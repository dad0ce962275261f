package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// AdminService implements the admin approval workflow. It holds no state of
// its own beyond what the partner and user repositories already carry.
type AdminService struct {
	partners ports.PartnerRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewAdminService(partners ports.PartnerRepository, users ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{partners: partners, users: users, logger: logger}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	total, err := s.partners.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	approved, err := s.partners.CountByApproval(ctx, true)
	if err != nil {
		return nil, err
	}
	pending, err := s.partners.CountByApproval(ctx, false)
	if err != nil {
		return nil, err
	}
	users, err := s.users.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	return &ports.PlatformStats{
		TotalPartners:    total,
		ApprovedPartners: approved,
		PendingPartners:  pending,
		TotalUsers:       users,
	}, nil
}

func (s *AdminService) ListPending(ctx context.Context) ([]*ports.PartnerWithOwner, error) {
	return s.listWithOwners(ctx, false)
}

func (s *AdminService) ListApproved(ctx context.Context) ([]*ports.PartnerWithOwner, error) {
	return s.listWithOwners(ctx, true)
}

func (s *AdminService) listWithOwners(ctx context.Context, approved bool) ([]*ports.PartnerWithOwner, error) {
	partners, err := s.partners.ListByApproval(ctx, approved)
	if err != nil {
		return nil, err
	}

	out := make([]*ports.PartnerWithOwner, 0, len(partners))
	for _, p := range partners {
		owner, err := s.users.FindByPartnerID(ctx, p.ID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				out = append(out, &ports.PartnerWithOwner{Partner: p})
				continue
			}
			return nil, err
		}
		out = append(out, &ports.PartnerWithOwner{Partner: p, Owner: owner})
	}
	return out, nil
}

// Approve makes the partner visible to discovery. Idempotent.
func (s *AdminService) Approve(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.partners.Approve(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("partner_id", partnerID).Msg("partner approved")
	return partner, nil
}

// Reject deletes the partner and cascades to its paired owner account.
func (s *AdminService) Reject(ctx context.Context, partnerID string) error {
	if err := s.partners.Delete(ctx, partnerID); err != nil {
		return err
	}

	if err := s.users.DeleteByPartnerID(ctx, partnerID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Error().Err(err).Str("partner_id", partnerID).Msg("failed to delete paired owner account")
		return err
	}

	s.logger.Info().Str("partner_id", partnerID).Msg("partner rejected and removed")
	return nil
}
