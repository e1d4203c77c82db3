package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/metrics"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
)

const (
	msgNoNewParticipant = "There is no new participant to invite"
	msgOwnerNotRemoved  = "The trip owner cannot be removed"
)

// ParticipantService implements business logic for Participant operations.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	notifier     *Notifier
}

// NewParticipantService constructs a ParticipantService backed by the provided repos.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo, notifier *Notifier) *ParticipantService {
	return &ParticipantService{trips: trips, participants: participants, notifier: notifier}
}

// Invite adds every address not yet on the trip as an unconfirmed guest and
// emails each new guest. Addresses already on the trip are skipped silently.
// Returns domain.ErrValidation when nothing is left to invite.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}
	existing, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	known := make([]string, len(existing))
	for i, p := range existing {
		known[i] = p.Email
	}
	fresh := domain.UniqueEmails(emails, known...)
	if len(fresh) == 0 {
		return nil, domain.NewValidationError("emails_to_invite", msgNoNewParticipant)
	}

	created, err := s.participants.CreateMany(ctx, tripID, fresh)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}
	metrics.ParticipantsInvited.Add(float64(len(created)))

	s.notifier.Invite(ctx, trip, created)
	return created, nil
}

// ListByTripID returns the trip's participants, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// GetByID returns a single participant.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return p, nil
}

// Confirm marks the participant confirmed. Confirming twice is a no-op.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, changed, err := s.participants.Confirm(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if changed {
		metrics.Confirmations.WithLabelValues("participant").Inc()
	}
	return p, nil
}

// Delete removes a guest from their trip. The owner cannot be removed.
func (s *ParticipantService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ParticipantService.Delete: %w", err)
	}
	if p.IsOwner {
		return domain.NewValidationError("", msgOwnerNotRemoved)
	}
	if err := s.participants.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ParticipantService.Delete: %w", err)
	}
	return nil
}
