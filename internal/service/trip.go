// Package service contains the business logic for the plann.er API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/metrics"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
)

const (
	msgInvalidStartDate = "Invalid trip start date."
	msgInvalidEndDate   = "Invalid trip end date."
	msgDatesExcludeActs = "Trip dates exclude existing activities."
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	activities   repo.ActivityRepo
	notifier     *Notifier
	now          func() time.Time
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, activities repo.ActivityRepo, notifier *Notifier) *TripService {
	return &TripService{
		trips:        trips,
		participants: participants,
		activities:   activities,
		notifier:     notifier,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to decide what "today" is.
func (s *TripService) WithClock(now func() time.Time) *TripService {
	s.now = now
	return s
}

// Create validates the request, persists the trip with its owner and guests in
// one transaction, then emails the owner a confirmation link.
// Returns domain.ErrValidation if the destination or dates are invalid.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	trip := domain.Trip{
		Destination: strings.TrimSpace(in.Destination),
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}
	if err := validateTrip(trip, s.now()); err != nil {
		return domain.Trip{}, err
	}

	ownerName := strings.TrimSpace(in.OwnerName)
	if ownerName == "" {
		return domain.Trip{}, domain.NewValidationError("owner_name", "Owner name is required.")
	}
	ownerEmail := domain.NormalizeEmail(in.OwnerEmail)
	if ownerEmail == "" {
		return domain.Trip{}, domain.NewValidationError("owner_email", "Owner email is required.")
	}

	members := []domain.Participant{{
		Name:        &ownerName,
		Email:       ownerEmail,
		IsOwner:     true,
		IsConfirmed: true,
	}}
	for _, email := range domain.UniqueEmails(in.EmailsToInvite, ownerEmail) {
		members = append(members, domain.Participant{Email: email})
	}

	created, participants, err := s.trips.Create(ctx, trip, members)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	metrics.TripsCreated.Inc()

	for _, p := range participants {
		if p.IsOwner {
			s.notifier.TripCreated(ctx, created, p)
		}
	}
	return created, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Update changes destination and dates. Besides the creation rules, the new
// range must still cover every activity already planned for the trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Destination = strings.TrimSpace(trip.Destination)
	if _, err := s.trips.GetByID(ctx, trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := validateTrip(trip, s.now()); err != nil {
		return domain.Trip{}, err
	}

	from, until := domain.Day(trip.StartsAt), domain.Day(trip.EndsAt).AddDate(0, 0, 1)
	outside, err := s.activities.CountOutside(ctx, trip.ID, from, until)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if outside > 0 {
		return domain.Trip{}, domain.NewValidationError("", msgDatesExcludeActs)
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Confirm marks the trip confirmed. The first confirmation invites the
// unconfirmed guests listed at creation; guests added through Invite already
// got their email. Later calls change nothing.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, changed, err := s.trips.Confirm(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if !changed {
		return trip, nil
	}
	metrics.Confirmations.WithLabelValues("trip").Inc()

	participants, err := s.participants.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	var pending []domain.Participant
	for _, p := range participants {
		if !p.IsOwner && !p.IsConfirmed && p.InvitedWithTrip(trip) {
			pending = append(pending, p)
		}
	}
	s.notifier.Invite(ctx, trip, pending)
	return trip, nil
}

// validateTrip enforces the rules shared by Create and Update, at day
// granularity:
//   - Destination must have at least 3 characters.
//   - StartsAt must not be before today.
//   - EndsAt must not be before StartsAt.
//   - The trip must not span more than domain.MaxTripDays days.
func validateTrip(trip domain.Trip, now time.Time) error {
	if len([]rune(trip.Destination)) < 3 {
		return domain.NewValidationError("destination", "Destination must have at least 3 characters.")
	}
	if domain.Day(trip.StartsAt).Before(domain.Day(now)) {
		return domain.NewValidationError("starts_at", msgInvalidStartDate)
	}
	if domain.Day(trip.EndsAt).Before(domain.Day(trip.StartsAt)) || trip.TooLong() {
		return domain.NewValidationError("ends_at", msgInvalidEndDate)
	}
	return nil
}
