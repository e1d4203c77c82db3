package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/validation"
)

// Step is a stage of the trip-creation workflow.
type Step int

const (
	StepDestinationAndDates Step = iota
	StepGuests
	StepOwnerDetails
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepDestinationAndDates:
		return "collecting-destination-and-dates"
	case StepGuests:
		return "collecting-guests"
	case StepOwnerDetails:
		return "confirming-owner-details"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// ErrWrongStep is returned when an action is not allowed in the current step.
var ErrWrongStep = errors.New("action not allowed in this step")

const (
	msgInvalidEmail   = "Invalid email."
	msgDuplicateEmail = "Email already added."
)

// TripCreator submits a finished trip. *Client implements it.
type TripCreator interface {
	CreateTrip(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error)
}

var _ TripCreator = (*Client)(nil)

type destinationForm struct {
	Destination string `json:"destination" validate:"required,min=3"`
}

// CreateTripSession walks a user through creating a trip:
// destination and dates, then guests, then the owner's own details.
// Every transition validates locally with the same rules the server applies,
// but the server answer on Submit is what counts.
//
// A session is not safe for concurrent use.
type CreateTripSession struct {
	creator TripCreator
	now     func() time.Time

	step        Step
	destination string
	startsAt    time.Time
	endsAt      time.Time
	guests      []string
	tripID      uuid.UUID
}

// NewCreateTripSession starts a session in StepDestinationAndDates.
func NewCreateTripSession(creator TripCreator) *CreateTripSession {
	return &CreateTripSession{creator: creator, now: time.Now}
}

// WithClock replaces the clock used to decide what "today" is.
func (s *CreateTripSession) WithClock(now func() time.Time) *CreateTripSession {
	s.now = now
	return s
}

func (s *CreateTripSession) Step() Step { return s.step }

func (s *CreateTripSession) Destination() string { return s.destination }

func (s *CreateTripSession) Dates() (startsAt, endsAt time.Time) { return s.startsAt, s.endsAt }

// Guests returns a copy of the current guest list.
func (s *CreateTripSession) Guests() []string { return slices.Clone(s.guests) }

// TripID is the created trip's id once the session is submitted.
func (s *CreateTripSession) TripID() uuid.UUID { return s.tripID }

// SetDestinationAndDates records the first step and moves on to guests.
// On a validation failure the session stays where it is.
func (s *CreateTripSession) SetDestinationAndDates(destination string, startsAt, endsAt time.Time) error {
	if err := s.expect(StepDestinationAndDates); err != nil {
		return err
	}

	destination = strings.TrimSpace(destination)
	fields := validation.Struct(destinationForm{Destination: destination})
	if fields == nil {
		fields = domain.FieldErrors{}
	}
	switch {
	case startsAt.IsZero():
		fields.Add("starts_at", "is required")
	case domain.Day(startsAt).Before(domain.Day(s.now())):
		fields.Add("starts_at", "Invalid trip start date.")
	}
	switch {
	case endsAt.IsZero():
		fields.Add("ends_at", "is required")
	case startsAt.IsZero():
		// nothing to compare against
	case domain.Day(endsAt).Before(domain.Day(startsAt)), domain.Trip{StartsAt: startsAt, EndsAt: endsAt}.TooLong():
		fields.Add("ends_at", "Invalid trip end date.")
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "Invalid destination or dates", Fields: fields}
	}

	s.destination = destination
	s.startsAt = startsAt
	s.endsAt = endsAt
	s.step = StepGuests
	return nil
}

// EditDestinationAndDates steps back to the first stage. The guest list is kept.
func (s *CreateTripSession) EditDestinationAndDates() error {
	if s.step != StepGuests && s.step != StepOwnerDetails {
		return fmt.Errorf("client.EditDestinationAndDates: %w: %s", ErrWrongStep, s.step)
	}
	s.step = StepDestinationAndDates
	return nil
}

// AddGuest adds an address to the invite list. Malformed and repeated
// addresses are rejected.
func (s *CreateTripSession) AddGuest(email string) error {
	if err := s.expect(StepGuests); err != nil {
		return err
	}
	email = domain.NormalizeEmail(email)
	if !validation.Email(email) {
		return domain.NewValidationError("email", msgInvalidEmail)
	}
	if slices.Contains(s.guests, email) {
		return domain.NewValidationError("email", msgDuplicateEmail)
	}
	s.guests = append(s.guests, email)
	return nil
}

// RemoveGuest drops email from the invite list and reports whether it was there.
func (s *CreateTripSession) RemoveGuest(email string) bool {
	if s.step != StepGuests {
		return false
	}
	email = domain.NormalizeEmail(email)
	i := slices.Index(s.guests, email)
	if i < 0 {
		return false
	}
	s.guests = slices.Delete(s.guests, i, i+1)
	return true
}

// ContinueToOwnerDetails moves from guests to the confirmation step.
func (s *CreateTripSession) ContinueToOwnerDetails() error {
	if err := s.expect(StepGuests); err != nil {
		return err
	}
	s.step = StepOwnerDetails
	return nil
}

// BackToGuests returns from the confirmation step to the guest list.
func (s *CreateTripSession) BackToGuests() error {
	if err := s.expect(StepOwnerDetails); err != nil {
		return err
	}
	s.step = StepGuests
	return nil
}

// Submit validates the owner's details and creates the trip. The session
// becomes StepSubmitted only when the server accepts it; otherwise it stays in
// StepOwnerDetails so the user can correct and retry.
func (s *CreateTripSession) Submit(ctx context.Context, ownerName, ownerEmail string) (uuid.UUID, error) {
	if err := s.expect(StepOwnerDetails); err != nil {
		return uuid.Nil, err
	}

	req := s.request(strings.TrimSpace(ownerName), domain.NormalizeEmail(ownerEmail))
	if fields := validation.Struct(req); fields != nil {
		return uuid.Nil, &domain.ValidationError{Message: "Invalid owner details", Fields: fields}
	}

	id, err := s.creator.CreateTrip(ctx, req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateTripSession.Submit: %w", err)
	}
	s.tripID = id
	s.step = StepSubmitted
	return id, nil
}

func (s *CreateTripSession) request(ownerName, ownerEmail string) api.CreateTripRequest {
	return api.CreateTripRequest{
		Destination:    s.destination,
		StartsAt:       api.NewTimestamp(s.startsAt),
		EndsAt:         api.NewTimestamp(s.endsAt),
		OwnerName:      ownerName,
		OwnerEmail:     ownerEmail,
		EmailsToInvite: slices.Clone(s.guests),
	}
}

func (s *CreateTripSession) expect(step Step) error {
	if s.step != step {
		return fmt.Errorf("%w: %s", ErrWrongStep, s.step)
	}
	return nil
}
