package service_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/mail"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
	"github.com/gustavopolonio/nlw-journey/internal/service"
)

// ---- mock repos ------------------------------------------------------------
// Each method is a function field; set only the ones your test needs.
// Calling an unset method panics, which flags unexpected repo access.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	return m.create(ctx, trip, participants)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	return m.confirm(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockParticipantRepo struct {
	createMany   func(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	confirm      func(ctx context.Context, id uuid.UUID) (domain.Participant, bool, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockParticipantRepo) CreateMany(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error) {
	return m.createMany(ctx, tripID, emails)
}
func (m *mockParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, bool, error) {
	return m.confirm(ctx, id)
}
func (m *mockParticipantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

type mockActivityRepo struct {
	create       func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	countOutside func(ctx context.Context, tripID uuid.UUID, from, until time.Time) (int, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.create(ctx, activity)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockActivityRepo) CountOutside(ctx context.Context, tripID uuid.UUID, from, until time.Time) (int, error) {
	return m.countOutside(ctx, tripID, from, until)
}
func (m *mockActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockLinkRepo struct {
	create       func(ctx context.Context, link domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockLinkRepo) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	return m.create(ctx, link)
}
func (m *mockLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.LinkRepo = (*mockLinkRepo)(nil)

// ---- mock mailer -----------------------------------------------------------

// mockMailer records every message. It is called concurrently by invitations.
type mockMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mail.Message) (mail.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.err != nil {
		return mail.Receipt{}, m.err
	}
	return mail.Receipt{MessageID: uuid.NewString()}, nil
}

// recipients returns the addresses mailed so far, sorted.
func (m *mockMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, msg := range m.sent {
		out[i] = msg.To
	}
	sort.Strings(out)
	return out
}

var _ mail.Mailer = (*mockMailer)(nil)

// ---- shared fixtures -------------------------------------------------------

const apiBaseURL = "http://api.test"

// today is the fixed "now" of every service test.
var today = time.Date(2025, 8, 10, 9, 30, 0, 0, time.UTC)

func newNotifier(m mail.Mailer) *service.Notifier {
	return service.NewNotifier(m, slog.New(slog.NewTextHandler(io.Discard, nil)), apiBaseURL, 2)
}

// florianopolis runs from 17 to 23 August 2025.
func florianopolis() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Destination: "Florianópolis",
		StartsAt:    time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC),
	}
}

func tripRepoWith(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}

func guest(tripID uuid.UUID, email string, confirmed bool) domain.Participant {
	return domain.Participant{ID: uuid.New(), TripID: tripID, Email: email, IsConfirmed: confirmed}
}

func owner(tripID uuid.UUID) domain.Participant {
	name := "Ana"
	return domain.Participant{ID: uuid.New(), TripID: tripID, Name: &name, Email: "ana@x.com", IsOwner: true, IsConfirmed: true}
}
