package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a trip together with its initial participants in a single
	// transaction and returns the persisted records with DB-generated ids.
	Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Update overwrites destination and dates of an existing trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Confirm flips is_confirmed to true. changed is false when the trip was
	// already confirmed. Returns domain.ErrNotFound if the trip does not exist.
	Confirm(ctx context.Context, id uuid.UUID) (trip domain.Trip, changed bool, err error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, destination, starts_at, ends_at, is_confirmed, created_at`

// Create inserts the trip row and every participant row, or none of them.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	const q = `
		INSERT INTO trips (destination, starts_at, ends_at, is_confirmed)
		VALUES (@destination, @starts_at, @ends_at, @is_confirmed)
		RETURNING ` + tripColumns

	var (
		created domain.Trip
		members []domain.Participant
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanTrip(tx.QueryRow(ctx, q, pgx.NamedArgs{
			"destination":  trip.Destination,
			"starts_at":    trip.StartsAt,
			"ends_at":      trip.EndsAt,
			"is_confirmed": trip.IsConfirmed,
		}))
		if err != nil {
			return err
		}

		members = make([]domain.Participant, 0, len(participants))
		for _, p := range participants {
			p.TripID = created.ID
			stored, err := insertParticipant(ctx, tx, p)
			if err != nil {
				return err
			}
			members = append(members, stored)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return created, members, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", notFound(err))
	}
	return result, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    starts_at   = @starts_at,
		    ends_at     = @ends_at
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", notFound(err))
	}
	return result, nil
}

// Confirm only writes when the trip is still unconfirmed, so concurrent
// confirmations report changed=true exactly once.
func (r *pgTripRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	const q = `
		UPDATE trips
		SET is_confirmed = true
		WHERE id = @id AND NOT is_confirmed
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err == nil {
		return result, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Trip{}, false, fmt.Errorf("repo.TripRepo.Confirm: %w", err)
	}

	// No row updated: either already confirmed or missing.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("repo.TripRepo.Confirm: %w", err)
	}
	return existing, false, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)
	if err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt); err != nil {
		return domain.Trip{}, err
	}
	t.ID = toUUID(id)
	return t, nil
}
