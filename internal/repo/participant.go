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

// ParticipantRepo defines the persistence operations for Participants.
type ParticipantRepo interface {
	// CreateMany inserts one unconfirmed guest per email for the trip, all in one
	// transaction, and returns them in input order.
	CreateMany(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error)

	// GetByID retrieves a participant. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns the trip's participants, owner first, then by creation.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm flips is_confirmed to true. changed is false when the participant
	// was already confirmed. Returns domain.ErrNotFound if absent.
	Confirm(ctx context.Context, id uuid.UUID) (p domain.Participant, changed bool, err error)

	// Delete removes a participant. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

const participantColumns = `id, trip_id, name, email, is_owner, is_confirmed, created_at`

func (r *pgParticipantRepo) CreateMany(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error) {
	created := make([]domain.Participant, 0, len(emails))
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, email := range emails {
			p, err := insertParticipant(ctx, tx, domain.Participant{TripID: tripID, Email: email})
			if err != nil {
				return err
			}
			created = append(created, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.CreateMany: %w", err)
	}
	return created, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM participants WHERE id = @id`

	p, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", notFound(err))
	}
	return p, nil
}

func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY is_owner DESC, created_at, email`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}
	return out, nil
}

func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, bool, error) {
	const q = `
		UPDATE participants
		SET is_confirmed = true
		WHERE id = @id AND NOT is_confirmed
		RETURNING ` + participantColumns

	p, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Participant{}, false, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, false, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	return existing, false, nil
}

func (r *pgParticipantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM participants WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertParticipant writes one participant row using q, which is normally
// the transaction of the calling repo method.
func insertParticipant(ctx context.Context, q querier, p domain.Participant) (domain.Participant, error) {
	const stmt = `
		INSERT INTO participants (trip_id, name, email, is_owner, is_confirmed)
		VALUES (@trip_id, @name, @email, @is_owner, @is_confirmed)
		RETURNING ` + participantColumns

	stored, err := scanParticipant(q.QueryRow(ctx, stmt, pgx.NamedArgs{
		"trip_id":      p.TripID,
		"name":         p.Name, // nil becomes NULL
		"email":        p.Email,
		"is_owner":     p.IsOwner,
		"is_confirmed": p.IsConfirmed,
	}))
	if isUniqueViolation(err) {
		// Lost a race with a concurrent invite for the same address.
		return domain.Participant{}, domain.NewValidationError("emails_to_invite", "Participant "+p.Email+" is already invited.")
	}
	return stored, err
}

func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
		name   pgtype.Text
	)
	if err := s.Scan(&id, &tripID, &name, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt); err != nil {
		return domain.Participant{}, err
	}
	p.ID = toUUID(id)
	p.TripID = toUUID(tripID)
	if name.Valid {
		n := name.String
		p.Name = &n
	}
	return p, nil
}
