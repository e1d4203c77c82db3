package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

func TestParticipantRepo_CreateMany(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	trip := createTrip(t, r)

	created, err := r.participants.CreateMany(ctx, trip.ID, []string{"bob@x.com", "carol@x.com"})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "bob@x.com", created[0].Email)
	assert.Equal(t, "carol@x.com", created[1].Email)
	for _, p := range created {
		assert.Equal(t, trip.ID, p.TripID)
		assert.False(t, p.IsOwner)
		assert.False(t, p.IsConfirmed)
	}
}

func TestParticipantRepo_CreateMany_ExistingEmail(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	trip := createTrip(t, r)

	_, err := r.participants.CreateMany(ctx, trip.ID, []string{"dave@x.com", "ana@x.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The whole batch is rolled back.
	all, err := r.participants.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestParticipantRepo_ListByTripID_OwnerFirst(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	trip := createTrip(t, r)
	_, err := r.participants.CreateMany(ctx, trip.ID, []string{"bob@x.com"})
	require.NoError(t, err)

	all, err := r.participants.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsOwner)
	assert.Equal(t, "bob@x.com", all[1].Email)
}

func TestParticipantRepo_Confirm_Idempotent(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	trip := createTrip(t, r)
	guests, err := r.participants.CreateMany(ctx, trip.ID, []string{"bob@x.com"})
	require.NoError(t, err)

	p, changed, err := r.participants.Confirm(ctx, guests[0].ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, p.IsConfirmed)

	again, changed, err := r.participants.Confirm(ctx, guests[0].ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, p.Email, again.Email)
}

func TestParticipantRepo_Delete(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	trip := createTrip(t, r)
	guests, err := r.participants.CreateMany(ctx, trip.ID, []string{"bob@x.com"})
	require.NoError(t, err)

	require.NoError(t, r.participants.Delete(ctx, guests[0].ID))

	_, err = r.participants.GetByID(ctx, guests[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "participant should be gone after delete")
}

func TestParticipantRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepos(t)

	err := r.participants.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
