package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
	"github.com/gustavopolonio/nlw-journey/testutil"
)

// repos bundles every repo bound to the same rolled-back test transaction.
type repos struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	activities   repo.ActivityRepo
	links        repo.LinkRepo
}

// newTestRepos opens a transaction against the test database and returns repos
// backed by it. The transaction is rolled back when the test finishes, giving
// free per-test isolation.
func newTestRepos(t *testing.T) repos {
	t.Helper()
	tx := testutil.NewTx(t)
	return repos{
		trips:        repo.NewTripRepo(tx),
		participants: repo.NewParticipantRepo(tx),
		activities:   repo.NewActivityRepo(tx),
		links:        repo.NewLinkRepo(tx),
	}
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
func tripFixture() domain.Trip {
	return domain.Trip{
		Destination: "Florianópolis",
		StartsAt:    time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC),
	}
}

func ownerFixture() domain.Participant {
	name := "Ana"
	return domain.Participant{Name: &name, Email: "ana@x.com", IsOwner: true, IsConfirmed: true}
}

// createTrip persists the fixture trip with its owner and returns it.
func createTrip(t *testing.T, r repos) domain.Trip {
	t.Helper()
	trip, _, err := r.trips.Create(context.Background(), tripFixture(), []domain.Participant{ownerFixture()})
	require.NoError(t, err)
	return trip
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	input := tripFixture()
	trip, members, err := r.trips.Create(ctx, input, []domain.Participant{
		ownerFixture(),
		{Email: "bob@x.com"},
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, trip.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Destination, trip.Destination)
	assert.True(t, trip.StartsAt.Equal(input.StartsAt), "StartsAt mismatch")
	assert.True(t, trip.EndsAt.Equal(input.EndsAt), "EndsAt mismatch")
	assert.False(t, trip.IsConfirmed)
	assert.False(t, trip.CreatedAt.IsZero(), "CreatedAt should be set by DB")

	require.Len(t, members, 2)
	assert.Equal(t, trip.ID, members[0].TripID)
	assert.True(t, members[0].IsOwner)
	assert.True(t, members[0].IsConfirmed)
	require.NotNil(t, members[0].Name)
	assert.Equal(t, "Ana", *members[0].Name)
	assert.False(t, members[1].IsOwner)
	assert.False(t, members[1].IsConfirmed)
	assert.Nil(t, members[1].Name)
}

func TestTripRepo_Create_DuplicateEmailRollsBack(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, _, err := r.trips.Create(ctx, tripFixture(), []domain.Participant{
		ownerFixture(),
		{Email: "ana@x.com"},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestRepos(t)
	created := createTrip(t, r)

	got, err := r.trips.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Destination, got.Destination)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.trips.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	created := createTrip(t, r)

	created.Destination = "Rio de Janeiro"
	created.EndsAt = created.EndsAt.AddDate(0, 0, 2)

	updated, err := r.trips.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Rio de Janeiro", updated.Destination)
	assert.True(t, updated.EndsAt.Equal(created.EndsAt))
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTestRepos(t)

	ghost := tripFixture()
	ghost.ID = uuid.New()

	_, err := r.trips.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Confirm_OnlyOnce(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	created := createTrip(t, r)

	first, changed, err := r.trips.Confirm(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, first.IsConfirmed)

	second, changed, err := r.trips.Confirm(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, changed, "second confirmation must not report a change")
	assert.True(t, second.IsConfirmed)
	assert.Equal(t, first.Destination, second.Destination)
}

func TestTripRepo_Confirm_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, _, err := r.trips.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
