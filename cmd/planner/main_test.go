package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/client"
)

func TestRun_Create(t *testing.T) {
	tripID := uuid.New()
	var got api.CreateTripRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /trips", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		assert.NoError(t, json.NewEncoder(w).Encode(api.TripIDResponse{TripID: tripID}))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	start := time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)
	end := time.Now().UTC().AddDate(0, 0, 13).Format(time.DateOnly)
	var out bytes.Buffer

	err := run(context.Background(), []string{
		"-api", srv.URL, "create",
		"-destination", "Florianópolis",
		"-start", start, "-end", end,
		"-owner-name", "Ana", "-owner-email", "Ana@X.com",
		"-invite", "bob@x.com, carol@x.com",
	}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), tripID.String())
	assert.Equal(t, "ana@x.com", got.OwnerEmail)
	assert.Equal(t, []string{"bob@x.com", "carol@x.com"}, got.EmailsToInvite)
}

func TestRun_Create_InvalidGuestNeverReachesServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	}))
	t.Cleanup(srv.Close)

	start := time.Now().UTC().AddDate(0, 0, 1).Format(time.DateOnly)
	err := run(context.Background(), []string{
		"-api", srv.URL, "create",
		"-destination", "Florianópolis", "-start", start, "-end", start,
		"-invite", "bob",
	}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, describe(err), "Invalid email.")
}

func TestRun_Activities(t *testing.T) {
	tripID := uuid.New()
	day := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /trips/{id}/activity", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(api.ActivitiesResponse{Activities: []api.ActivityDay{
			{Date: day, Activities: []api.Activity{{ID: uuid.New(), Title: "Kart", OccursAt: day.Add(14 * time.Hour)}}},
			{Date: day.AddDate(0, 0, 1), Activities: []api.Activity{}},
		}}))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	var out bytes.Buffer

	err := run(context.Background(), []string{"-api", srv.URL, "activities", "-trip", tripID.String()}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Mon, 18 Aug\n  14:00  Kart\n")
	assert.Contains(t, out.String(), "Tue, 19 Aug\n  nothing planned\n")
}

func TestRun_MissingTrip(t *testing.T) {
	err := run(context.Background(), []string{"links"}, &bytes.Buffer{})

	assert.EqualError(t, err, "-trip is required")
}

func TestRun_NoCommand(t *testing.T) {
	err := run(context.Background(), nil, &bytes.Buffer{})

	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestDescribe(t *testing.T) {
	apiErr := &client.APIError{
		Status:  http.StatusUnprocessableEntity,
		Message: "Invalid input",
		Fields:  map[string][]string{"url": {"must be a valid URL"}},
	}

	assert.Equal(t, client.FriendlyGeneric+"\n  url: must be a valid URL", describe(apiErr))
	assert.Equal(t, client.FriendlyNotFound, describe(&client.APIError{Status: http.StatusNotFound, Message: "Link not found"}))
}
