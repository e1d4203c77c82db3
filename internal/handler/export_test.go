package handler_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/handler"
)

func exportFixture() (domain.Trip, []domain.ItineraryRow) {
	trip := tripFixture()
	occurs := time.Date(2025, 8, 18, 14, 0, 0, 0, time.UTC)
	return trip, []domain.ItineraryRow{{
		TripID:        trip.ID.String(),
		Destination:   trip.Destination,
		TripStartsAt:  "2025-08-17",
		TripEndsAt:    "2025-08-23",
		ActivityID:    uuid.NewString(),
		ActivityTitle: "Kart",
		OccursAt:      &occurs,
	}}
}

// exportHandler returns a router whose export service knows a single trip,
// and the base path of that trip's export.
func exportHandler() (http.Handler, string) {
	trip, rows := exportFixture()
	svc := &mockExportServicer{
		export: func(_ context.Context, id uuid.UUID) (domain.Trip, []domain.ItineraryRow, error) {
			if id != trip.ID {
				return domain.Trip{}, nil, domain.ErrNotFound
			}
			return trip, rows, nil
		},
	}
	return newHTTPHandler(handler.Services{Export: svc}), "/trips/" + trip.ID.String() + "/export"
}

func TestGetExport_DefaultJSON(t *testing.T) {
	h, path := exportHandler()
	rec := do(t, h, http.MethodGet, path, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	resp := decode[api.ItineraryResponse](t, rec)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Kart", resp.Rows[0].ActivityTitle)
	require.NotNil(t, resp.Rows[0].OccursAt)
}

func TestGetExport_CSV(t *testing.T) {
	h, path := exportHandler()
	rec := do(t, h, http.MethodGet, path+"?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "itinerary.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, "Kart", records[1][6])
	assert.Equal(t, "2025-08-18T14:00:00Z", records[1][7])
	assert.Equal(t, "false", records[1][4])
}

func TestGetExport_ICS(t *testing.T) {
	h, path := exportHandler()
	rec := do(t, h, http.MethodGet, path+"?format=ics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")

	cal, err := ical.NewDecoder(rec.Body).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2, "one all-day trip event plus one per activity")

	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Trip to Florianópolis", summary)

	start, err := events[1].DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 18, 14, 0, 0, 0, time.UTC), start)
}

func TestGetExport_400_UnknownFormat(t *testing.T) {
	h, path := exportHandler()
	rec := do(t, h, http.MethodGet, path+"?format=xml", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetExport_404(t *testing.T) {
	h, _ := exportHandler()
	rec := do(t, h, http.MethodGet, "/trips/"+uuid.NewString()+"/export", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
