package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/handler"
)

// ---- mock servicers --------------------------------------------------------
// Set only the method fields your test needs.

type mockTripServicer struct {
	create  func(ctx context.Context, in domain.NewTrip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.confirm(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockParticipantServicer struct {
	invite       func(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	confirm      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockParticipantServicer) Invite(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error) {
	return m.invite(ctx, tripID, emails)
}
func (m *mockParticipantServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.confirm(ctx, id)
}
func (m *mockParticipantServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ParticipantServicer = (*mockParticipantServicer)(nil)

type mockActivityServicer struct {
	create    func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	listByDay func(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.create(ctx, activity)
}
func (m *mockActivityServicer) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error) {
	return m.listByDay(ctx, tripID)
}
func (m *mockActivityServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockLinkServicer struct {
	create       func(ctx context.Context, link domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockLinkServicer) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	return m.create(ctx, link)
}
func (m *mockLinkServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLinkServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.LinkServicer = (*mockLinkServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ItineraryRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ItineraryRow, error) {
	return m.export(ctx, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const webBaseURL = "http://web.test"

// newHTTPHandler wires a Server with the given mocks into its router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, webBaseURL, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Destination: "Florianópolis",
		StartsAt:    time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now().UTC(),
	}
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	return decode[api.ErrorResponse](t, rec)
}
