// Package handler implements the HTTP handlers for the plann.er API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// ParticipantServicer defines the participant operations.
type ParticipantServicer interface {
	Invite(ctx context.Context, tripID uuid.UUID, emails []string) ([]domain.Participant, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityServicer defines the activity operations.
type ActivityServicer interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LinkServicer defines the link operations.
type LinkServicer interface {
	Create(ctx context.Context, link domain.Link) (domain.Link, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExportServicer defines the itinerary export operation.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ItineraryRow, error)
}

// Services bundles the dependencies of Server. Nil fields are allowed in
// tests that only exercise a subset of the routes.
type Services struct {
	Trips        TripServicer
	Participants ParticipantServicer
	Activities   ActivityServicer
	Links        LinkServicer
	Export       ExportServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	activities   ActivityServicer
	links        LinkServicer
	export       ExportServicer

	// webBaseURL is where confirmation links redirect the browser.
	webBaseURL string
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, webBaseURL string, log *slog.Logger) *Server {
	return &Server{
		trips:        svc.Trips,
		participants: svc.Participants,
		activities:   svc.Activities,
		links:        svc.Links,
		export:       svc.Export,
		webBaseURL:   strings.TrimRight(webBaseURL, "/"),
		log:          log,
	}
}

// Routes returns a router serving every API endpoint.
// Cross-cutting middleware (request id, logging, CORS) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/trips", s.CreateTrip)
	r.Get("/trips/{tripId}", s.GetTrip)
	r.Put("/trips/{tripId}", s.UpdateTrip)
	r.Get("/trips/{tripId}/confirm", s.ConfirmTrip)
	r.Post("/trips/{tripId}/invite", s.InviteParticipants)
	r.Get("/trips/{tripId}/participants", s.ListParticipants)
	r.Post("/trips/{tripId}/activity", s.CreateActivity)
	r.Get("/trips/{tripId}/activity", s.ListActivities)
	r.Post("/trips/{tripId}/link", s.CreateLink)
	r.Get("/trips/{tripId}/link", s.ListLinks)
	r.Get("/trips/{tripId}/export", s.GetExport)

	r.Get("/participants/{participantId}", s.GetParticipant)
	r.Get("/participants/{participantId}/confirm", s.ConfirmParticipant)
	r.Delete("/participants/{participantId}", s.DeleteParticipant)

	r.Delete("/activities/{activityId}", s.DeleteActivity)
	r.Delete("/links/{linkId}", s.DeleteLink)

	return r
}
