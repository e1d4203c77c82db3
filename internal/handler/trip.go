package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

const msgTripNotFound = "Trip not found"

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body api.CreateTripRequest
	if err := decodeBody(r, &body, func(b *api.CreateTripRequest) {
		b.Destination = strings.TrimSpace(b.Destination)
		b.OwnerName = strings.TrimSpace(b.OwnerName)
		b.OwnerEmail = strings.TrimSpace(b.OwnerEmail)
		for i, e := range b.EmailsToInvite {
			b.EmailsToInvite[i] = strings.TrimSpace(e)
		}
	}); err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}

	trip, err := s.trips.Create(r.Context(), domain.NewTrip{
		Destination:    body.Destination,
		StartsAt:       body.StartsAt.Time,
		EndsAt:         body.EndsAt.Time,
		OwnerName:      body.OwnerName,
		OwnerEmail:     body.OwnerEmail,
		EmailsToInvite: body.EmailsToInvite,
	})
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.TripIDResponse{TripID: trip.ID})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.TripResponse{Trip: api.FromTrip(trip)})
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	var body api.UpdateTripRequest
	if err := decodeBody(r, &body, func(b *api.UpdateTripRequest) {
		b.Destination = strings.TrimSpace(b.Destination)
	}); err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}

	trip, err := s.trips.Update(r.Context(), domain.Trip{
		ID:          id,
		Destination: body.Destination,
		StartsAt:    body.StartsAt.Time,
		EndsAt:      body.EndsAt.Time,
	})
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.TripIDResponse{TripID: trip.ID})
}

// ConfirmTrip handles GET /trips/{tripId}/confirm.
// It is opened from the owner's email, so success redirects to the web app.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	trip, err := s.trips.Confirm(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	http.Redirect(w, r, s.tripPage(trip.ID.String()), http.StatusFound)
}

func (s *Server) tripPage(tripID string) string {
	return fmt.Sprintf("%s/trips/%s", s.webBaseURL, tripID)
}
