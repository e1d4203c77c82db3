package handler

import (
	"net/http"
	"strings"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

const msgActivityNotFound = "Activity not found"

// CreateActivity handles POST /trips/{tripId}/activity.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	var body api.CreateActivityRequest
	if err := decodeBody(r, &body, func(b *api.CreateActivityRequest) {
		b.Title = strings.TrimSpace(b.Title)
	}); err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}

	activity, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    body.Title,
		OccursAt: body.OccursAt.Time,
	})
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.ActivityIDResponse{ActivityID: activity.ID})
}

// ListActivities handles GET /trips/{tripId}/activity.
// The response has one entry per day of the trip, including empty days.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	days, err := s.activities.ListByDay(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ActivitiesResponse{Activities: api.FromActivityDays(days)})
}

// DeleteActivity handles DELETE /activities/{activityId}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "activityId")
	if err != nil {
		s.fail(w, r, err, msgActivityNotFound)
		return
	}
	if err := s.activities.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, msgActivityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ActivityIDResponse{ActivityID: id})
}
