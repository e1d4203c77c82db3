// Package api holds the JSON wire types of the plann.er HTTP API. The server
// decodes requests into them and the Go client encodes them, so both sides
// share one set of field names and validation tags.
package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

// ---- requests --------------------------------------------------------------

type CreateTripRequest struct {
	Destination    string     `json:"destination" validate:"required,min=3"`
	StartsAt       *Timestamp `json:"starts_at" validate:"required"`
	EndsAt         *Timestamp `json:"ends_at" validate:"required"`
	OwnerName      string     `json:"owner_name" validate:"required"`
	OwnerEmail     string     `json:"owner_email" validate:"required,email"`
	EmailsToInvite []string   `json:"emails_to_invite" validate:"dive,email"`
}

type UpdateTripRequest struct {
	Destination string     `json:"destination" validate:"required,min=3"`
	StartsAt    *Timestamp `json:"starts_at" validate:"required"`
	EndsAt      *Timestamp `json:"ends_at" validate:"required"`
}

type InviteRequest struct {
	EmailsToInvite []string `json:"emails_to_invite" validate:"dive,email"`
}

type CreateActivityRequest struct {
	Title    string     `json:"title" validate:"required,min=3"`
	OccursAt *Timestamp `json:"occurs_at" validate:"required"`
}

type CreateLinkRequest struct {
	Title string `json:"title" validate:"required,min=3"`
	URL   string `json:"url" validate:"required,url"`
}

// ---- resources -------------------------------------------------------------

type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
}

type Participant struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	Email       string    `json:"email"`
	IsOwner     bool      `json:"is_owner"`
	IsConfirmed bool      `json:"is_confirmed"`
}

type Activity struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

type ActivityDay struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

type Link struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
}

// ItineraryRow is the JSON form of an export row.
type ItineraryRow struct {
	TripID          string     `json:"trip_id"`
	Destination     string     `json:"destination"`
	TripStartsAt    string     `json:"trip_starts_at"`
	TripEndsAt      string     `json:"trip_ends_at"`
	TripIsConfirmed bool       `json:"trip_is_confirmed"`
	ActivityID      string     `json:"activity_id"`
	ActivityTitle   string     `json:"activity_title"`
	OccursAt        *time.Time `json:"occurs_at"`
}

// ---- response envelopes ----------------------------------------------------

type TripIDResponse struct {
	TripID uuid.UUID `json:"tripId"`
}

type TripResponse struct {
	Trip Trip `json:"trip"`
}

type ParticipantIDsResponse struct {
	ParticipantsID []uuid.UUID `json:"participantsId"`
}

type ParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

type ParticipantIDResponse struct {
	ParticipantID uuid.UUID `json:"participantId"`
}

type ActivityIDResponse struct {
	ActivityID uuid.UUID `json:"activityId"`
}

type ActivitiesResponse struct {
	Activities []ActivityDay `json:"activities"`
}

type LinkIDResponse struct {
	LinkID uuid.UUID `json:"linkId"`
}

type LinksResponse struct {
	Links []Link `json:"links"`
}

type ItineraryResponse struct {
	Rows []ItineraryRow `json:"rows"`
}

// ErrorResponse is the body of every non-2xx JSON response.
// Errors is only present for field-level validation failures.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ---- domain conversions ----------------------------------------------------

func FromTrip(t domain.Trip) Trip {
	return Trip{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt,
		EndsAt:      t.EndsAt,
		IsConfirmed: t.IsConfirmed,
	}
}

func FromParticipant(p domain.Participant) Participant {
	return Participant{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		IsOwner:     p.IsOwner,
		IsConfirmed: p.IsConfirmed,
	}
}

func FromParticipants(ps []domain.Participant) []Participant {
	out := make([]Participant, len(ps))
	for i, p := range ps {
		out[i] = FromParticipant(p)
	}
	return out
}

func FromActivityDays(days []domain.ActivityDay) []ActivityDay {
	out := make([]ActivityDay, len(days))
	for i, d := range days {
		acts := make([]Activity, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = Activity{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt}
		}
		out[i] = ActivityDay{Date: d.Date, Activities: acts}
	}
	return out
}

func FromLinks(ls []domain.Link) []Link {
	out := make([]Link, len(ls))
	for i, l := range ls {
		out[i] = Link{ID: l.ID, Title: l.Title, URL: l.URL}
	}
	return out
}

func FromItinerary(rows []domain.ItineraryRow) []ItineraryRow {
	out := make([]ItineraryRow, len(rows))
	for i, r := range rows {
		out[i] = ItineraryRow(r)
	}
	return out
}
