package domain

import "time"

// ItineraryRow is a single row of a trip export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated on every row. A trip with no activities yields one row whose
// activity fields are zero.
type ItineraryRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID          string
	Destination     string
	TripStartsAt    string // "2006-01-02"
	TripEndsAt      string // "2006-01-02"
	TripIsConfirmed bool

	// Activity fields, zero values when the trip has no activities.
	ActivityID    string
	ActivityTitle string
	OccursAt      *time.Time
}
