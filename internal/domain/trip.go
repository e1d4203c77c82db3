// Package domain contains the core data types for the plann.er API.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (repo, service, handler, client).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a destination and a date range.
// Participants, activities and links all belong to exactly one trip.
type Trip struct {
	ID          uuid.UUID
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	IsConfirmed bool
	CreatedAt   time.Time
}

// NewTrip carries everything needed to create a trip in one request:
// the trip itself, its owner, and the initial guest list.
type NewTrip struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}

// MaxTripDays is the longest trip accepted, in calendar days.
const MaxTripDays = 365

// Covers reports whether t falls on a calendar day inside the trip's range,
// both ends inclusive.
func (tr Trip) Covers(t time.Time) bool {
	day := Day(t)
	return !day.Before(Day(tr.StartsAt)) && !day.After(Day(tr.EndsAt))
}

// TooLong reports whether the trip spans more than MaxTripDays calendar days.
func (tr Trip) TooLong() bool {
	return Day(tr.EndsAt).After(Day(tr.StartsAt).AddDate(0, 0, MaxTripDays-1))
}

// Days returns every calendar day of the trip from StartsAt to EndsAt inclusive.
func (tr Trip) Days() []time.Time {
	start, end := Day(tr.StartsAt), Day(tr.EndsAt)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
