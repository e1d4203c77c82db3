package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link is an arbitrary reference URL attached to a trip (bookings, maps, docs).
type Link struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	URL       string
	CreatedAt time.Time
}
