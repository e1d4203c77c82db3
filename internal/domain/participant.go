package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Participant is a person attached to a trip, either its single owner or an
// invited guest. Name is only known for the owner; guests are identified by email.
type Participant struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        *string
	Email       string
	IsOwner     bool
	IsConfirmed bool
	CreatedAt   time.Time
}

// InvitedWithTrip reports whether p was stored together with trip, as the
// owner or an initial guest. Both rows share the transaction's timestamp, so
// anyone invited later has a strictly greater CreatedAt.
func (p Participant) InvitedWithTrip(trip Trip) bool {
	return !p.CreatedAt.After(trip.CreatedAt)
}

// NormalizeEmail trims and lower-cases an address so that stored emails and
// invite lists compare equal regardless of how they were typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UniqueEmails normalizes emails and drops duplicates and every address in
// exclude, preserving first-seen order.
func UniqueEmails(emails []string, exclude ...string) []string {
	seen := make(map[string]struct{}, len(emails)+len(exclude))
	for _, e := range exclude {
		seen[NormalizeEmail(e)] = struct{}{}
	}
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		n := NormalizeEmail(e)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
