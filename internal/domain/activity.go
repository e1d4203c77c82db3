package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a scheduled event inside a trip's date range.
type Activity struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	OccursAt  time.Time
	CreatedAt time.Time
}

// ActivityDay is one calendar day of a trip with the activities that occur on it,
// ordered by time. Days without activities carry an empty, non-nil slice.
type ActivityDay struct {
	Date       time.Time
	Activities []Activity
}

// GroupActivitiesByDay lays activities out over every day of trip.
// Activities must already be ordered by OccursAt; activities outside the
// trip's range are not returned.
func GroupActivitiesByDay(trip Trip, activities []Activity) []ActivityDay {
	days := trip.Days()
	out := make([]ActivityDay, len(days))
	index := make(map[time.Time]int, len(days))
	for i, d := range days {
		out[i] = ActivityDay{Date: d, Activities: []Activity{}}
		index[d] = i
	}
	for _, a := range activities {
		if i, ok := index[Day(a.OccursAt)]; ok {
			out[i].Activities = append(out[i].Activities, a)
		}
	}
	return out
}
