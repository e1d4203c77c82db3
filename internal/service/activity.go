package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
)

const msgInvalidActivityDate = "Invalid activity date."

// ActivityService implements business logic for Activity operations.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create verifies the parent trip exists and that the activity falls on one of
// its days, then persists it.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrValidation if the title or date is invalid.
func (s *ActivityService) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	activity.Title = strings.TrimSpace(activity.Title)
	if len([]rune(activity.Title)) < 3 {
		return domain.Activity{}, domain.NewValidationError("title", "Title must have at least 3 characters.")
	}
	if !trip.Covers(activity.OccursAt) {
		return domain.Activity{}, domain.NewValidationError("occurs_at", msgInvalidActivityDate)
	}

	created, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// ListByDay returns one entry per day of the trip, each with that day's
// activities in chronological order.
func (s *ActivityService) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	return domain.GroupActivitiesByDay(trip, activities), nil
}

// Delete removes an activity by ID.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}
