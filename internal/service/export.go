package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
)

// ExportService assembles a flat itinerary of a trip and its activities.
type ExportService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, activities repo.ActivityRepo) *ExportService {
	return &ExportService{trips: trips, activities: activities}
}

// Export returns the trip and one ItineraryRow per activity in chronological
// order. A trip with no activities contributes one row with empty activity fields.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ItineraryRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	base := domain.ItineraryRow{
		TripID:          trip.ID.String(),
		Destination:     trip.Destination,
		TripStartsAt:    trip.StartsAt.UTC().Format("2006-01-02"),
		TripEndsAt:      trip.EndsAt.UTC().Format("2006-01-02"),
		TripIsConfirmed: trip.IsConfirmed,
	}
	if len(activities) == 0 {
		return trip, []domain.ItineraryRow{base}, nil
	}

	rows := make([]domain.ItineraryRow, 0, len(activities))
	for _, a := range activities {
		row := base
		row.ActivityID = a.ID.String()
		row.ActivityTitle = a.Title
		occurs := a.OccursAt
		row.OccursAt = &occurs
		rows = append(rows, row)
	}
	return trip, rows, nil
}
