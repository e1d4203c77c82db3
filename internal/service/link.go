package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
	"github.com/gustavopolonio/nlw-journey/internal/validation"
)

// LinkService implements business logic for Link operations.
type LinkService struct {
	trips repo.TripRepo
	links repo.LinkRepo
}

// NewLinkService constructs a LinkService backed by the provided repos.
func NewLinkService(trips repo.TripRepo, links repo.LinkRepo) *LinkService {
	return &LinkService{trips: trips, links: links}
}

// Create attaches a link to an existing trip.
func (s *LinkService) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, link.TripID); err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}

	link.Title = strings.TrimSpace(link.Title)
	link.URL = strings.TrimSpace(link.URL)
	if len([]rune(link.Title)) < 3 {
		return domain.Link{}, domain.NewValidationError("title", "Title must have at least 3 characters.")
	}
	if !validation.URL(link.URL) {
		return domain.Link{}, domain.NewValidationError("url", "Invalid URL.")
	}

	created, err := s.links.Create(ctx, link)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}
	return created, nil
}

// ListByTripID returns the trip's links in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LinkService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}

// Delete removes a link by ID.
func (s *LinkService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.links.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LinkService.Delete: %w", err)
	}
	return nil
}
