package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/repo"
)

// TripService implements business logic for Trip operations, including the
// explicit cascade over the trip's packing lists and the display-only section
// collapse state.
type TripService struct {
	trips    repo.TripRepo
	lists    repo.ListRepo
	items    repo.ItemRepo
	collapse repo.CollapseRepo
	ent      Entitlements
	maxFree  int64
}

// NewTripService constructs a TripService backed by the provided repos.
// maxFree is the number of trips the free tier allows; zero or negative
// disables the cap.
func NewTripService(trips repo.TripRepo, lists repo.ListRepo, items repo.ItemRepo, collapse repo.CollapseRepo, ent Entitlements, maxFree int64) *TripService {
	return &TripService{trips: trips, lists: lists, items: items, collapse: collapse, ent: ent, maxFree: maxFree}
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if err := s.checkCap(ctx); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips plus the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and everything it owns, walking each packing list's
// items explicitly before the trip row goes away.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	owned, err := s.lists.List(ctx, repo.ListFilter{TripID: &id})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	for _, l := range owned {
		if err := cascadeDeleteList(ctx, s.lists, s.items, l.ID); err != nil {
			return fmt.Errorf("service.TripService.Delete: %w", err)
		}
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// CollapsedSections returns the collapsed section keys for a trip.
// Always returns a non-nil slice.
func (s *TripService) CollapsedSections(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.CollapsedSections: %w", err)
	}
	keys, err := s.collapse.ListKeys(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.CollapsedSections: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// CollapseSection marks a section collapsed in the trip's sectioned view.
func (s *TripService) CollapseSection(ctx context.Context, tripID uuid.UUID, sectionKey string) error {
	if strings.TrimSpace(sectionKey) == "" {
		return fmt.Errorf("%w: section key is required", domain.ErrValidation)
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.CollapseSection: %w", err)
	}
	if err := s.collapse.Add(ctx, tripID, sectionKey); err != nil {
		return fmt.Errorf("service.TripService.CollapseSection: %w", err)
	}
	return nil
}

// ExpandSection marks a section expanded. Expanding a section that was never
// collapsed is fine — expanded is the default state.
func (s *TripService) ExpandSection(ctx context.Context, tripID uuid.UUID, sectionKey string) error {
	if err := s.collapse.Remove(ctx, tripID, sectionKey); err != nil {
		return fmt.Errorf("service.TripService.ExpandSection: %w", err)
	}
	return nil
}

// checkCap enforces the free-tier trip cap.
func (s *TripService) checkCap(ctx context.Context) error {
	if s.maxFree <= 0 || s.ent == nil || s.ent.Unlocked(ctx) {
		return nil
	}
	n, err := s.trips.Count(ctx)
	if err != nil {
		return fmt.Errorf("service.TripService.checkCap: %w", err)
	}
	if n >= s.maxFree {
		return fmt.Errorf("%w: free tier allows %d trips", domain.ErrLimitReached, s.maxFree)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate must not be before StartDate.
//   - Transportation and accommodation must be known values.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if !trip.Transportation.Valid() {
		return fmt.Errorf("%w: unknown transportation %q", domain.ErrValidation, trip.Transportation)
	}
	if !trip.Accommodation.Valid() {
		return fmt.Errorf("%w: unknown accommodation %q", domain.ErrValidation, trip.Accommodation)
	}
	return nil
}
