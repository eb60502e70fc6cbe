package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/repo"
)

// WeatherReport is what a provider returns for a location.
type WeatherReport struct {
	Conditions string
	Forecast   string
}

// WeatherProvider fetches weather for a location from an external source.
type WeatherProvider interface {
	Fetch(ctx context.Context, loc domain.Location) (WeatherReport, error)
}

// WeatherService keeps each trip's cached weather snapshot fresh. It only
// writes the denormalized snapshot back onto the trip; the relational core
// never depends on it.
type WeatherService struct {
	trips    repo.TripRepo
	provider WeatherProvider
	ttl      time.Duration

	now func() time.Time
}

// NewWeatherService constructs a WeatherService. ttl is how long a snapshot
// stays fresh before Refresh fetches again.
func NewWeatherService(trips repo.TripRepo, provider WeatherProvider, ttl time.Duration) *WeatherService {
	return &WeatherService{trips: trips, provider: provider, ttl: ttl, now: time.Now}
}

// Refresh fetches weather for the trip's destination and stores the snapshot,
// unless the cached one is still within its TTL. Returns the trip with the
// snapshot it ended up with.
// Returns domain.ErrValidation when the trip has no destination to look up.
func (s *WeatherService) Refresh(ctx context.Context, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.WeatherService.Refresh: %w", err)
	}
	if !trip.Weather.Stale(s.now(), s.ttl) {
		return trip, nil
	}
	if trip.Destination == nil {
		return domain.Trip{}, fmt.Errorf("%w: trip has no destination", domain.ErrValidation)
	}

	report, err := s.provider.Fetch(ctx, *trip.Destination)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.WeatherService.Refresh: %w", err)
	}
	snapshot := domain.WeatherSnapshot{
		Conditions: report.Conditions,
		Forecast:   report.Forecast,
		FetchedAt:  s.now(),
	}
	if err := s.trips.UpdateWeather(ctx, tripID, snapshot); err != nil {
		return domain.Trip{}, fmt.Errorf("service.WeatherService.Refresh: %w", err)
	}
	trip.Weather = snapshot
	return trip, nil
}
