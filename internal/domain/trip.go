package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transportation is how the travellers get to the destination.
type Transportation string

// Transportation values accepted by the API.
const (
	TransportCar   Transportation = "car"
	TransportPlane Transportation = "plane"
	TransportTrain Transportation = "train"
	TransportBoat  Transportation = "boat"
	TransportOther Transportation = "other"
)

// Valid reports whether t is one of the accepted transportation values.
func (t Transportation) Valid() bool {
	switch t {
	case TransportCar, TransportPlane, TransportTrain, TransportBoat, TransportOther:
		return true
	}
	return false
}

// Accommodation is where the travellers stay at the destination.
type Accommodation string

// Accommodation values accepted by the API.
const (
	AccommodationHotel   Accommodation = "hotel"
	AccommodationCamping Accommodation = "camping"
	AccommodationRental  Accommodation = "rental"
	AccommodationFamily  Accommodation = "family"
	AccommodationOther   Accommodation = "other"
)

// Valid reports whether a is one of the accepted accommodation values.
func (a Accommodation) Valid() bool {
	switch a {
	case AccommodationHotel, AccommodationCamping, AccommodationRental, AccommodationFamily, AccommodationOther:
		return true
	}
	return false
}

// TripStatus is the phase of a trip relative to the current time.
// It is derived from the start/end dates and never stored.
type TripStatus string

// Trip phases, in chronological order.
const (
	StatusUpcoming  TripStatus = "upcoming"
	StatusDeparting TripStatus = "departing"
	StatusActive    TripStatus = "active"
	StatusReturning TripStatus = "returning"
	StatusComplete  TripStatus = "complete"
)

// Trip represents a planned journey with a start and end date.
// A trip is a top-level aggregate; packing lists attach to it and are
// deleted with it.
type Trip struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Transportation Transportation `json:"transportation"`
	Accommodation  Accommodation  `json:"accommodation"`
	Origin         *Location      `json:"origin,omitempty"`
	Destination    *Location      `json:"destination,omitempty"`
	// Weather is a denormalized snapshot written back by the weather
	// collaborator. The core only stores and time-checks it.
	Weather   WeatherSnapshot `json:"weather,omitzero"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DurationDays returns the trip length as a non-negative whole number of days.
func (t Trip) DurationDays() int {
	d := int(t.EndDate.Sub(t.StartDate).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// Status derives the trip phase from now.
// Departing covers the 24 hours before the start date, returning the final
// 24 hours before the end date.
func (t Trip) Status(now time.Time) TripStatus {
	switch {
	case now.After(t.EndDate):
		return StatusComplete
	case now.Before(t.StartDate.Add(-24 * time.Hour)):
		return StatusUpcoming
	case now.Before(t.StartDate):
		return StatusDeparting
	case !now.Before(t.EndDate.Add(-24 * time.Hour)):
		return StatusReturning
	default:
		return StatusActive
	}
}

// WeatherSnapshot is the cached result of a weather lookup for the trip's
// destination. A zero value means no lookup has completed yet.
type WeatherSnapshot struct {
	Conditions string    `json:"conditions,omitempty"`
	Forecast   string    `json:"forecast,omitempty"`
	FetchedAt  time.Time `json:"fetched_at,omitzero"`
}

// Stale reports whether the snapshot should be refreshed: either no fetch has
// ever completed, or the last one is older than ttl.
func (w WeatherSnapshot) Stale(now time.Time, ttl time.Duration) bool {
	return w.FetchedAt.IsZero() || now.Sub(w.FetchedAt) > ttl
}
