// Package domain contains the core data types for the packing-list planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, order, query).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a packer — a person whose packing lists are tracked.
// A user owns zero or more packing lists; deleting a user deletes them.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ColorTag  string    `json:"color_tag,omitempty"` // hex color used to badge the user's lists
	// ProfileImage holds the raw image bytes, nil when the user has no picture.
	ProfileImage []byte `json:"-"`
	// DefaultLocation is the user's home location, used as the default trip
	// origin. Nil when never set.
	DefaultLocation *Location `json:"default_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Location is a named geographic point. It is stored inline on the entity
// that references it, never as a table of its own.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
