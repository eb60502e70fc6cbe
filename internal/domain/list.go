package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListType distinguishes what a packing list holds.
type ListType string

// List types accepted by the API.
const (
	ListTypePacking ListType = "packing" // things to pack
	ListTypeTask    ListType = "task"    // things to do before leaving
	ListTypeDayOf   ListType = "dayof"   // things to do the day of departure
)

// Valid reports whether lt is one of the accepted list types.
func (lt ListType) Valid() bool {
	switch lt {
	case ListTypePacking, ListTypeTask, ListTypeDayOf:
		return true
	}
	return false
}

// PackingList is an ordered collection of items, optionally owned by a user
// and attached to a trip. A template list is never attached to a trip; it is
// a reusable pattern copied onto trips.
type PackingList struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ListType   ListType  `json:"list_type"`
	IsTemplate bool      `json:"is_template"`
	// CountAsDays makes copies of this template inherit the destination
	// trip's duration as each item's count.
	CountAsDays bool `json:"count_as_days"`
	// SortOrder is the list's position among its sibling lists.
	SortOrder int        `json:"sort_order"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	TripID    *uuid.UUID `json:"trip_id,omitempty"` // nil for templates
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Item is a single packable thing (or task) belonging to exactly one list.
type Item struct {
	ID       uuid.UUID `json:"id"`
	ListID   uuid.UUID `json:"list_id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Count    int       `json:"count"` // always >= 1
	IsPacked bool      `json:"is_packed"`
	// SortOrder is the item's position within its owning list. Dense 0..n-1
	// across the list's unpacked items after every reorder; appends are
	// monotonic and compacted on the next reorder.
	SortOrder int `json:"sort_order"`
	// UnifiedSortOrder is the item's position in the cross-list unpacked view
	// spanning all lists in the same trip/user/type scope.
	UnifiedSortOrder int       `json:"unified_sort_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
