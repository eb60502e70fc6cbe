// Package duplicate clones packing lists and their items, either as a fresh
// per-trip copy or as a reusable template. Clones get fresh identity and no
// owning trip; attaching the copy to a trip (and picking its sort order among
// the new siblings) is the caller's job. Sources are never mutated.
package duplicate

import (
	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
)

// Copy is a cloned list together with its cloned items, ready to persist.
type Copy struct {
	List  domain.PackingList
	Items []domain.Item
}

// ForTrip clones list and items into an instance intended for a trip of
// tripDurationDays days. Every copied item starts unpacked. When the source
// has CountAsDays set, each copy's count is replaced with the trip duration
// (floored at 1 so the count invariant holds for zero-length trips);
// otherwise the original counts are preserved.
func ForTrip(list domain.PackingList, items []domain.Item, tripDurationDays int) Copy {
	c := clone(list, items)
	c.List.IsTemplate = false
	if list.CountAsDays {
		count := tripDurationDays
		if count < 1 {
			count = 1
		}
		for i := range c.Items {
			c.Items[i].Count = count
		}
	}
	return c
}

// AsTemplate clones list and items into a reusable template. Templates are
// never attached to a trip and ignore any trip-duration substitution.
func AsTemplate(list domain.PackingList, items []domain.Item) Copy {
	c := clone(list, items)
	c.List.IsTemplate = true
	return c
}

// clone copies the list shell and its items with fresh IDs, detached from any
// trip, all items unpacked, and both ordering domains renumbered densely in
// the source's item order.
func clone(list domain.PackingList, items []domain.Item) Copy {
	out := Copy{
		List: domain.PackingList{
			ID:          uuid.New(),
			Name:        list.Name,
			ListType:    list.ListType,
			CountAsDays: list.CountAsDays,
			UserID:      list.UserID,
		},
		Items: make([]domain.Item, 0, len(items)),
	}
	for i, src := range items {
		out.Items = append(out.Items, domain.Item{
			ID:               uuid.New(),
			ListID:           out.List.ID,
			Name:             src.Name,
			Category:         src.Category,
			Count:            src.Count,
			SortOrder:        i,
			UnifiedSortOrder: i,
		})
	}
	return out
}
