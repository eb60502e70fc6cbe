// Package query provides pure, non-mutating derived views over entity
// collections: typed filters, stable sorts, and the partitions and counts
// the progress displays are built from. Nothing here touches storage.
package query

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
)

// ListOrder selects how SortLists arranges its result.
type ListOrder string

// List sort orders accepted by the API's ?sort= parameter.
const (
	ListsByDate        ListOrder = "date"      // creation timestamp ascending
	ListsByNameAsc     ListOrder = "name_asc"  // case-insensitive name ascending
	ListsByNameDesc    ListOrder = "name_desc" // case-insensitive name descending
	ListsByUser        ListOrder = "user"      // owner name ascending, ownerless last
	ListsByCustomOrder ListOrder = "custom"    // manual sort order ascending
)

// Valid reports whether o names a known list sort order.
func (o ListOrder) Valid() bool {
	switch o {
	case ListsByDate, ListsByNameAsc, ListsByNameDesc, ListsByUser, ListsByCustomOrder:
		return true
	}
	return false
}

// ItemOrder selects how SortItems arranges its result.
type ItemOrder string

// Item sort orders accepted by the API's ?sort= parameter.
const (
	ItemsByDate         ItemOrder = "date"    // creation timestamp ascending
	ItemsByCustomOrder  ItemOrder = "custom"  // per-list sort order ascending
	ItemsByUnifiedOrder ItemOrder = "unified" // cross-list unified order ascending
)

// Valid reports whether o names a known item sort order.
func (o ItemOrder) Valid() bool {
	switch o {
	case ItemsByDate, ItemsByCustomOrder, ItemsByUnifiedOrder:
		return true
	}
	return false
}

// FilterByUser returns the lists owned by userID. A nil userID matches
// every list.
func FilterByUser(lists []domain.PackingList, userID *uuid.UUID) []domain.PackingList {
	if userID == nil {
		return lists
	}
	out := make([]domain.PackingList, 0, len(lists))
	for _, l := range lists {
		if l.UserID != nil && *l.UserID == *userID {
			out = append(out, l)
		}
	}
	return out
}

// FilterByType returns the lists of the given type.
func FilterByType(lists []domain.PackingList, lt domain.ListType) []domain.PackingList {
	out := make([]domain.PackingList, 0, len(lists))
	for _, l := range lists {
		if l.ListType == lt {
			out = append(out, l)
		}
	}
	return out
}

// FilterByTemplate returns the lists whose template flag equals template.
func FilterByTemplate(lists []domain.PackingList, template bool) []domain.PackingList {
	out := make([]domain.PackingList, 0, len(lists))
	for _, l := range lists {
		if l.IsTemplate == template {
			out = append(out, l)
		}
	}
	return out
}

// SortLists returns a sorted copy of lists. Sorting is stable for ties.
// userName resolves an owner ID to a display name for ListsByUser; lists
// without an owner sort last under that order. A nil userName treats every
// owner name as empty.
func SortLists(lists []domain.PackingList, o ListOrder, userName func(uuid.UUID) string) []domain.PackingList {
	out := append([]domain.PackingList(nil), lists...)
	name := func(l domain.PackingList) string {
		if l.UserID == nil || userName == nil {
			return ""
		}
		return userName(*l.UserID)
	}
	switch o {
	case ListsByNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case ListsByNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	case ListsByUser:
		sort.SliceStable(out, func(i, j int) bool {
			li, lj := out[i], out[j]
			if (li.UserID == nil) != (lj.UserID == nil) {
				return lj.UserID == nil // ownerless lists sort last
			}
			return name(li) < name(lj)
		})
	case ListsByCustomOrder:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	default: // ListsByDate
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}

// SortItems returns a sorted copy of items. Sorting is stable for ties.
func SortItems(items []domain.Item, o ItemOrder) []domain.Item {
	out := append([]domain.Item(nil), items...)
	switch o {
	case ItemsByCustomOrder:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	case ItemsByUnifiedOrder:
		sort.SliceStable(out, func(i, j int) bool { return out[i].UnifiedSortOrder < out[j].UnifiedSortOrder })
	default: // ItemsByDate
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}

// IncompleteItems returns the items not yet packed.
func IncompleteItems(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if !it.IsPacked {
			out = append(out, it)
		}
	}
	return out
}

// CompleteItems returns the items already packed.
func CompleteItems(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.IsPacked {
			out = append(out, it)
		}
	}
	return out
}

// Progress returns the packed and total counts for a set of items.
func Progress(items []domain.Item) (packed, total int) {
	for _, it := range items {
		if it.IsPacked {
			packed++
		}
	}
	return packed, len(items)
}
