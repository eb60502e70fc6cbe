// Package order maintains the two ordering domains of the packing model:
// the per-list sort order and the cross-list unified sort order.
//
// All functions here are pure with respect to their inputs — they work on
// copies and return the renumbered sequence for the caller to persist.
// A reorder whose moving entity is absent returns nil, which callers treat
// as a silent no-op: the entity was deleted by a racing operation and the
// intended effect is moot.
package order

import (
	"sort"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
)

// NextSortOrder returns the sort order for an item appended to items:
// one past the current maximum, or 0 for an empty list. Indices of deleted
// items are never reused — sequences grow monotonically and are compacted
// by the next reorder.
func NextSortOrder(items []domain.Item) int {
	next := 0
	for _, it := range items {
		if it.SortOrder >= next {
			next = it.SortOrder + 1
		}
	}
	return next
}

// NextUnifiedSortOrder is NextSortOrder over the unified ordering domain.
// items should be the union of items across all lists in one scope.
func NextUnifiedSortOrder(items []domain.Item) int {
	next := 0
	for _, it := range items {
		if it.UnifiedSortOrder >= next {
			next = it.UnifiedSortOrder + 1
		}
	}
	return next
}

// NextListSortOrder returns the sort order for a list appended to lists.
func NextListSortOrder(lists []domain.PackingList) int {
	next := 0
	for _, l := range lists {
		if l.SortOrder >= next {
			next = l.SortOrder + 1
		}
	}
	return next
}

// ReorderItems moves the item with movingID to toIndex within the unpacked
// subset of items and renumbers that subset densely from 0.
//
// toIndex is interpreted against the sequence as the caller saw it, before
// the moving item is lifted out; the index is adjusted for the removal shift
// and clamped into range. Returns the renumbered unpacked items, or nil if
// movingID is not among them.
func ReorderItems(items []domain.Item, movingID uuid.UUID, toIndex int) []domain.Item {
	seq := unpacked(items)
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].SortOrder < seq[j].SortOrder })

	seq = moveWithin(seq, movingID, toIndex, func(it domain.Item) uuid.UUID { return it.ID })
	if seq == nil {
		return nil
	}
	for i := range seq {
		seq[i].SortOrder = i
	}
	return seq
}

// ReorderUnifiedItems is ReorderItems over the unified ordering domain.
// items is the union of items from every list in the scope. With includeAll
// false only unpacked items participate (day-to-day packing views); with
// includeAll true the whole union does (template editing, where packed has
// no meaning). Per-list sort orders are left untouched.
func ReorderUnifiedItems(items []domain.Item, movingID uuid.UUID, toIndex int, includeAll bool) []domain.Item {
	var seq []domain.Item
	if includeAll {
		seq = append(seq, items...)
	} else {
		seq = unpacked(items)
	}
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].UnifiedSortOrder < seq[j].UnifiedSortOrder })

	seq = moveWithin(seq, movingID, toIndex, func(it domain.Item) uuid.UUID { return it.ID })
	if seq == nil {
		return nil
	}
	for i := range seq {
		seq[i].UnifiedSortOrder = i
	}
	return seq
}

// ReorderLists moves the list with movingID to toIndex among its siblings
// and renumbers all of them densely from 0. Used for manual section
// reordering in sectioned views. Returns nil if movingID is absent.
func ReorderLists(lists []domain.PackingList, movingID uuid.UUID, toIndex int) []domain.PackingList {
	seq := append([]domain.PackingList(nil), lists...)
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].SortOrder < seq[j].SortOrder })

	seq = moveWithin(seq, movingID, toIndex, func(l domain.PackingList) uuid.UUID { return l.ID })
	if seq == nil {
		return nil
	}
	for i := range seq {
		seq[i].SortOrder = i
	}
	return seq
}

// CompactItems renumbers the unpacked subset of items densely from 0,
// preserving the current relative order. Used after an item leaves a list
// so the source sequence does not keep a gap.
func CompactItems(items []domain.Item) []domain.Item {
	seq := unpacked(items)
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].SortOrder < seq[j].SortOrder })
	for i := range seq {
		seq[i].SortOrder = i
	}
	return seq
}

// unpacked copies the unpacked items out of items.
func unpacked(items []domain.Item) []domain.Item {
	seq := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if !it.IsPacked {
			seq = append(seq, it)
		}
	}
	return seq
}

// moveWithin lifts the element with movingID out of seq and reinserts it at
// toIndex. The drop index was computed by the caller against the pre-removal
// sequence, so when the element currently sits before the target the index
// shifts down by one on removal; without that adjustment every downward move
// lands one slot too far. Returns nil when movingID is not in seq.
func moveWithin[T any](seq []T, movingID uuid.UUID, toIndex int, id func(T) uuid.UUID) []T {
	cur := -1
	for i := range seq {
		if id(seq[i]) == movingID {
			cur = i
			break
		}
	}
	if cur < 0 {
		return nil
	}
	moving := seq[cur]

	if cur < toIndex {
		toIndex--
	}
	seq = append(seq[:cur], seq[cur+1:]...)
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(seq) {
		toIndex = len(seq)
	}
	seq = append(seq[:toIndex], append([]T{moving}, seq[toIndex:]...)...)
	return seq
}
