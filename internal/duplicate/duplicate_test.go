package duplicate_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/duplicate"
)

func sourceList(countAsDays bool) (domain.PackingList, []domain.Item) {
	tripID := uuid.New()
	list := domain.PackingList{
		ID:          uuid.New(),
		Name:        "Clothes",
		ListType:    domain.ListTypePacking,
		CountAsDays: countAsDays,
		TripID:      &tripID,
	}
	userID := uuid.New()
	list.UserID = &userID

	items := []domain.Item{
		{ID: uuid.New(), ListID: list.ID, Name: "Shirt", Count: 1, IsPacked: true, SortOrder: 0, UnifiedSortOrder: 0},
		{ID: uuid.New(), ListID: list.ID, Name: "Pants", Count: 2, SortOrder: 1, UnifiedSortOrder: 1},
	}
	return list, items
}

func TestForTrip_CountAsDaysSubstitutesDuration(t *testing.T) {
	list, items := sourceList(true)

	got := duplicate.ForTrip(list, items, 5)

	require.Len(t, got.Items, 2)
	for _, it := range got.Items {
		assert.Equal(t, 5, it.Count)
	}
}

func TestForTrip_ZeroDurationClampsToOne(t *testing.T) {
	list, items := sourceList(true)

	got := duplicate.ForTrip(list, items, 0)

	for _, it := range got.Items {
		assert.Equal(t, 1, it.Count)
	}
}

func TestForTrip_WithoutCountAsDaysPreservesCounts(t *testing.T) {
	list, items := sourceList(false)

	got := duplicate.ForTrip(list, items, 9)

	assert.Equal(t, 1, got.Items[0].Count)
	assert.Equal(t, 2, got.Items[1].Count)
}

func TestForTrip_CopiesStartUnpackedAndDetached(t *testing.T) {
	list, items := sourceList(false)

	got := duplicate.ForTrip(list, items, 3)

	assert.False(t, got.List.IsTemplate)
	assert.Nil(t, got.List.TripID, "the caller attaches the copy to a trip explicitly")
	assert.Equal(t, list.UserID, got.List.UserID)
	for i, it := range got.Items {
		assert.False(t, it.IsPacked, "copies always start unpacked")
		assert.Equal(t, got.List.ID, it.ListID)
		assert.Equal(t, i, it.SortOrder)
		assert.Equal(t, i, it.UnifiedSortOrder)
	}
}

func TestForTrip_FreshIdentity(t *testing.T) {
	list, items := sourceList(false)

	got := duplicate.ForTrip(list, items, 3)

	assert.NotEqual(t, list.ID, got.List.ID)
	for i := range items {
		assert.NotEqual(t, items[i].ID, got.Items[i].ID)
	}
}

func TestForTrip_SourceNeverMutated(t *testing.T) {
	list, items := sourceList(true)
	origList := list
	origItems := append([]domain.Item(nil), items...)

	got := duplicate.ForTrip(list, items, 7)
	got.List.Name = "renamed copy"
	for i := range got.Items {
		got.Items[i].Count = 99
	}

	assert.Equal(t, origList, list)
	assert.Equal(t, origItems, items)
}

func TestAsTemplate(t *testing.T) {
	list, items := sourceList(true)

	got := duplicate.AsTemplate(list, items)

	assert.True(t, got.List.IsTemplate)
	assert.Nil(t, got.List.TripID, "templates are never attached to a trip")
	assert.True(t, got.List.CountAsDays, "template option survives the copy")
	// No duration substitution for templates.
	assert.Equal(t, 1, got.Items[0].Count)
	assert.Equal(t, 2, got.Items[1].Count)
}
