package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/query"
	"github.com/packup/packup/internal/repo"
	"github.com/packup/packup/internal/service"
)

func TestListService_Create_PlacedAfterSiblings(t *testing.T) {
	tripID := uuid.New()

	trips := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id}, nil
		},
	}
	lists := &mockListRepo{
		list: func(_ context.Context, f repo.ListFilter) ([]domain.PackingList, error) {
			return []domain.PackingList{{SortOrder: 0}, {SortOrder: 1}}, nil
		},
		create: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			return l, nil
		},
	}

	svc := service.NewListService(lists, nil, trips, nil)
	got, err := svc.Create(context.Background(), domain.PackingList{
		Name: "Clothes", ListType: domain.ListTypePacking, TripID: &tripID,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.SortOrder)
}

func TestListService_Create_DetachedSiblingsExcludeTripLists(t *testing.T) {
	ownerID := uuid.New()
	tripID := uuid.New()

	users := &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id}, nil
		},
	}
	attached := domain.PackingList{ID: uuid.New(), Name: "On trip", ListType: domain.ListTypePacking,
		UserID: &ownerID, TripID: &tripID, SortOrder: 5}
	detached := domain.PackingList{ID: uuid.New(), Name: "Loose", ListType: domain.ListTypePacking,
		UserID: &ownerID, SortOrder: 0}
	lists := &mockListRepo{
		list: func(_ context.Context, f repo.ListFilter) ([]domain.PackingList, error) {
			require.True(t, f.Detached, "detached siblings must not include trip lists")
			var out []domain.PackingList
			for _, l := range []domain.PackingList{attached, detached} {
				if l.TripID == nil {
					out = append(out, l)
				}
			}
			return out, nil
		},
		create: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			return l, nil
		},
	}

	svc := service.NewListService(lists, nil, nil, users)
	got, err := svc.Create(context.Background(), domain.PackingList{
		Name: "Another", ListType: domain.ListTypePacking, UserID: &ownerID,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, got.SortOrder, "placed after the detached sibling, not the trip one")
}

func TestListService_Update_Renames(t *testing.T) {
	ownerID := uuid.New()
	stored := domain.PackingList{ID: uuid.New(), Name: "Old", ListType: domain.ListTypePacking, UserID: &ownerID}

	lists := &mockListRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.PackingList, error) {
			return stored, nil
		},
		update: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			return l, nil
		},
	}

	changed := stored
	changed.Name = "New"
	svc := service.NewListService(lists, nil, nil, nil)
	got, err := svc.Update(context.Background(), changed)

	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestListService_Update_RejectsScopeChange(t *testing.T) {
	ownerID := uuid.New()
	tripID := uuid.New()
	stored := domain.PackingList{ID: uuid.New(), Name: "Clothes", ListType: domain.ListTypePacking,
		UserID: &ownerID, TripID: &tripID}

	lists := &mockListRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.PackingList, error) {
			return stored, nil
		},
		update: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			t.Fatal("a scope change must not reach the store")
			return domain.PackingList{}, nil
		},
	}
	svc := service.NewListService(lists, nil, nil, nil)

	otherTrip := uuid.New()
	reattached := stored
	reattached.TripID = &otherTrip
	_, err := svc.Update(context.Background(), reattached)
	assert.ErrorIs(t, err, domain.ErrValidation)

	disowned := stored
	disowned.UserID = nil
	_, err = svc.Update(context.Background(), disowned)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListService_Create_TemplateWithTripRejected(t *testing.T) {
	svc := service.NewListService(&mockListRepo{}, nil, &mockTripRepo{}, nil)

	tripID := uuid.New()
	_, err := svc.Create(context.Background(), domain.PackingList{
		Name: "Camping Basics", ListType: domain.ListTypePacking,
		IsTemplate: true, TripID: &tripID,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListService_Create_UnknownType(t *testing.T) {
	svc := service.NewListService(&mockListRepo{}, nil, &mockTripRepo{}, nil)

	_, err := svc.Create(context.Background(), domain.PackingList{Name: "X", ListType: "grocery"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListService_Reorder_MissingMoverIsNoOp(t *testing.T) {
	tripID := uuid.New()
	lists := &mockListRepo{
		list: func(_ context.Context, _ repo.ListFilter) ([]domain.PackingList, error) {
			return []domain.PackingList{{ID: uuid.New(), SortOrder: 0}}, nil
		},
		updateSortOrders: func(_ context.Context, _ []domain.PackingList) error {
			t.Fatal("nothing should be renumbered for a vanished mover")
			return nil
		},
	}

	svc := service.NewListService(lists, nil, nil, nil)
	err := svc.Reorder(context.Background(), tripID, uuid.New(), 0)

	assert.NoError(t, err)
}

func TestListService_Reorder_RenumbersDensely(t *testing.T) {
	tripID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	var written []domain.PackingList
	lists := &mockListRepo{
		list: func(_ context.Context, _ repo.ListFilter) ([]domain.PackingList, error) {
			return []domain.PackingList{
				{ID: a, SortOrder: 0}, {ID: b, SortOrder: 1}, {ID: c, SortOrder: 2},
			}, nil
		},
		updateSortOrders: func(_ context.Context, ls []domain.PackingList) error {
			written = ls
			return nil
		},
	}

	svc := service.NewListService(lists, nil, nil, nil)
	err := svc.Reorder(context.Background(), tripID, c, 0)

	require.NoError(t, err)
	require.Len(t, written, 3)
	assert.Equal(t, c, written[0].ID)
	for i, l := range written {
		assert.Equal(t, i, l.SortOrder)
	}
}

func TestListService_Progress(t *testing.T) {
	listID := uuid.New()
	lists := &mockListRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.PackingList, error) {
			return domain.PackingList{ID: id}, nil
		},
	}
	items := &mockItemRepo{
		listByListID: func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) {
			return []domain.Item{{IsPacked: true}, {IsPacked: false}, {IsPacked: true}}, nil
		},
	}

	svc := service.NewListService(lists, items, nil, nil)
	packed, total, err := svc.Progress(context.Background(), listID)

	require.NoError(t, err)
	assert.Equal(t, 2, packed)
	assert.Equal(t, 3, total)
}

func TestListService_List_ByUserResolvesNames(t *testing.T) {
	anna, ben := uuid.New(), uuid.New()
	lists := &mockListRepo{
		list: func(_ context.Context, _ repo.ListFilter) ([]domain.PackingList, error) {
			return []domain.PackingList{
				{Name: "B's bag", UserID: &ben},
				{Name: "A's bag", UserID: &anna},
			}, nil
		},
	}
	users := &mockUserRepo{
		list: func(context.Context) ([]domain.User, error) {
			return []domain.User{{ID: anna, Name: "Anna"}, {ID: ben, Name: "Ben"}}, nil
		},
	}

	svc := service.NewListService(lists, nil, nil, users)
	got, err := svc.List(context.Background(), repo.ListFilter{}, query.ListsByUser)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A's bag", got[0].Name)
}

// Copying a CountAsDays list into a trip substitutes each item's count with
// the trip length; copying as a template detaches and unpacks everything.
func TestListService_Copy_ForTripSubstitutesDayCounts(t *testing.T) {
	sourceID := uuid.New()
	tripID := uuid.New()

	source := domain.PackingList{
		ID: sourceID, Name: "Daily Wear", ListType: domain.ListTypePacking,
		IsTemplate: true, CountAsDays: true,
	}
	sourceItems := []domain.Item{
		{ID: uuid.New(), ListID: sourceID, Name: "Socks", Count: 1, IsPacked: true, SortOrder: 0},
		{ID: uuid.New(), ListID: sourceID, Name: "Shirts", Count: 2, SortOrder: 1},
	}

	trips := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{
				ID:        id,
				StartDate: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}

	var createdList domain.PackingList
	lists := &mockListRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.PackingList, error) {
			return source, nil
		},
		list: func(_ context.Context, _ repo.ListFilter) ([]domain.PackingList, error) {
			return nil, nil
		},
		create: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			createdList = l
			return l, nil
		},
	}

	var createdItems []domain.Item
	items := &mockItemRepo{
		listByListID: func(_ context.Context, id uuid.UUID) ([]domain.Item, error) {
			if id == sourceID {
				return sourceItems, nil
			}
			return nil, nil
		},
		listByListIDs: func(_ context.Context, _ []uuid.UUID) ([]domain.Item, error) {
			return nil, nil
		},
		create: func(_ context.Context, it domain.Item) (domain.Item, error) {
			createdItems = append(createdItems, it)
			return it, nil
		},
	}

	svc := service.NewListService(lists, items, trips, nil)
	got, err := svc.Copy(context.Background(), sourceID, false, &tripID)

	require.NoError(t, err)
	assert.NotEqual(t, sourceID, got.ID)
	assert.False(t, createdList.IsTemplate)
	require.NotNil(t, createdList.TripID)
	assert.Equal(t, tripID, *createdList.TripID)

	require.Len(t, createdItems, 2)
	for i, it := range createdItems {
		assert.Equal(t, 5, it.Count, "count substituted with the 5-day trip length")
		assert.False(t, it.IsPacked)
		assert.Equal(t, got.ID, it.ListID)
		assert.Equal(t, i, it.SortOrder)
	}
	// Source untouched.
	assert.Equal(t, 1, sourceItems[0].Count)
	assert.True(t, sourceItems[0].IsPacked)
}

func TestListService_Copy_AsTemplateDetaches(t *testing.T) {
	sourceID := uuid.New()
	tripID := uuid.New()
	source := domain.PackingList{
		ID: sourceID, Name: "Clothes", ListType: domain.ListTypePacking, TripID: &tripID,
	}

	var createdList domain.PackingList
	lists := &mockListRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.PackingList, error) {
			return source, nil
		},
		list: func(_ context.Context, _ repo.ListFilter) ([]domain.PackingList, error) {
			return nil, nil
		},
		create: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			createdList = l
			return l, nil
		},
	}
	items := &mockItemRepo{
		listByListID: func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) {
			return []domain.Item{{ID: uuid.New(), ListID: sourceID, Name: "Jacket", Count: 1, IsPacked: true}}, nil
		},
		listByListIDs: func(_ context.Context, _ []uuid.UUID) ([]domain.Item, error) {
			return nil, nil
		},
		create: func(_ context.Context, it domain.Item) (domain.Item, error) {
			assert.False(t, it.IsPacked)
			return it, nil
		},
	}

	svc := service.NewListService(lists, items, nil, nil)
	_, err := svc.Copy(context.Background(), sourceID, true, nil)

	require.NoError(t, err)
	assert.True(t, createdList.IsTemplate)
	assert.Nil(t, createdList.TripID)
}

func TestListService_Copy_ForTripRequiresTripID(t *testing.T) {
	lists := &mockListRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.PackingList, error) {
			return domain.PackingList{ID: id, Name: "X", ListType: domain.ListTypePacking}, nil
		},
	}
	items := &mockItemRepo{
		listByListID: func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) { return nil, nil },
	}

	svc := service.NewListService(lists, items, nil, nil)
	_, err := svc.Copy(context.Background(), uuid.New(), false, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
