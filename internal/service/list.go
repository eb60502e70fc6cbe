package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/duplicate"
	"github.com/packup/packup/internal/order"
	"github.com/packup/packup/internal/query"
	"github.com/packup/packup/internal/repo"
)

// ListService implements business logic for PackingList operations: creation
// with sibling placement, filtered+sorted views, sibling reordering, progress
// counts, and the template/per-trip duplication flows.
type ListService struct {
	lists repo.ListRepo
	items repo.ItemRepo
	trips repo.TripRepo
	users repo.UserRepo
}

// NewListService constructs a ListService backed by the provided repos.
func NewListService(lists repo.ListRepo, items repo.ItemRepo, trips repo.TripRepo, users repo.UserRepo) *ListService {
	return &ListService{lists: lists, items: items, trips: trips, users: users}
}

// Create validates the list, verifies its referenced trip and user exist, and
// persists it at the end of its sibling sequence.
func (s *ListService) Create(ctx context.Context, list domain.PackingList) (domain.PackingList, error) {
	if err := validateList(list); err != nil {
		return domain.PackingList{}, err
	}
	if list.TripID != nil {
		if _, err := s.trips.GetByID(ctx, *list.TripID); err != nil {
			return domain.PackingList{}, fmt.Errorf("service.ListService.Create: %w", err)
		}
	}
	if list.UserID != nil {
		if _, err := s.users.GetByID(ctx, *list.UserID); err != nil {
			return domain.PackingList{}, fmt.Errorf("service.ListService.Create: %w", err)
		}
	}

	siblings, err := s.lists.List(ctx, siblingFilter(list))
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Create: %w", err)
	}
	list.SortOrder = order.NextListSortOrder(siblings)

	result, err := s.lists.Create(ctx, list)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single list by ID.
func (s *ListService) GetByID(ctx context.Context, id uuid.UUID) (domain.PackingList, error) {
	result, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the lists matching f, arranged by sortOrder. Sorting by owner
// name loads the user table once to resolve names; ownerless lists sort last.
// Always returns a non-nil slice.
func (s *ListService) List(ctx context.Context, f repo.ListFilter, sortOrder query.ListOrder) ([]domain.PackingList, error) {
	lists, err := s.lists.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.ListService.List: %w", err)
	}

	var userName func(uuid.UUID) string
	if sortOrder == query.ListsByUser {
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.ListService.List: %w", err)
		}
		names := make(map[uuid.UUID]string, len(users))
		for _, u := range users {
			names[u.ID] = u.Name
		}
		userName = func(id uuid.UUID) string { return names[id] }
	}

	sorted := query.SortLists(lists, sortOrder, userName)
	if sorted == nil {
		return []domain.PackingList{}, nil
	}
	return sorted, nil
}

// Update validates and persists changes to an existing list. The fields that
// define the list's ordering scopes — trip, owner, template flag — are frozen
// here: changing them would strand both the old and new sibling sequences
// without renumbering. Reattaching content to another trip goes through Copy.
func (s *ListService) Update(ctx context.Context, list domain.PackingList) (domain.PackingList, error) {
	if err := validateList(list); err != nil {
		return domain.PackingList{}, err
	}
	stored, err := s.lists.GetByID(ctx, list.ID)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Update: %w", err)
	}
	if !sameRef(stored.TripID, list.TripID) || !sameRef(stored.UserID, list.UserID) || stored.IsTemplate != list.IsTemplate {
		return domain.PackingList{}, fmt.Errorf("%w: a list cannot change its trip, owner, or template flag", domain.ErrValidation)
	}
	result, err := s.lists.Update(ctx, list)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Update: %w", err)
	}
	return result, nil
}

// sameRef reports whether two optional references point at the same ID.
func sameRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Delete removes a list and all its items, walking the items explicitly.
func (s *ListService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := cascadeDeleteList(ctx, s.lists, s.items, id); err != nil {
		return fmt.Errorf("service.ListService.Delete: %w", err)
	}
	return nil
}

// Reorder moves a list among its trip's siblings and renumbers them densely.
// A moving list that no longer exists makes the whole operation a silent
// no-op — nothing is renumbered.
func (s *ListService) Reorder(ctx context.Context, tripID, movingID uuid.UUID, toIndex int) error {
	siblings, err := s.lists.List(ctx, repo.ListFilter{TripID: &tripID})
	if err != nil {
		return fmt.Errorf("service.ListService.Reorder: %w", err)
	}
	renumbered := order.ReorderLists(siblings, movingID, toIndex)
	if renumbered == nil {
		return nil
	}
	if err := s.lists.UpdateSortOrders(ctx, renumbered); err != nil {
		return fmt.Errorf("service.ListService.Reorder: %w", err)
	}
	return nil
}

// Progress returns the packed and total item counts for one list.
func (s *ListService) Progress(ctx context.Context, listID uuid.UUID) (packed, total int, err error) {
	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		return 0, 0, fmt.Errorf("service.ListService.Progress: %w", err)
	}
	items, err := s.items.ListByListID(ctx, listID)
	if err != nil {
		return 0, 0, fmt.Errorf("service.ListService.Progress: %w", err)
	}
	packed, total = query.Progress(items)
	return packed, total, nil
}

// Copy clones a list and its items. With asTemplate the clone becomes a
// detached reusable template; otherwise tripID names the destination trip and
// the clone is attached to it, with day-count substitution applied when the
// source has CountAsDays set. The source is never touched.
func (s *ListService) Copy(ctx context.Context, sourceID uuid.UUID, asTemplate bool, tripID *uuid.UUID) (domain.PackingList, error) {
	source, err := s.lists.GetByID(ctx, sourceID)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
	}
	items, err := s.items.ListByListID(ctx, sourceID)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
	}

	var c duplicate.Copy
	if asTemplate {
		c = duplicate.AsTemplate(source, items)
	} else {
		if tripID == nil {
			return domain.PackingList{}, fmt.Errorf("%w: trip_id is required unless copying as a template", domain.ErrValidation)
		}
		trip, err := s.trips.GetByID(ctx, *tripID)
		if err != nil {
			return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
		}
		c = duplicate.ForTrip(source, items, trip.DurationDays())
		c.List.TripID = &trip.ID
	}

	// Place the clone after its new siblings and give its items unified
	// orders appended to the destination scope.
	siblings, err := s.lists.List(ctx, siblingFilter(c.List))
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
	}
	c.List.SortOrder = order.NextListSortOrder(siblings)

	scopeItems, err := s.scopeItems(ctx, c.List)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
	}
	base := order.NextUnifiedSortOrder(scopeItems)

	created, err := s.lists.Create(ctx, c.List)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
	}
	for i, it := range c.Items {
		it.ListID = created.ID
		it.UnifiedSortOrder = base + i
		if _, err := s.items.Create(ctx, it); err != nil {
			return domain.PackingList{}, fmt.Errorf("service.ListService.Copy: %w", err)
		}
	}
	return created, nil
}

// scopeItems returns the union of items across all lists sharing list's
// unified ordering scope.
func (s *ListService) scopeItems(ctx context.Context, list domain.PackingList) ([]domain.Item, error) {
	lists, err := s.lists.List(ctx, unifiedScopeFilter(list))
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return s.items.ListByListIDs(ctx, ids)
}

// siblingFilter selects the lists a new or moved list is ordered among:
// the lists of the same trip, or, for detached lists, the same owner's
// detached lists with the same template flag. Detached scopes must not bleed
// into trip-attached ones, and an ownerless scope is its own sequence rather
// than a superset of every owner's.
func siblingFilter(list domain.PackingList) repo.ListFilter {
	if list.TripID != nil {
		return repo.ListFilter{TripID: list.TripID}
	}
	tmpl := list.IsTemplate
	return repo.ListFilter{
		UserID:   list.UserID,
		Template: &tmpl,
		Detached: true,
		Unowned:  list.UserID == nil,
	}
}

// unifiedScopeFilter selects the lists contributing to one unified ordering
// scope: same trip and list type for attached lists; same owner, template
// flag, and type for detached ones, with the same NULL-column constraints as
// siblingFilter so the scopes stay disjoint.
func unifiedScopeFilter(list domain.PackingList) repo.ListFilter {
	f := repo.ListFilter{Type: &list.ListType}
	if list.TripID != nil {
		f.TripID = list.TripID
		return f
	}
	tmpl := list.IsTemplate
	f.Template = &tmpl
	f.UserID = list.UserID
	f.Detached = true
	f.Unowned = list.UserID == nil
	return f
}

// validateList enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - ListType must be a known value.
//   - A template list must not reference a trip.
func validateList(list domain.PackingList) error {
	if strings.TrimSpace(list.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !list.ListType.Valid() {
		return fmt.Errorf("%w: unknown list type %q", domain.ErrValidation, list.ListType)
	}
	if list.IsTemplate && list.TripID != nil {
		return fmt.Errorf("%w: a template list cannot belong to a trip", domain.ErrValidation)
	}
	return nil
}
