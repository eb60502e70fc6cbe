package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/order"
	"github.com/packup/packup/internal/repo"
)

// ItemService implements business logic for Item operations: creation with
// monotonic order assignment, packing state, both reorder domains, and the
// cross-list move.
//
// Reorder and move follow the model's best-effort contract: when the moving
// item can no longer be located it was deleted by a racing gesture, the
// intended effect is moot, and the operation is a silent no-op. Either the
// whole sequence is renumbered or nothing is touched.
type ItemService struct {
	items repo.ItemRepo
	lists repo.ListRepo
}

// NewItemService constructs an ItemService backed by the provided repos.
func NewItemService(items repo.ItemRepo, lists repo.ListRepo) *ItemService {
	return &ItemService{items: items, lists: lists}
}

// Create validates the item, verifies the parent list exists, assigns it the
// next position in both ordering domains, and persists it. Deleted positions
// are never reused; sequences compact on the next reorder.
func (s *ItemService) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	list, err := s.lists.GetByID(ctx, item.ListID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	if err := validateItem(item); err != nil {
		return domain.Item{}, err
	}

	siblings, err := s.items.ListByListID(ctx, item.ListID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	item.SortOrder = order.NextSortOrder(siblings)

	scope, err := s.scopeItems(ctx, list)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	item.UnifiedSortOrder = order.NextUnifiedSortOrder(scope)

	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single item by ID.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	result, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.GetByID: %w", err)
	}
	return result, nil
}

// ListByListID returns all items of one list ordered by sort order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItemService) ListByListID(ctx context.Context, listID uuid.UUID) ([]domain.Item, error) {
	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByListID: %w", err)
	}
	items, err := s.items.ListByListID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByListID: %w", err)
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

// UnifiedItems returns the union of a trip's items across all its lists,
// ordered by unified sort order. userID and listType optionally narrow the
// view to one person's lists or one list type. Always returns a non-nil slice.
func (s *ItemService) UnifiedItems(ctx context.Context, tripID uuid.UUID, userID *uuid.UUID, listType *domain.ListType) ([]domain.Item, error) {
	items, err := s.scopedTripItems(ctx, repo.ListFilter{TripID: &tripID, UserID: userID, Type: listType})
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.UnifiedItems: %w", err)
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

// Update renames, recategorizes, or recounts an existing item. Ownership and
// ordering fields are preserved from the stored record — moves and reorders
// have their own entry points.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, name, category string, count int) (domain.Item, error) {
	stored, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	stored.Name = name
	stored.Category = category
	stored.Count = count
	if err := validateItem(stored); err != nil {
		return domain.Item{}, err
	}
	result, err := s.items.Update(ctx, stored)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	return result, nil
}

// Toggle flips an item's packed state. A packed item leaves the unpacked
// sequences without renumbering them; the gap closes on the next reorder.
func (s *ItemService) Toggle(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	stored, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Toggle: %w", err)
	}
	stored.IsPacked = !stored.IsPacked
	result, err := s.items.Update(ctx, stored)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Toggle: %w", err)
	}
	return result, nil
}

// Delete removes an item. Remaining siblings keep their positions — the
// sequence compacts on the next reorder, and next-position assignment never
// reuses the freed index.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	return nil
}

// Reorder moves an item within its list's unpacked sequence and renumbers
// that sequence densely.
func (s *ItemService) Reorder(ctx context.Context, listID, movingID uuid.UUID, toIndex int) error {
	items, err := s.items.ListByListID(ctx, listID)
	if err != nil {
		return fmt.Errorf("service.ItemService.Reorder: %w", err)
	}
	renumbered := order.ReorderItems(items, movingID, toIndex)
	if renumbered == nil {
		return nil
	}
	if err := s.items.UpdateOrders(ctx, renumbered); err != nil {
		return fmt.Errorf("service.ItemService.Reorder: %w", err)
	}
	return nil
}

// ReorderUnified moves an item within a trip's cross-list sequence and
// renumbers the unified orders densely. Per-list sort orders are untouched.
// userID and listType must match the narrowing of the view the drop index was
// computed against, so the renumbered sequence is the one the client saw and
// items in other scopes keep their positions. includeAll widens the sequence
// to packed items as well, which template editing needs.
func (s *ItemService) ReorderUnified(ctx context.Context, tripID, movingID uuid.UUID, toIndex int, userID *uuid.UUID, listType *domain.ListType, includeAll bool) error {
	items, err := s.scopedTripItems(ctx, repo.ListFilter{TripID: &tripID, UserID: userID, Type: listType})
	if err != nil {
		return fmt.Errorf("service.ItemService.ReorderUnified: %w", err)
	}
	renumbered := order.ReorderUnifiedItems(items, movingID, toIndex, includeAll)
	if renumbered == nil {
		return nil
	}
	if err := s.items.UpdateOrders(ctx, renumbered); err != nil {
		return fmt.Errorf("service.ItemService.ReorderUnified: %w", err)
	}
	return nil
}

// ReorderUnifiedScope moves an item within the unified scope the given list
// belongs to. Detached and template scopes have no trip to address, so the
// scope is named by one of its member lists. includeAll spans packed items
// too, which template editing needs.
func (s *ItemService) ReorderUnifiedScope(ctx context.Context, listID, movingID uuid.UUID, toIndex int, includeAll bool) error {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return fmt.Errorf("service.ItemService.ReorderUnifiedScope: %w", err)
	}
	items, err := s.scopeItems(ctx, list)
	if err != nil {
		return fmt.Errorf("service.ItemService.ReorderUnifiedScope: %w", err)
	}
	renumbered := order.ReorderUnifiedItems(items, movingID, toIndex, includeAll)
	if renumbered == nil {
		return nil
	}
	if err := s.items.UpdateOrders(ctx, renumbered); err != nil {
		return fmt.Errorf("service.ItemService.ReorderUnifiedScope: %w", err)
	}
	return nil
}

// Move transfers an item to another list and places it at toIndex there.
// The transfer is atomic from the caller's perspective: the item is never
// observable without an owning list. The source list is compacted right away
// so it does not keep a gap, and the target is renumbered by the same
// algorithm an in-list reorder uses.
func (s *ItemService) Move(ctx context.Context, itemID, targetListID uuid.UUID, toIndex int) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil // deleted by a racing operation
		}
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	if item.ListID == targetListID {
		return s.Reorder(ctx, targetListID, itemID, toIndex)
	}

	target, err := s.lists.GetByID(ctx, targetListID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	sourceID := item.ListID

	// Append to the target's ordering domains first; the target reorder
	// below compacts the per-list sequence into its final shape.
	targetItems, err := s.items.ListByListID(ctx, targetListID)
	if err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	scope, err := s.scopeItems(ctx, target)
	if err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	item.ListID = targetListID
	item.SortOrder = order.NextSortOrder(targetItems)
	item.UnifiedSortOrder = order.NextUnifiedSortOrder(scope)
	if _, err := s.items.Update(ctx, item); err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}

	// Close the gap the item left behind.
	remaining, err := s.items.ListByListID(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}
	if err := s.items.UpdateOrders(ctx, order.CompactItems(remaining)); err != nil {
		return fmt.Errorf("service.ItemService.Move: %w", err)
	}

	return s.Reorder(ctx, targetListID, itemID, toIndex)
}

func (s *ItemService) scopedTripItems(ctx context.Context, f repo.ListFilter) ([]domain.Item, error) {
	lists, err := s.lists.List(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return s.items.ListByListIDs(ctx, ids)
}

// scopeItems loads the union of items across all lists sharing list's
// unified ordering scope.
func (s *ItemService) scopeItems(ctx context.Context, list domain.PackingList) ([]domain.Item, error) {
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

// validateItem enforces business rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Count must be at least 1.
func validateItem(item domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if item.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1", domain.ErrValidation)
	}
	return nil
}
