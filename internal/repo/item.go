package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/packup/packup/internal/domain"
)

// ItemRepo defines the persistence operations for Items.
type ItemRepo interface {
	// Create inserts a new item and returns the persisted record.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// GetByID retrieves a single item by its UUID primary key.
	// Returns domain.ErrNotFound if no item with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)

	// ListByListID returns all items of one list ordered by sort_order.
	ListByListID(ctx context.Context, listID uuid.UUID) ([]domain.Item, error)

	// ListByListIDs returns the union of items across the given lists,
	// ordered by unified_sort_order. Used for unified cross-list views.
	ListByListIDs(ctx context.Context, listIDs []uuid.UUID) ([]domain.Item, error)

	// Update overwrites the mutable fields of an existing item — including
	// its owning list, which is how a cross-list move transfers ownership —
	// and returns the updated record. Returns domain.ErrNotFound if it does
	// not exist.
	Update(ctx context.Context, item domain.Item) (domain.Item, error)

	// UpdateOrders persists sort_order and unified_sort_order for every given
	// item in one batch. Used by reorders so a renumbered sequence lands as
	// a single round trip.
	UpdateOrders(ctx context.Context, items []domain.Item) error

	// Delete removes an item by ID. Returns domain.ErrNotFound if it does not
	// exist. Remaining siblings are not renumbered here.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemColumns = `id, list_id, name, category, count, is_packed, sort_order, unified_sort_order, created_at, updated_at`

func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		INSERT INTO items (list_id, name, category, count, is_packed, sort_order, unified_sort_order)
		VALUES (@list_id, @name, @category, @count, @is_packed, @sort_order, @unified_sort_order)
		RETURNING ` + itemColumns

	row := r.db.QueryRow(ctx, q, itemArgs(item))
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) ListByListID(ctx context.Context, listID uuid.UUID) ([]domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE list_id = @list_id
		ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"list_id": listID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByListID: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByListID: %w", err)
	}
	return items, nil
}

func (r *pgItemRepo) ListByListIDs(ctx context.Context, listIDs []uuid.UUID) ([]domain.Item, error) {
	if len(listIDs) == 0 {
		return []domain.Item{}, nil
	}

	const q = `
		SELECT ` + itemColumns + `
		FROM items
		WHERE list_id = ANY(@list_ids)
		ORDER BY unified_sort_order, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"list_ids": listIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByListIDs: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByListIDs: %w", err)
	}
	return items, nil
}

func (r *pgItemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		UPDATE items
		SET list_id            = @list_id,
		    name               = @name,
		    category           = @category,
		    count              = @count,
		    is_packed          = @is_packed,
		    sort_order         = @sort_order,
		    unified_sort_order = @unified_sort_order,
		    updated_at         = now()
		WHERE id = @id
		RETURNING ` + itemColumns

	args := itemArgs(item)
	args["id"] = item.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateOrders writes both order fields of every item in a single pipelined batch.
func (r *pgItemRepo) UpdateOrders(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	const q = `
		UPDATE items
		SET sort_order = @sort_order, unified_sort_order = @unified_sort_order, updated_at = now()
		WHERE id = @id`

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(q, pgx.NamedArgs{
			"id":                 it.ID,
			"sort_order":         it.SortOrder,
			"unified_sort_order": it.UnifiedSortOrder,
		})
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("repo.ItemRepo.UpdateOrders: %w", err)
		}
	}
	return nil
}

func (r *pgItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM items WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// itemArgs maps the mutable item fields to named SQL arguments.
func itemArgs(item domain.Item) pgx.NamedArgs {
	return pgx.NamedArgs{
		"list_id":            item.ListID,
		"name":               item.Name,
		"category":           item.Category,
		"count":              item.Count,
		"is_packed":          item.IsPacked,
		"sort_order":         item.SortOrder,
		"unified_sort_order": item.UnifiedSortOrder,
	}
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	items := []domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// scanItem maps a single database row into a domain.Item.
func scanItem(s scanner) (domain.Item, error) {
	var (
		it     domain.Item
		id     pgtype.UUID
		listID pgtype.UUID
	)

	err := s.Scan(&id, &listID, &it.Name, &it.Category, &it.Count, &it.IsPacked,
		&it.SortOrder, &it.UnifiedSortOrder, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.ListID = uuid.UUID(listID.Bytes)
	return it, nil
}
