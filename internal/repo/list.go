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

// ListFilter narrows ListRepo.List. Nil fields match everything, so the
// zero value returns all packing lists. Detached and Unowned match the NULL
// column itself, which a pointer field cannot express.
type ListFilter struct {
	UserID   *uuid.UUID
	TripID   *uuid.UUID
	Type     *domain.ListType
	Template *bool

	// Detached restricts to lists with no trip (trip_id IS NULL).
	Detached bool

	// Unowned restricts to lists with no owner (user_id IS NULL).
	Unowned bool
}

// ListRepo defines the persistence operations for PackingLists.
type ListRepo interface {
	// Create inserts a new packing list and returns the persisted record.
	Create(ctx context.Context, list domain.PackingList) (domain.PackingList, error)

	// GetByID retrieves a single list by its UUID primary key.
	// Returns domain.ErrNotFound if no list with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.PackingList, error)

	// List returns the lists matching f, ordered by sort_order then creation time.
	List(ctx context.Context, f ListFilter) ([]domain.PackingList, error)

	// Update overwrites the mutable fields of an existing list and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, list domain.PackingList) (domain.PackingList, error)

	// UpdateSortOrders persists the sort_order field of every given list in
	// one batch. Used by sibling reorders.
	UpdateSortOrders(ctx context.Context, lists []domain.PackingList) error

	// Delete removes a list by ID. Returns domain.ErrNotFound if it does not
	// exist. Items are deleted by the service's cascade walk first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgListRepo is the Postgres implementation of ListRepo.
type pgListRepo struct {
	db db
}

// NewListRepo constructs a ListRepo backed by the provided db connection.
func NewListRepo(db db) ListRepo {
	return &pgListRepo{db: db}
}

const listColumns = `id, name, list_type, is_template, count_as_days, sort_order, user_id, trip_id, created_at, updated_at`

func (r *pgListRepo) Create(ctx context.Context, list domain.PackingList) (domain.PackingList, error) {
	const q = `
		INSERT INTO packing_lists (name, list_type, is_template, count_as_days, sort_order, user_id, trip_id)
		VALUES (@name, @list_type, @is_template, @count_as_days, @sort_order, @user_id, @trip_id)
		RETURNING ` + listColumns

	row := r.db.QueryRow(ctx, q, listArgs(list))
	result, err := scanList(row)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.ListRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgListRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.PackingList, error) {
	const q = `SELECT ` + listColumns + ` FROM packing_lists WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanList(row)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.ListRepo.GetByID: %w", err)
	}
	return result, nil
}

// List applies f as a set of NULL-tolerant predicates: each filter column
// only constrains the result when its argument is non-NULL.
func (r *pgListRepo) List(ctx context.Context, f ListFilter) ([]domain.PackingList, error) {
	const q = `
		SELECT ` + listColumns + `
		FROM packing_lists
		WHERE (@user_id::uuid IS NULL OR user_id = @user_id)
		  AND (@trip_id::uuid IS NULL OR trip_id = @trip_id)
		  AND (@list_type::text IS NULL OR list_type = @list_type)
		  AND (@is_template::boolean IS NULL OR is_template = @is_template)
		  AND (NOT @detached::boolean OR trip_id IS NULL)
		  AND (NOT @unowned::boolean OR user_id IS NULL)
		ORDER BY sort_order, created_at`

	args := pgx.NamedArgs{
		"user_id":     f.UserID,
		"trip_id":     f.TripID,
		"list_type":   nil,
		"is_template": nil,
		"detached":    f.Detached,
		"unowned":     f.Unowned,
	}
	if f.Type != nil {
		args["list_type"] = string(*f.Type)
	}
	if f.Template != nil {
		args["is_template"] = *f.Template
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ListRepo.List: %w", err)
	}
	defer rows.Close()

	lists := []domain.PackingList{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ListRepo.List: scan: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ListRepo.List: rows: %w", err)
	}
	return lists, nil
}

func (r *pgListRepo) Update(ctx context.Context, list domain.PackingList) (domain.PackingList, error) {
	const q = `
		UPDATE packing_lists
		SET name          = @name,
		    list_type     = @list_type,
		    is_template   = @is_template,
		    count_as_days = @count_as_days,
		    sort_order    = @sort_order,
		    user_id       = @user_id,
		    trip_id       = @trip_id,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + listColumns

	args := listArgs(list)
	args["id"] = list.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanList(row)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.ListRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateSortOrders writes every list's sort_order in a single pipelined batch.
func (r *pgListRepo) UpdateSortOrders(ctx context.Context, lists []domain.PackingList) error {
	if len(lists) == 0 {
		return nil
	}

	const q = `UPDATE packing_lists SET sort_order = @sort_order, updated_at = now() WHERE id = @id`

	batch := &pgx.Batch{}
	for _, l := range lists {
		batch.Queue(q, pgx.NamedArgs{"id": l.ID, "sort_order": l.SortOrder})
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range lists {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("repo.ListRepo.UpdateSortOrders: %w", err)
		}
	}
	return nil
}

func (r *pgListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM packing_lists WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ListRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ListRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// listArgs maps the mutable list fields to named SQL arguments.
func listArgs(list domain.PackingList) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          list.Name,
		"list_type":     string(list.ListType),
		"is_template":   list.IsTemplate,
		"count_as_days": list.CountAsDays,
		"sort_order":    list.SortOrder,
		"user_id":       list.UserID, // nil becomes NULL
		"trip_id":       list.TripID,
	}
}

// scanList maps a single database row into a domain.PackingList.
func scanList(s scanner) (domain.PackingList, error) {
	var (
		l      domain.PackingList
		id     pgtype.UUID
		userID pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &l.Name, &l.ListType, &l.IsTemplate, &l.CountAsDays, &l.SortOrder,
		&userID, &tripID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PackingList{}, domain.ErrNotFound
		}
		return domain.PackingList{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	if userID.Valid {
		u := uuid.UUID(userID.Bytes)
		l.UserID = &u
	}
	if tripID.Valid {
		t := uuid.UUID(tripID.Bytes)
		l.TripID = &t
	}
	return l, nil
}
