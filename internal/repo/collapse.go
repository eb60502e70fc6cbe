package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CollapseRepo persists which sections are collapsed in a trip's sectioned
// view. This is display-only state keyed by (trip, section) and carries no
// ordering semantics.
type CollapseRepo interface {
	// ListKeys returns the collapsed section keys for a trip, ordered by key.
	ListKeys(ctx context.Context, tripID uuid.UUID) ([]string, error)

	// Add marks a section collapsed. Idempotent.
	Add(ctx context.Context, tripID uuid.UUID, sectionKey string) error

	// Remove marks a section expanded. Idempotent — removing an absent key
	// is not an error, since the expanded state is the default.
	Remove(ctx context.Context, tripID uuid.UUID, sectionKey string) error
}

// pgCollapseRepo is the Postgres implementation of CollapseRepo.
type pgCollapseRepo struct {
	db db
}

// NewCollapseRepo constructs a CollapseRepo backed by the provided db connection.
func NewCollapseRepo(db db) CollapseRepo {
	return &pgCollapseRepo{db: db}
}

func (r *pgCollapseRepo) ListKeys(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	const q = `
		SELECT section_key
		FROM section_collapse_state
		WHERE trip_id = @trip_id
		ORDER BY section_key`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CollapseRepo.ListKeys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("repo.CollapseRepo.ListKeys: scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CollapseRepo.ListKeys: rows: %w", err)
	}
	return keys, nil
}

func (r *pgCollapseRepo) Add(ctx context.Context, tripID uuid.UUID, sectionKey string) error {
	const q = `
		INSERT INTO section_collapse_state (trip_id, section_key)
		VALUES (@trip_id, @section_key)
		ON CONFLICT (trip_id, section_key) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "section_key": sectionKey})
	if err != nil {
		return fmt.Errorf("repo.CollapseRepo.Add: %w", err)
	}
	return nil
}

func (r *pgCollapseRepo) Remove(ctx context.Context, tripID uuid.UUID, sectionKey string) error {
	const q = `
		DELETE FROM section_collapse_state
		WHERE trip_id = @trip_id AND section_key = @section_key`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "section_key": sectionKey})
	if err != nil {
		return fmt.Errorf("repo.CollapseRepo.Remove: %w", err)
	}
	return nil
}
