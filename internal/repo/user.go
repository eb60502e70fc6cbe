// Package repo contains all database access logic for the packing-list API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/packup/packup/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// UserRepo defines the persistence operations for Users.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a single user by its UUID primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// List returns all users ordered by name ascending.
	List(ctx context.Context) ([]domain.User, error)

	// Update overwrites the mutable fields of an existing user and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, user domain.User) (domain.User, error)

	// Delete removes a user by ID. Returns domain.ErrNotFound if it does not
	// exist. Owned packing lists are deleted by the service's cascade walk
	// before this is called; the FK cascade is only a storage backstop.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of users in the store.
	Count(ctx context.Context) (int64, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, name, color_tag, profile_image, location_name, location_lat, location_lon, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (name, color_tag, profile_image, location_name, location_lat, location_lon)
		VALUES (@name, @color_tag, @profile_image, @location_name, @location_lat, @location_lon)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, q, userArgs(user))
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY name, created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.List: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET name          = @name,
		    color_tag     = @color_tag,
		    profile_image = @profile_image,
		    location_name = @location_name,
		    location_lat  = @location_lat,
		    location_lon  = @location_lon,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := userArgs(user)
	args["id"] = user.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgUserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.UserRepo.Count: %w", err)
	}
	return n, nil
}

// userArgs maps the mutable user fields to named SQL arguments.
// A nil DefaultLocation becomes three NULL columns.
func userArgs(user domain.User) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"name":          user.Name,
		"color_tag":     user.ColorTag,
		"profile_image": user.ProfileImage,
		"location_name": nil,
		"location_lat":  nil,
		"location_lon":  nil,
	}
	if loc := user.DefaultLocation; loc != nil {
		args["location_name"] = loc.Name
		args["location_lat"] = loc.Latitude
		args["location_lon"] = loc.Longitude
	}
	return args
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u       domain.User
		id      pgtype.UUID
		locName pgtype.Text
		locLat  pgtype.Float8
		locLon  pgtype.Float8
	)

	err := s.Scan(&id, &u.Name, &u.ColorTag, &u.ProfileImage, &locName, &locLat, &locLon, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	if locName.Valid {
		u.DefaultLocation = &domain.Location{
			Name:      locName.String,
			Latitude:  locLat.Float64,
			Longitude: locLon.Float64,
		}
	}
	return u, nil
}
