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

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips ordered by start_date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips ordered by start_date descending,
	// plus the total trip count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// UpdateWeather writes the cached weather snapshot for a trip.
	// Returns domain.ErrNotFound if the trip does not exist.
	UpdateWeather(ctx context.Context, id uuid.UUID, w domain.WeatherSnapshot) error

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not
	// exist. Owned packing lists are deleted by the service's cascade walk
	// before this is called.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of trips in the store.
	Count(ctx context.Context) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, start_date, end_date, transportation, accommodation,
		origin_name, origin_lat, origin_lon,
		destination_name, destination_lat, destination_lon,
		weather_conditions, weather_forecast, weather_fetched_at,
		created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, start_date, end_date, transportation, accommodation,
		                   origin_name, origin_lat, origin_lon,
		                   destination_name, destination_lat, destination_lon)
		VALUES (@name, @start_date, @end_date, @transportation, @accommodation,
		        @origin_name, @origin_lat, @origin_lon,
		        @destination_name, @destination_lat, @destination_lon)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	var total int64
	for rows.Next() {
		t, n, err := scanTripWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	if len(trips) == 0 {
		// Past the last page — the window function never ran, so count directly.
		if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
		}
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name             = @name,
		    start_date       = @start_date,
		    end_date         = @end_date,
		    transportation   = @transportation,
		    accommodation    = @accommodation,
		    origin_name      = @origin_name,
		    origin_lat       = @origin_lat,
		    origin_lon       = @origin_lon,
		    destination_name = @destination_name,
		    destination_lat  = @destination_lat,
		    destination_lon  = @destination_lon,
		    updated_at       = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) UpdateWeather(ctx context.Context, id uuid.UUID, w domain.WeatherSnapshot) error {
	const q = `
		UPDATE trips
		SET weather_conditions = @conditions,
		    weather_forecast   = @forecast,
		    weather_fetched_at = @fetched_at
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         id,
		"conditions": w.Conditions,
		"forecast":   w.Forecast,
		"fetched_at": w.FetchedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.UpdateWeather: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.UpdateWeather: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Count: %w", err)
	}
	return n, nil
}

// tripArgs maps the mutable trip fields to named SQL arguments.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"name":             trip.Name,
		"start_date":       trip.StartDate,
		"end_date":         trip.EndDate,
		"transportation":   string(trip.Transportation),
		"accommodation":    string(trip.Accommodation),
		"origin_name":      nil,
		"origin_lat":       nil,
		"origin_lon":       nil,
		"destination_name": nil,
		"destination_lat":  nil,
		"destination_lon":  nil,
	}
	if loc := trip.Origin; loc != nil {
		args["origin_name"] = loc.Name
		args["origin_lat"] = loc.Latitude
		args["origin_lon"] = loc.Longitude
	}
	if loc := trip.Destination; loc != nil {
		args["destination_name"] = loc.Name
		args["destination_lat"] = loc.Latitude
		args["destination_lon"] = loc.Longitude
	}
	return args
}

func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles UUID, date, and nullable location/weather conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	t, _, err := scanTripDests(s, false)
	return t, err
}

func scanTripWithTotal(s scanner) (domain.Trip, int64, error) {
	return scanTripDests(s, true)
}

func scanTripDests(s scanner, withTotal bool) (domain.Trip, int64, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		start     pgtype.Date
		end       pgtype.Date
		origName  pgtype.Text
		origLat   pgtype.Float8
		origLon   pgtype.Float8
		destName  pgtype.Text
		destLat   pgtype.Float8
		destLon   pgtype.Float8
		fetchedAt pgtype.Timestamptz
		total     int64
	)

	dests := []any{
		&id, &t.Name, &start, &end, &t.Transportation, &t.Accommodation,
		&origName, &origLat, &origLon,
		&destName, &destLat, &destLon,
		&t.Weather.Conditions, &t.Weather.Forecast, &fetchedAt,
		&t.CreatedAt, &t.UpdatedAt,
	}
	if withTotal {
		dests = append(dests, &total)
	}

	if err := s.Scan(dests...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, 0, domain.ErrNotFound
		}
		return domain.Trip{}, 0, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	if origName.Valid {
		t.Origin = &domain.Location{Name: origName.String, Latitude: origLat.Float64, Longitude: origLon.Float64}
	}
	if destName.Valid {
		t.Destination = &domain.Location{Name: destName.String, Latitude: destLat.Float64, Longitude: destLon.Float64}
	}
	if fetchedAt.Valid {
		t.Weather.FetchedAt = fetchedAt.Time
	}
	return t, total, nil
}
