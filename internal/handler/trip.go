package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/packup/packup/internal/domain"
)

// tripRequest is the request body for creating or updating a trip.
// Dates are date-only on the wire ("2026-07-04"); time components are not
// accepted.
type tripRequest struct {
	Name           string                `json:"name"`
	StartDate      openapi_types.Date    `json:"start_date"`
	EndDate        openapi_types.Date    `json:"end_date"`
	Transportation domain.Transportation `json:"transportation"`
	Accommodation  domain.Accommodation  `json:"accommodation"`
	Origin         *domain.Location      `json:"origin"`
	Destination    *domain.Location      `json:"destination"`
}

// tripResponse is a trip plus its derived fields. Status and duration are
// computed per request, never stored.
type tripResponse struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	StartDate      openapi_types.Date     `json:"start_date"`
	EndDate        openapi_types.Date     `json:"end_date"`
	Transportation domain.Transportation  `json:"transportation"`
	Accommodation  domain.Accommodation   `json:"accommodation"`
	Origin         *domain.Location       `json:"origin,omitempty"`
	Destination    *domain.Location       `json:"destination,omitempty"`
	Weather        domain.WeatherSnapshot `json:"weather,omitzero"`
	Status         domain.TripStatus      `json:"status"`
	DurationDays   int                    `json:"duration_days"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func (req tripRequest) toDomain(id uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:             id,
		Name:           req.Name,
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		Transportation: req.Transportation,
		Accommodation:  req.Accommodation,
		Origin:         req.Origin,
		Destination:    req.Destination,
	}
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:             t.ID,
		Name:           t.Name,
		StartDate:      openapi_types.Date{Time: t.StartDate},
		EndDate:        openapi_types.Date{Time: t.EndDate},
		Transportation: t.Transportation,
		Accommodation:  t.Accommodation,
		Origin:         t.Origin,
		Destination:    t.Destination,
		Weather:        t.Weather,
		Status:         t.Status(time.Now()),
		DurationDays:   t.DurationDays(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	created, err := s.trips.Create(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	jsonResponse(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20,
// max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		serviceError(w, err, "")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": map[string]int{
			"page":  params.Page,
			"limit": params.Limit,
			"total": int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	jsonResponse(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	updated, err := s.trips.Update(r.Context(), req.toDomain(id))
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	jsonResponse(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
// Deleting a trip deletes its packing lists and their items.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshTripWeather handles POST /trips/{id}/weather/refresh.
// Returns the trip with the snapshot it ended up with; a fresh cached
// snapshot short-circuits the upstream fetch.
func (s *Server) RefreshTripWeather(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	trip, err := s.weather.Refresh(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	jsonResponse(w, http.StatusOK, tripToResponse(trip))
}

// ListCollapsedSections handles GET /trips/{id}/collapsed.
func (s *Server) ListCollapsedSections(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	keys, err := s.trips.CollapsedSections(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"data": keys})
}

// CollapseSection handles PUT /trips/{id}/collapsed/{sectionKey}.
func (s *Server) CollapseSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	if err := s.trips.CollapseSection(r.Context(), id, chi.URLParam(r, "sectionKey")); err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExpandSection handles DELETE /trips/{id}/collapsed/{sectionKey}.
func (s *Server) ExpandSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	if err := s.trips.ExpandSection(r.Context(), id, chi.URLParam(r, "sectionKey")); err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional integer query parameter, nil when absent or
// malformed.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
