package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/query"
	"github.com/packup/packup/internal/repo"
)

// listRequest is the request body for creating or updating a packing list.
type listRequest struct {
	Name        string          `json:"name"`
	ListType    domain.ListType `json:"list_type"`
	IsTemplate  bool            `json:"is_template"`
	CountAsDays bool            `json:"count_as_days"`
	UserID      *uuid.UUID      `json:"user_id"`
	TripID      *uuid.UUID      `json:"trip_id"`
}

// CreateList handles POST /lists.
func (s *Server) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	created, err := s.lists.Create(r.Context(), domain.PackingList{
		Name:        req.Name,
		ListType:    req.ListType,
		IsTemplate:  req.IsTemplate,
		CountAsDays: req.CountAsDays,
		UserID:      req.UserID,
		TripID:      req.TripID,
	})
	if err != nil {
		serviceError(w, err, "trip or user not found")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// ListLists handles GET /lists.
// Supports ?user_id=, ?trip_id=, ?type=, ?template= filters and ?sort=
// (date, name_asc, name_desc, user, custom; default custom).
func (s *Server) ListLists(w http.ResponseWriter, r *http.Request) {
	f, err := listFilterFromQuery(r)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	sortOrder := query.ListsByCustomOrder
	if raw := r.URL.Query().Get("sort"); raw != "" {
		sortOrder = query.ListOrder(raw)
		if !sortOrder.Valid() {
			jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid sort parameter")
			return
		}
	}

	lists, err := s.lists.List(r.Context(), f, sortOrder)
	if err != nil {
		serviceError(w, err, "")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"data": lists})
}

// GetList handles GET /lists/{id}.
func (s *Server) GetList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	list, err := s.lists.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// UpdateList handles PUT /lists/{id}.
func (s *Server) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	var req listRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	stored, err := s.lists.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}
	stored.Name = req.Name
	stored.ListType = req.ListType
	stored.IsTemplate = req.IsTemplate
	stored.CountAsDays = req.CountAsDays
	stored.UserID = req.UserID
	stored.TripID = req.TripID

	updated, err := s.lists.Update(r.Context(), stored)
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// DeleteList handles DELETE /lists/{id}.
// Deleting a list deletes its items.
func (s *Server) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	if err := s.lists.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "list not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderLists handles POST /lists/reorder.
// A moving list that no longer exists is a silent no-op, not an error.
func (s *Server) ReorderLists(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TripID   uuid.UUID `json:"trip_id"`
		MovingID uuid.UUID `json:"moving_id"`
		ToIndex  int       `json:"to_index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if err := s.lists.Reorder(r.Context(), req.TripID, req.MovingID, req.ToIndex); err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProgress handles GET /lists/{id}/progress.
func (s *Server) ListProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	packed, total, err := s.lists.Progress(r.Context(), id)
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"packed": packed, "total": total})
}

// CopyList handles POST /lists/{id}/copy.
// With as_template the clone becomes a detached reusable template; otherwise
// trip_id names the destination trip and day-count substitution applies when
// the source has count_as_days set.
func (s *Server) CopyList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	var req struct {
		AsTemplate bool       `json:"as_template"`
		TripID     *uuid.UUID `json:"trip_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	created, err := s.lists.Copy(r.Context(), id, req.AsTemplate, req.TripID)
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// listFilterFromQuery parses the GET /lists filter parameters.
func listFilterFromQuery(r *http.Request) (repo.ListFilter, error) {
	var f repo.ListFilter
	q := r.URL.Query()

	if raw := q.Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return repo.ListFilter{}, errInvalidParam("user_id")
		}
		f.UserID = &id
	}
	if raw := q.Get("trip_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return repo.ListFilter{}, errInvalidParam("trip_id")
		}
		f.TripID = &id
	}
	if raw := q.Get("type"); raw != "" {
		lt := domain.ListType(raw)
		if !lt.Valid() {
			return repo.ListFilter{}, errInvalidParam("type")
		}
		f.Type = &lt
	}
	if raw := q.Get("template"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return repo.ListFilter{}, errInvalidParam("template")
		}
		f.Template = &b
	}
	return f, nil
}

type errInvalidParam string

func (e errInvalidParam) Error() string { return "invalid " + string(e) + " parameter" }
