package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/query"
)

// itemRequest is the request body for creating or updating an item.
type itemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CreateItem handles POST /lists/{id}/items.
// An omitted count defaults to 1.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	created, err := s.items.Create(r.Context(), domain.Item{
		ListID:   listID,
		Name:     req.Name,
		Category: req.Category,
		Count:    req.Count,
	})
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// GetItem handles GET /items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	item, err := s.items.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// ListItems handles GET /lists/{id}/items.
// Supports ?sort= (date, custom, unified; default custom).
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	items, err := s.items.ListByListID(r.Context(), listID)
	if err != nil {
		serviceError(w, err, "list not found")
		return
	}

	sortOrder := query.ItemsByCustomOrder
	if raw := r.URL.Query().Get("sort"); raw != "" {
		sortOrder = query.ItemOrder(raw)
		if !sortOrder.Valid() {
			jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid sort parameter")
			return
		}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"data": query.SortItems(items, sortOrder)})
}

// ListUnifiedItems handles GET /trips/{id}/items.
// Returns the cross-list view ordered by unified sort order; ?user_id= and
// ?type= narrow it.
func (s *Server) ListUnifiedItems(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	var userID *uuid.UUID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid user_id parameter")
			return
		}
		userID = &id
	}
	var listType *domain.ListType
	if raw := r.URL.Query().Get("type"); raw != "" {
		lt := domain.ListType(raw)
		if !lt.Valid() {
			jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid type parameter")
			return
		}
		listType = &lt
	}

	items, err := s.items.UnifiedItems(r.Context(), tripID, userID, listType)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"data": items})
}

// UpdateItem handles PUT /items/{id}.
// Only name, category and count change here; packing state, ownership and
// positions have their own endpoints.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	updated, err := s.items.Update(r.Context(), id, req.Name, req.Category, req.Count)
	if err != nil {
		serviceError(w, err, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// ToggleItem handles POST /items/{id}/toggle.
func (s *Server) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	toggled, err := s.items.Toggle(r.Context(), id)
	if err != nil {
		serviceError(w, err, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, toggled)
}

// DeleteItem handles DELETE /items/{id}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	if err := s.items.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderItems handles POST /lists/{id}/items/reorder.
// A moving item that no longer exists is a silent no-op, not an error.
func (s *Server) ReorderItems(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	var req struct {
		MovingID uuid.UUID `json:"moving_id"`
		ToIndex  int       `json:"to_index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if err := s.items.Reorder(r.Context(), listID, req.MovingID, req.ToIndex); err != nil {
		serviceError(w, err, "list not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderUnifiedItems handles POST /trips/{id}/items/reorder.
// user_id and type must repeat whatever narrowing the client viewed the
// unified sequence with, so the drop index lands in the same sequence.
func (s *Server) ReorderUnifiedItems(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	var req struct {
		MovingID   uuid.UUID        `json:"moving_id"`
		ToIndex    int              `json:"to_index"`
		UserID     *uuid.UUID       `json:"user_id"`
		Type       *domain.ListType `json:"type"`
		IncludeAll bool             `json:"include_all"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid type field")
		return
	}
	if err := s.items.ReorderUnified(r.Context(), tripID, req.MovingID, req.ToIndex, req.UserID, req.Type, req.IncludeAll); err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderScopeItems handles POST /lists/{id}/items/reorder-unified.
// The unified scope is addressed through one of its member lists, which is
// how detached and template scopes — having no trip — are reached.
func (s *Server) ReorderScopeItems(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "list not found")
		return
	}
	var req struct {
		MovingID   uuid.UUID `json:"moving_id"`
		ToIndex    int       `json:"to_index"`
		IncludeAll bool      `json:"include_all"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if err := s.items.ReorderUnifiedScope(r.Context(), listID, req.MovingID, req.ToIndex, req.IncludeAll); err != nil {
		serviceError(w, err, "list not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveItem handles POST /items/{id}/move.
// A vanished item or target list is a silent no-op, not an error.
func (s *Server) MoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	var req struct {
		TargetListID uuid.UUID `json:"target_list_id"`
		ToIndex      int       `json:"to_index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if err := s.items.Move(r.Context(), id, req.TargetListID, req.ToIndex); err != nil {
		serviceError(w, err, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
