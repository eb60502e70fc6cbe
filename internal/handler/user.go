package handler

import (
	"net/http"

	"github.com/packup/packup/internal/domain"
)

// userRequest is the request body for creating or updating a user.
type userRequest struct {
	Name            string           `json:"name"`
	ColorTag        string           `json:"color_tag"`
	DefaultLocation *domain.Location `json:"default_location"`
	// ProfileImage is base64 in JSON, the encoding/json default for []byte.
	ProfileImage []byte `json:"profile_image"`
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	created, err := s.users.Create(r.Context(), domain.User{
		Name:            req.Name,
		ColorTag:        req.ColorTag,
		DefaultLocation: req.DefaultLocation,
		ProfileImage:    req.ProfileImage,
	})
	if err != nil {
		serviceError(w, err, "user not found")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		serviceError(w, err, "")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"data": users})
}

// GetUser handles GET /users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// UpdateUser handles PUT /users/{id}.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	updated, err := s.users.Update(r.Context(), domain.User{
		ID:              id,
		Name:            req.Name,
		ColorTag:        req.ColorTag,
		DefaultLocation: req.DefaultLocation,
		ProfileImage:    req.ProfileImage,
	})
	if err != nil {
		serviceError(w, err, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/{id}.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
