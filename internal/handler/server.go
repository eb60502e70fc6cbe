// Package handler implements the HTTP layer of the packing-list API.
// All handlers are methods on Server, split into domain-specific files
// (user.go, trip.go, list.go, item.go) but sharing the same struct so they
// can access its dependencies. Routes assembles the chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/query"
	"github.com/packup/packup/internal/repo"
)

// UserServicer defines the business operations the user handlers depend on.
// Defining the interfaces here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type UserServicer interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CollapsedSections(ctx context.Context, tripID uuid.UUID) ([]string, error)
	CollapseSection(ctx context.Context, tripID uuid.UUID, sectionKey string) error
	ExpandSection(ctx context.Context, tripID uuid.UUID, sectionKey string) error
}

// ListServicer defines the business operations the list handlers depend on.
type ListServicer interface {
	Create(ctx context.Context, list domain.PackingList) (domain.PackingList, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.PackingList, error)
	List(ctx context.Context, f repo.ListFilter, sortOrder query.ListOrder) ([]domain.PackingList, error)
	Update(ctx context.Context, list domain.PackingList) (domain.PackingList, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, tripID, movingID uuid.UUID, toIndex int) error
	Progress(ctx context.Context, listID uuid.UUID) (packed, total int, err error)
	Copy(ctx context.Context, sourceID uuid.UUID, asTemplate bool, tripID *uuid.UUID) (domain.PackingList, error)
}

// ItemServicer defines the business operations the item handlers depend on.
type ItemServicer interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)
	ListByListID(ctx context.Context, listID uuid.UUID) ([]domain.Item, error)
	UnifiedItems(ctx context.Context, tripID uuid.UUID, userID *uuid.UUID, listType *domain.ListType) ([]domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, name, category string, count int) (domain.Item, error)
	Toggle(ctx context.Context, id uuid.UUID) (domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, listID, movingID uuid.UUID, toIndex int) error
	ReorderUnified(ctx context.Context, tripID, movingID uuid.UUID, toIndex int, userID *uuid.UUID, listType *domain.ListType, includeAll bool) error
	ReorderUnifiedScope(ctx context.Context, listID, movingID uuid.UUID, toIndex int, includeAll bool) error
	Move(ctx context.Context, itemID, targetListID uuid.UUID, toIndex int) error
}

// WeatherServicer refreshes a trip's cached weather snapshot.
type WeatherServicer interface {
	Refresh(ctx context.Context, tripID uuid.UUID) (domain.Trip, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	users   UserServicer
	trips   TripServicer
	lists   ListServicer
	items   ItemServicer
	weather WeatherServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, trips TripServicer, lists ListServicer, items ItemServicer, weather WeatherServicer) *Server {
	return &Server{users: users, trips: trips, lists: lists, items: items, weather: weather}
}

// Routes assembles the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.CreateUser)
		r.Get("/", s.ListUsers)
		r.Get("/{id}", s.GetUser)
		r.Put("/{id}", s.UpdateUser)
		r.Delete("/{id}", s.DeleteUser)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/{id}", s.GetTrip)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
		r.Post("/{id}/weather/refresh", s.RefreshTripWeather)
		r.Get("/{id}/items", s.ListUnifiedItems)
		r.Post("/{id}/items/reorder", s.ReorderUnifiedItems)
		r.Get("/{id}/collapsed", s.ListCollapsedSections)
		r.Put("/{id}/collapsed/{sectionKey}", s.CollapseSection)
		r.Delete("/{id}/collapsed/{sectionKey}", s.ExpandSection)
	})

	r.Route("/lists", func(r chi.Router) {
		r.Post("/", s.CreateList)
		r.Get("/", s.ListLists)
		r.Post("/reorder", s.ReorderLists)
		r.Get("/{id}", s.GetList)
		r.Put("/{id}", s.UpdateList)
		r.Delete("/{id}", s.DeleteList)
		r.Get("/{id}/progress", s.ListProgress)
		r.Post("/{id}/copy", s.CopyList)
		r.Post("/{id}/items", s.CreateItem)
		r.Get("/{id}/items", s.ListItems)
		r.Post("/{id}/items/reorder", s.ReorderItems)
		r.Post("/{id}/items/reorder-unified", s.ReorderScopeItems)
	})

	r.Route("/items", func(r chi.Router) {
		r.Get("/{id}", s.GetItem)
		r.Put("/{id}", s.UpdateItem)
		r.Delete("/{id}", s.DeleteItem)
		r.Post("/{id}/toggle", s.ToggleItem)
		r.Post("/{id}/move", s.MoveItem)
	})

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
