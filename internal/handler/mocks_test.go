package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/handler"
	"github.com/packup/packup/internal/query"
	"github.com/packup/packup/internal/repo"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields your test needs.

type mockUserServicer struct {
	create  func(ctx context.Context, user domain.User) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
	list    func(ctx context.Context) ([]domain.User, error)
	update  func(ctx context.Context, user domain.User) (domain.User, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserServicer) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserServicer) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}
func (m *mockUserServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockTripServicer struct {
	create            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged         func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	collapsedSections func(ctx context.Context, tripID uuid.UUID) ([]string, error)
	collapseSection   func(ctx context.Context, tripID uuid.UUID, sectionKey string) error
	expandSection     func(ctx context.Context, tripID uuid.UUID, sectionKey string) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) CollapsedSections(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	return m.collapsedSections(ctx, tripID)
}
func (m *mockTripServicer) CollapseSection(ctx context.Context, tripID uuid.UUID, key string) error {
	return m.collapseSection(ctx, tripID, key)
}
func (m *mockTripServicer) ExpandSection(ctx context.Context, tripID uuid.UUID, key string) error {
	return m.expandSection(ctx, tripID, key)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockListServicer struct {
	create   func(ctx context.Context, list domain.PackingList) (domain.PackingList, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.PackingList, error)
	list     func(ctx context.Context, f repo.ListFilter, sortOrder query.ListOrder) ([]domain.PackingList, error)
	update   func(ctx context.Context, list domain.PackingList) (domain.PackingList, error)
	delete   func(ctx context.Context, id uuid.UUID) error
	reorder  func(ctx context.Context, tripID, movingID uuid.UUID, toIndex int) error
	progress func(ctx context.Context, listID uuid.UUID) (int, int, error)
	copy     func(ctx context.Context, sourceID uuid.UUID, asTemplate bool, tripID *uuid.UUID) (domain.PackingList, error)
}

func (m *mockListServicer) Create(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	return m.create(ctx, l)
}
func (m *mockListServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.PackingList, error) {
	return m.getByID(ctx, id)
}
func (m *mockListServicer) List(ctx context.Context, f repo.ListFilter, sortOrder query.ListOrder) ([]domain.PackingList, error) {
	return m.list(ctx, f, sortOrder)
}
func (m *mockListServicer) Update(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	return m.update(ctx, l)
}
func (m *mockListServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockListServicer) Reorder(ctx context.Context, tripID, movingID uuid.UUID, toIndex int) error {
	return m.reorder(ctx, tripID, movingID, toIndex)
}
func (m *mockListServicer) Progress(ctx context.Context, listID uuid.UUID) (int, int, error) {
	return m.progress(ctx, listID)
}
func (m *mockListServicer) Copy(ctx context.Context, sourceID uuid.UUID, asTemplate bool, tripID *uuid.UUID) (domain.PackingList, error) {
	return m.copy(ctx, sourceID, asTemplate, tripID)
}

var _ handler.ListServicer = (*mockListServicer)(nil)

type mockItemServicer struct {
	create              func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Item, error)
	listByListID        func(ctx context.Context, listID uuid.UUID) ([]domain.Item, error)
	unifiedItems        func(ctx context.Context, tripID uuid.UUID, userID *uuid.UUID, listType *domain.ListType) ([]domain.Item, error)
	update              func(ctx context.Context, id uuid.UUID, name, category string, count int) (domain.Item, error)
	toggle              func(ctx context.Context, id uuid.UUID) (domain.Item, error)
	delete              func(ctx context.Context, id uuid.UUID) error
	reorder             func(ctx context.Context, listID, movingID uuid.UUID, toIndex int) error
	reorderUnified      func(ctx context.Context, tripID, movingID uuid.UUID, toIndex int, userID *uuid.UUID, listType *domain.ListType, includeAll bool) error
	reorderUnifiedScope func(ctx context.Context, listID, movingID uuid.UUID, toIndex int, includeAll bool) error
	move                func(ctx context.Context, itemID, targetListID uuid.UUID, toIndex int) error
}

func (m *mockItemServicer) Create(ctx context.Context, it domain.Item) (domain.Item, error) {
	return m.create(ctx, it)
}

func (m *mockItemServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	return m.getByID(ctx, id)
}
func (m *mockItemServicer) ListByListID(ctx context.Context, listID uuid.UUID) ([]domain.Item, error) {
	return m.listByListID(ctx, listID)
}
func (m *mockItemServicer) UnifiedItems(ctx context.Context, tripID uuid.UUID, userID *uuid.UUID, listType *domain.ListType) ([]domain.Item, error) {
	return m.unifiedItems(ctx, tripID, userID, listType)
}
func (m *mockItemServicer) Update(ctx context.Context, id uuid.UUID, name, category string, count int) (domain.Item, error) {
	return m.update(ctx, id, name, category, count)
}
func (m *mockItemServicer) Toggle(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	return m.toggle(ctx, id)
}
func (m *mockItemServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockItemServicer) Reorder(ctx context.Context, listID, movingID uuid.UUID, toIndex int) error {
	return m.reorder(ctx, listID, movingID, toIndex)
}
func (m *mockItemServicer) ReorderUnified(ctx context.Context, tripID, movingID uuid.UUID, toIndex int, userID *uuid.UUID, listType *domain.ListType, includeAll bool) error {
	return m.reorderUnified(ctx, tripID, movingID, toIndex, userID, listType, includeAll)
}

func (m *mockItemServicer) ReorderUnifiedScope(ctx context.Context, listID, movingID uuid.UUID, toIndex int, includeAll bool) error {
	return m.reorderUnifiedScope(ctx, listID, movingID, toIndex, includeAll)
}
func (m *mockItemServicer) Move(ctx context.Context, itemID, targetListID uuid.UUID, toIndex int) error {
	return m.move(ctx, itemID, targetListID, toIndex)
}

var _ handler.ItemServicer = (*mockItemServicer)(nil)

type mockWeatherServicer struct {
	refresh func(ctx context.Context, tripID uuid.UUID) (domain.Trip, error)
}

func (m *mockWeatherServicer) Refresh(ctx context.Context, tripID uuid.UUID) (domain.Trip, error) {
	return m.refresh(ctx, tripID)
}

var _ handler.WeatherServicer = (*mockWeatherServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// router wires a Server with the given mocks, nils for the rest.
// This mirrors exactly how main.go wires it in production.
func router(opts ...func(*deps)) http.Handler {
	d := &deps{}
	for _, opt := range opts {
		opt(d)
	}
	return handler.NewServer(d.users, d.trips, d.lists, d.items, d.weather).Routes()
}

type deps struct {
	users   handler.UserServicer
	trips   handler.TripServicer
	lists   handler.ListServicer
	items   handler.ItemServicer
	weather handler.WeatherServicer
}

func withUsers(m handler.UserServicer) func(*deps)      { return func(d *deps) { d.users = m } }
func withTrips(m handler.TripServicer) func(*deps)      { return func(d *deps) { d.trips = m } }
func withLists(m handler.ListServicer) func(*deps)      { return func(d *deps) { d.lists = m } }
func withItems(m handler.ItemServicer) func(*deps)      { return func(d *deps) { d.items = m } }
func withWeather(m handler.WeatherServicer) func(*deps) { return func(d *deps) { d.weather = m } }

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeBody(t *testing.T, body *bytes.Buffer, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(target))
}
