package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method that
// gets called panics, which points straight at the missing stub.

type mockUserRepo struct {
	create  func(ctx context.Context, user domain.User) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
	list    func(ctx context.Context) ([]domain.User, error)
	update  func(ctx context.Context, user domain.User) (domain.User, error)
	delete  func(ctx context.Context, id uuid.UUID) error
	count   func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.update(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return m.count(ctx)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list          func(ctx context.Context) ([]domain.Trip, error)
	listPaged     func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	updateWeather func(ctx context.Context, id uuid.UUID, w domain.WeatherSnapshot) error
	delete        func(ctx context.Context, id uuid.UUID) error
	count         func(ctx context.Context) (int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) UpdateWeather(ctx context.Context, id uuid.UUID, w domain.WeatherSnapshot) error {
	return m.updateWeather(ctx, id, w)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) Count(ctx context.Context) (int64, error) {
	return m.count(ctx)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockListRepo struct {
	create           func(ctx context.Context, list domain.PackingList) (domain.PackingList, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.PackingList, error)
	list             func(ctx context.Context, f repo.ListFilter) ([]domain.PackingList, error)
	update           func(ctx context.Context, list domain.PackingList) (domain.PackingList, error)
	updateSortOrders func(ctx context.Context, lists []domain.PackingList) error
	delete           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockListRepo) Create(ctx context.Context, list domain.PackingList) (domain.PackingList, error) {
	return m.create(ctx, list)
}
func (m *mockListRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.PackingList, error) {
	return m.getByID(ctx, id)
}
func (m *mockListRepo) List(ctx context.Context, f repo.ListFilter) ([]domain.PackingList, error) {
	return m.list(ctx, f)
}
func (m *mockListRepo) Update(ctx context.Context, list domain.PackingList) (domain.PackingList, error) {
	return m.update(ctx, list)
}
func (m *mockListRepo) UpdateSortOrders(ctx context.Context, lists []domain.PackingList) error {
	return m.updateSortOrders(ctx, lists)
}
func (m *mockListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ListRepo = (*mockListRepo)(nil)

type mockItemRepo struct {
	create        func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Item, error)
	listByListID  func(ctx context.Context, listID uuid.UUID) ([]domain.Item, error)
	listByListIDs func(ctx context.Context, listIDs []uuid.UUID) ([]domain.Item, error)
	update        func(ctx context.Context, item domain.Item) (domain.Item, error)
	updateOrders  func(ctx context.Context, items []domain.Item) error
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	return m.getByID(ctx, id)
}
func (m *mockItemRepo) ListByListID(ctx context.Context, listID uuid.UUID) ([]domain.Item, error) {
	return m.listByListID(ctx, listID)
}
func (m *mockItemRepo) ListByListIDs(ctx context.Context, listIDs []uuid.UUID) ([]domain.Item, error) {
	return m.listByListIDs(ctx, listIDs)
}
func (m *mockItemRepo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.update(ctx, item)
}
func (m *mockItemRepo) UpdateOrders(ctx context.Context, items []domain.Item) error {
	return m.updateOrders(ctx, items)
}
func (m *mockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ItemRepo = (*mockItemRepo)(nil)

type mockCollapseRepo struct {
	listKeys func(ctx context.Context, tripID uuid.UUID) ([]string, error)
	add      func(ctx context.Context, tripID uuid.UUID, sectionKey string) error
	remove   func(ctx context.Context, tripID uuid.UUID, sectionKey string) error
}

func (m *mockCollapseRepo) ListKeys(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	return m.listKeys(ctx, tripID)
}
func (m *mockCollapseRepo) Add(ctx context.Context, tripID uuid.UUID, sectionKey string) error {
	return m.add(ctx, tripID, sectionKey)
}
func (m *mockCollapseRepo) Remove(ctx context.Context, tripID uuid.UUID, sectionKey string) error {
	return m.remove(ctx, tripID, sectionKey)
}

var _ repo.CollapseRepo = (*mockCollapseRepo)(nil)
