// Package service contains the business logic for the packing-list API.
// Services validate inputs, enforce business rules, walk the ownership graph
// for cascading deletes, and orchestrate repo calls. No SQL lives here —
// services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/repo"
)

// UserService implements business logic for User operations.
// It holds the list and item repos as well because deleting a user must walk
// the user's lists and their items explicitly.
type UserService struct {
	users   repo.UserRepo
	lists   repo.ListRepo
	items   repo.ItemRepo
	ent     Entitlements
	maxFree int64
}

// NewUserService constructs a UserService backed by the provided repos.
// maxFree is the number of users the free tier allows; zero or negative
// disables the cap.
func NewUserService(users repo.UserRepo, lists repo.ListRepo, items repo.ItemRepo, ent Entitlements, maxFree int64) *UserService {
	return &UserService{users: users, lists: lists, items: items, ent: ent, maxFree: maxFree}
}

// Create validates and persists a new user.
// Returns domain.ErrValidation for an empty name, domain.ErrLimitReached when
// the free-tier cap is hit without the entitlement.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if strings.TrimSpace(user.Name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := s.checkCap(ctx); err != nil {
		return domain.User{}, err
	}
	result, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	result, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all users ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// Update validates and persists changes to an existing user.
func (s *UserService) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if strings.TrimSpace(user.Name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a user and everything it owns: each of the user's packing
// lists is deleted through the same walk a direct list delete uses, so no
// orphan items can survive regardless of the storage engine's own cascades.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	owned, err := s.lists.List(ctx, repo.ListFilter{UserID: &id})
	if err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	for _, l := range owned {
		if err := cascadeDeleteList(ctx, s.lists, s.items, l.ID); err != nil {
			return fmt.Errorf("service.UserService.Delete: %w", err)
		}
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

// checkCap enforces the free-tier user cap.
func (s *UserService) checkCap(ctx context.Context) error {
	if s.maxFree <= 0 || s.ent == nil || s.ent.Unlocked(ctx) {
		return nil
	}
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("service.UserService.checkCap: %w", err)
	}
	if n >= s.maxFree {
		return fmt.Errorf("%w: free tier allows %d users", domain.ErrLimitReached, s.maxFree)
	}
	return nil
}

// cascadeDeleteList deletes every item of a list, then the list itself.
// Shared by the user, trip, and list delete paths so the ownership graph is
// always walked the same way.
func cascadeDeleteList(ctx context.Context, lists repo.ListRepo, items repo.ItemRepo, listID uuid.UUID) error {
	owned, err := items.ListByListID(ctx, listID)
	if err != nil {
		return err
	}
	for _, it := range owned {
		if err := items.Delete(ctx, it.ID); err != nil {
			return err
		}
	}
	return lists.Delete(ctx, listID)
}
