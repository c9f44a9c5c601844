// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"time"

	"inventoried/internal/domain"
)

// ErrItemNotFound indicates that no item exists with the requested id.
var ErrItemNotFound = errors.New("item not found")

// ItemService encapsulates the inventory CRUD use cases.
type ItemService struct {
	repo domain.ItemRepository
}

// NewItemService creates an ItemService backed by the given repository.
func NewItemService(repo domain.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// List returns all items, newest first.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

// Get returns the item with the given id.
func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Create validates and stores a new item. The store assigns the id;
// both timestamps are set to the time of the write.
func (s *ItemService) Create(ctx context.Context, item domain.Item) (*domain.Item, error) {
	now := time.Now().UTC()
	item.ID = ""
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update. Only supplied fields change, but
// UpdatedAt is always refreshed. Supplied fields are re-checked against
// the schema rules before the write.
func (s *ItemService) Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repo.Update(ctx, id, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Delete removes the item and returns the removed record.
func (s *ItemService) Delete(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}
