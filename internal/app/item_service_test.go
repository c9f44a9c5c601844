package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventoried/internal/domain"
)

// mockItemRepo lets each test supply only the calls it expects.
type mockItemRepo struct {
	list    func(ctx context.Context) ([]domain.Item, error)
	getByID func(ctx context.Context, id string) (*domain.Item, error)
	create  func(ctx context.Context, item *domain.Item) error
	update  func(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error)
	delete  func(ctx context.Context, id string) (*domain.Item, error)
}

func (m *mockItemRepo) List(ctx context.Context) ([]domain.Item, error) { return m.list(ctx) }
func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return m.getByID(ctx, id)
}
func (m *mockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	return m.create(ctx, item)
}
func (m *mockItemRepo) Update(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	return m.update(ctx, id, patch, updatedAt)
}
func (m *mockItemRepo) Delete(ctx context.Context, id string) (*domain.Item, error) {
	return m.delete(ctx, id)
}

func validItem() domain.Item {
	return domain.Item{
		Name:        "Laptop",
		Description: "A fine laptop",
		Price:       1200,
		Category:    "Electronics",
		Stock:       3,
	}
}

func TestItemServiceCreate(t *testing.T) {
	var stored *domain.Item
	repo := &mockItemRepo{
		create: func(ctx context.Context, item *domain.Item) error {
			item.ID = "507f1f77bcf86cd799439011"
			stored = item
			return nil
		},
	}
	svc := NewItemService(repo)

	before := time.Now().UTC()
	in := validItem()
	in.ID = "client-supplied" // must be ignored
	got, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stored == nil {
		t.Fatal("repo.Create was not called")
	}
	if got.ID != "507f1f77bcf86cd799439011" {
		t.Errorf("ID = %q, want store-assigned id", got.ID)
	}
	if got.CreatedAt.Before(before) || !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("timestamps not set at write time: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestItemServiceCreateInvalid(t *testing.T) {
	repo := &mockItemRepo{
		create: func(ctx context.Context, item *domain.Item) error {
			t.Fatal("repo.Create called for invalid item")
			return nil
		},
	}
	svc := NewItemService(repo)

	in := validItem()
	in.Category = "Gadgets"
	_, err := svc.Create(context.Background(), in)
	var errs domain.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
}

func TestItemServiceGetMissing(t *testing.T) {
	repo := &mockItemRepo{
		getByID: func(ctx context.Context, id string) (*domain.Item, error) { return nil, nil },
	}
	svc := NewItemService(repo)

	_, err := svc.Get(context.Background(), "507f1f77bcf86cd799439011")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("got %v, want ErrItemNotFound", err)
	}
}

func TestItemServiceUpdate(t *testing.T) {
	name := "Desktop"
	var gotPatch domain.ItemPatch
	var gotAt time.Time
	repo := &mockItemRepo{
		update: func(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
			gotPatch, gotAt = patch, updatedAt
			it := validItem()
			it.ID = id
			it.Name = *patch.Name
			it.UpdatedAt = updatedAt
			return &it, nil
		},
	}
	svc := NewItemService(repo)

	before := time.Now().UTC()
	got, err := svc.Update(context.Background(), "507f1f77bcf86cd799439011", domain.ItemPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotPatch.Name == nil || *gotPatch.Name != "Desktop" || gotPatch.Price != nil {
		t.Errorf("patch passed through wrong: %+v", gotPatch)
	}
	if gotAt.Before(before) {
		t.Errorf("updatedAt %v predates the call", gotAt)
	}
	if got.Name != "Desktop" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestItemServiceUpdateInvalidPatch(t *testing.T) {
	price := -1.0
	repo := &mockItemRepo{
		update: func(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
			t.Fatal("repo.Update called for invalid patch")
			return nil, nil
		},
	}
	svc := NewItemService(repo)

	_, err := svc.Update(context.Background(), "507f1f77bcf86cd799439011", domain.ItemPatch{Price: &price})
	var errs domain.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
}

func TestItemServiceUpdateMissing(t *testing.T) {
	repo := &mockItemRepo{
		update: func(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
			return nil, nil
		},
	}
	svc := NewItemService(repo)

	_, err := svc.Update(context.Background(), "507f1f77bcf86cd799439011", domain.ItemPatch{})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("got %v, want ErrItemNotFound", err)
	}
}

func TestItemServiceDeleteMissing(t *testing.T) {
	repo := &mockItemRepo{
		delete: func(ctx context.Context, id string) (*domain.Item, error) { return nil, nil },
	}
	svc := NewItemService(repo)

	_, err := svc.Delete(context.Background(), "507f1f77bcf86cd799439011")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("got %v, want ErrItemNotFound", err)
	}
}
