package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventoried/internal/domain"
)

func TestItemCRUD(t *testing.T) {
	db := New()
	ctx := context.Background()

	item := domain.Item{Name: "Laptop", Description: "A fine laptop", Price: 1200, Category: "Electronics", Stock: 3}
	if err := db.Create(ctx, &item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !domain.IsValidID(item.ID) {
		t.Fatalf("assigned id %q is not 24 hex digits", item.ID)
	}

	got, err := db.GetByID(ctx, item.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v, %v", got, err)
	}
	if got.Name != "Laptop" {
		t.Errorf("Name = %q", got.Name)
	}

	name := "Desktop"
	updated, err := db.Update(ctx, item.ID, domain.ItemPatch{Name: &name}, time.Now())
	if err != nil || updated == nil {
		t.Fatalf("Update: %v, %v", updated, err)
	}
	if updated.Name != "Desktop" || updated.Description != "A fine laptop" {
		t.Errorf("patch applied wrong: %+v", updated)
	}

	deleted, err := db.Delete(ctx, item.ID)
	if err != nil || deleted == nil {
		t.Fatalf("Delete: %v, %v", deleted, err)
	}
	if again, _ := db.GetByID(ctx, item.ID); again != nil {
		t.Error("item still present after delete")
	}
}

func TestMissingLookupsReturnNilNil(t *testing.T) {
	db := New()
	ctx := context.Background()
	id := "507f1f77bcf86cd799439011"

	if got, err := db.GetByID(ctx, id); got != nil || err != nil {
		t.Errorf("GetByID = %v, %v, want nil, nil", got, err)
	}
	if got, err := db.Update(ctx, id, domain.ItemPatch{}, time.Now()); got != nil || err != nil {
		t.Errorf("Update = %v, %v, want nil, nil", got, err)
	}
	if got, err := db.Delete(ctx, id); got != nil || err != nil {
		t.Errorf("Delete = %v, %v, want nil, nil", got, err)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := New()
	ctx := context.Background()

	older := domain.Item{Name: "First", Description: "older item", Price: 1, Category: "Other", Stock: 1, CreatedAt: time.Now().Add(-time.Hour)}
	newer := domain.Item{Name: "Second", Description: "newer item", Price: 1, Category: "Other", Stock: 1, CreatedAt: time.Now()}
	_ = db.Create(ctx, &older)
	_ = db.Create(ctx, &newer)

	items, err := db.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Second" {
		t.Fatalf("order wrong: %+v", items)
	}
}

func TestUserUniqueness(t *testing.T) {
	db := New()
	repo := db.NewUserRepo()
	ctx := context.Background()

	alice := domain.User{Username: "alice", Email: "alice@example.com", Role: "user"}
	if err := repo.Create(ctx, &alice); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := domain.User{Username: "Alice", Email: "other@example.com", Role: "user"}
	err := repo.Create(ctx, &dup)
	var errs domain.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected FieldErrors for duplicate username, got %v", err)
	}
	if errs[0].Field != "username" {
		t.Errorf("field = %q, want username", errs[0].Field)
	}

	bob := domain.User{Username: "bob", Email: "bob@example.com", Role: "user"}
	if err := repo.Create(ctx, &bob); err != nil {
		t.Fatalf("Create bob: %v", err)
	}

	// Updating bob onto alice's email must also be rejected.
	email := "alice@example.com"
	if _, err := repo.Update(ctx, bob.ID, domain.UserPatch{Email: &email}, time.Now()); !errors.As(err, &errs) {
		t.Fatalf("expected FieldErrors for duplicate email, got %v", err)
	}

	// A user keeps its own username on update.
	name := "bob"
	if _, err := repo.Update(ctx, bob.ID, domain.UserPatch{Username: &name}, time.Now()); err != nil {
		t.Fatalf("self-update rejected: %v", err)
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	live := &domain.Session{Token: "live", ExpiresAt: time.Now().Add(time.Hour)}
	dead := &domain.Session{Token: "dead", ExpiresAt: time.Now().Add(-time.Hour)}
	_ = store.Create(ctx, live)
	_ = store.Create(ctx, dead)

	if got, _ := store.GetByToken(ctx, "live"); got == nil {
		t.Fatal("live session missing")
	}
	if got, _ := store.GetByToken(ctx, "nope"); got != nil {
		t.Fatal("unknown token returned a session")
	}

	if err := store.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if got, _ := store.GetByToken(ctx, "dead"); got != nil {
		t.Error("expired session survived DeleteExpired")
	}
	if got, _ := store.GetByToken(ctx, "live"); got == nil {
		t.Error("live session removed by DeleteExpired")
	}
}
