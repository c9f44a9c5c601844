package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestItemValidate(t *testing.T) {
	valid := Item{
		Name:        "iPhone 13",
		Description: "Latest Apple smartphone",
		Price:       999.99,
		Category:    "Electronics",
		Stock:       50,
	}

	tests := []struct {
		name   string
		mutate func(*Item)
		fields []string
	}{
		{"valid", func(i *Item) {}, nil},
		{"zero price and stock allowed", func(i *Item) { i.Price = 0; i.Stock = 0 }, nil},
		{"name too short", func(i *Item) { i.Name = "a" }, []string{"name"}},
		{"name too long", func(i *Item) { i.Name = strings.Repeat("x", 101) }, []string{"name"}},
		{"description too short", func(i *Item) { i.Description = "abc" }, []string{"description"}},
		{"negative price", func(i *Item) { i.Price = -1 }, []string{"price"}},
		{"unknown category", func(i *Item) { i.Category = "Gadgets" }, []string{"category"}},
		{"negative stock", func(i *Item) { i.Stock = -5 }, []string{"stock"}},
		{
			"all violations reported",
			func(i *Item) { i.Name = ""; i.Description = ""; i.Price = -1; i.Category = ""; i.Stock = -1 },
			[]string{"name", "description", "price", "category", "stock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			err := item.Validate()
			assertFieldErrors(t, err, tt.fields)
		})
	}
}

func TestItemPatchValidate(t *testing.T) {
	name := "TV"
	badName := "x"
	price := -3.0

	if err := (ItemPatch{}).Validate(); err != nil {
		t.Fatalf("empty patch: unexpected error %v", err)
	}
	if err := (ItemPatch{Name: &name}).Validate(); err != nil {
		t.Fatalf("valid patch: unexpected error %v", err)
	}
	assertFieldErrors(t, ItemPatch{Name: &badName, Price: &price}.Validate(), []string{"name", "price"})
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false, want true", c)
		}
	}
	// Matching is exact.
	if ValidCategory("electronics") {
		t.Error("ValidCategory should not case-fold")
	}
	if ValidCategory("") {
		t.Error("ValidCategory accepted empty string")
	}
}

// assertFieldErrors checks that err carries exactly the expected fields,
// in order. A nil fields slice asserts success.
func assertFieldErrors(t *testing.T, err error, fields []string) {
	t.Helper()
	if fields == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	var errs FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if len(errs) != len(fields) {
		t.Fatalf("got %d violations %v, want %d", len(errs), errs.Messages(), len(fields))
	}
	for i, f := range fields {
		if errs[i].Field != f {
			t.Errorf("violation %d: field %q, want %q", i, errs[i].Field, f)
		}
		if errs[i].Message == "" {
			t.Errorf("violation %d (%s): empty message", i, f)
		}
	}
}
