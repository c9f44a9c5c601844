// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Categories is the fixed set of item categories. Both the request
// validators and the schema-level checks enforce membership.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports",
	"Toys",
	"Food",
	"Other",
}

// ValidCategory reports whether c is one of the allowed categories.
// Matching is exact; no case folding.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Item represents a single inventory record.
type Item struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the full record against the schema rules. It reports
// every violation, not just the first.
func (i Item) Validate() error {
	var errs FieldErrors
	if n := len(strings.TrimSpace(i.Name)); n < 2 || n > 100 {
		errs = errs.Add("name", "Name must be between 2 and 100 characters")
	}
	if n := len(strings.TrimSpace(i.Description)); n < 5 || n > 500 {
		errs = errs.Add("description", "Description must be between 5 and 500 characters")
	}
	if i.Price < 0 {
		errs = errs.Add("price", "Price must be a positive number")
	}
	if !ValidCategory(i.Category) {
		errs = errs.Add("category", fmt.Sprintf("Category must be one of: %s", strings.Join(Categories, ", ")))
	}
	if i.Stock < 0 {
		errs = errs.Add("stock", "Stock must be a non-negative integer")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ItemPatch carries the fields supplied to a partial update. Nil fields
// are left untouched in the store.
type ItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
}

// Validate checks only the supplied fields against the schema rules.
func (p ItemPatch) Validate() error {
	var errs FieldErrors
	if p.Name != nil {
		if n := len(strings.TrimSpace(*p.Name)); n < 2 || n > 100 {
			errs = errs.Add("name", "Name must be between 2 and 100 characters")
		}
	}
	if p.Description != nil {
		if n := len(strings.TrimSpace(*p.Description)); n < 5 || n > 500 {
			errs = errs.Add("description", "Description must be between 5 and 500 characters")
		}
	}
	if p.Price != nil && *p.Price < 0 {
		errs = errs.Add("price", "Price must be a positive number")
	}
	if p.Category != nil && !ValidCategory(*p.Category) {
		errs = errs.Add("category", fmt.Sprintf("Category must be one of: %s", strings.Join(Categories, ", ")))
	}
	if p.Stock != nil && *p.Stock < 0 {
		errs = errs.Add("stock", "Stock must be a non-negative integer")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ItemRepository is the port for item persistence. Lookups return
// (nil, nil) when no record exists; callers decide what missing means.
type ItemRepository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, id string, patch ItemPatch, updatedAt time.Time) (*Item, error)
	Delete(ctx context.Context, id string) (*Item, error)
}
