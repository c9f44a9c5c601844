package adapthttp

import (
	"errors"
	"net/http"

	"inventoried/internal/app"
	"inventoried/internal/domain"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.List(r.Context())
	if err != nil {
		s.storeError(w, "Failed to fetch items", err)
		return
	}
	respondList(w, items, len(items))
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "item")
	if !ok {
		return
	}
	item, err := s.items.Get(r.Context(), id)
	if err != nil {
		s.itemError(w, "Failed to fetch item", err)
		return
	}
	respondData(w, http.StatusOK, "", item)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	item, err := s.items.Create(r.Context(), req.toDomain())
	if err != nil {
		s.itemError(w, "Failed to create item", err)
		return
	}
	respondData(w, http.StatusCreated, "Item created successfully", item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "item")
	if !ok {
		return
	}
	var req updateItemRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	item, err := s.items.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.itemError(w, "Failed to update item", err)
		return
	}
	respondData(w, http.StatusOK, "Item updated successfully", item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "item")
	if !ok {
		return
	}
	item, err := s.items.Delete(r.Context(), id)
	if err != nil {
		s.itemError(w, "Failed to delete item", err)
		return
	}
	respondData(w, http.StatusOK, "Item deleted successfully", item)
}

// itemError maps a service failure onto the error taxonomy: 404 for a
// missing record, 400 for schema-level rejection, 500 otherwise.
func (s *Server) itemError(w http.ResponseWriter, kind string, err error) {
	var fieldErrs domain.FieldErrors
	switch {
	case errors.Is(err, app.ErrItemNotFound):
		respondNotFound(w, "Item")
	case errors.As(err, &fieldErrs):
		respondValidation(w, fieldErrs)
	default:
		s.storeError(w, kind, err)
	}
}
