package adapthttp

import (
	"errors"
	"net/http"

	"inventoried/internal/app"
	"inventoried/internal/domain"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.storeError(w, "Failed to fetch users", err)
		return
	}
	respondList(w, users, len(users))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "user")
	if !ok {
		return
	}
	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.userError(w, "Failed to fetch user", err)
		return
	}
	respondData(w, http.StatusOK, "", user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	user, err := s.users.Create(r.Context(), req.toDomain())
	if err != nil {
		s.userError(w, "Failed to create user", err)
		return
	}
	respondData(w, http.StatusCreated, "User created successfully", user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "user")
	if !ok {
		return
	}
	var req updateUserRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	user, err := s.users.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.userError(w, "Failed to update user", err)
		return
	}
	respondData(w, http.StatusOK, "User updated successfully", user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "user")
	if !ok {
		return
	}
	user, err := s.users.Delete(r.Context(), id)
	if err != nil {
		s.userError(w, "Failed to delete user", err)
		return
	}
	respondData(w, http.StatusOK, "User deleted successfully", user)
}

func (s *Server) userError(w http.ResponseWriter, kind string, err error) {
	var fieldErrs domain.FieldErrors
	switch {
	case errors.Is(err, app.ErrUserNotFound):
		respondNotFound(w, "User")
	case errors.As(err, &fieldErrs):
		respondValidation(w, fieldErrs)
	default:
		s.storeError(w, kind, err)
	}
}
