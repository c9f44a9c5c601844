package adapthttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"inventoried/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// listEnvelope wraps collection responses.
type listEnvelope struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

// dataEnvelope wraps single-record responses.
type dataEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// errorEnvelope wraps not-found and server failures.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// validationEnvelope is the 400 payload for field-rule violations,
// listing every offending field.
type validationEnvelope struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details"`
}

func respondList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, listEnvelope{Success: true, Count: count, Data: data})
}

func respondData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, dataEnvelope{Success: true, Message: message, Data: data})
}

func respondNotFound(w http.ResponseWriter, kind string) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{Success: false, Error: kind + " not found"})
}

func respondValidation(w http.ResponseWriter, details domain.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, validationEnvelope{Error: "Validation failed", Details: details})
}
