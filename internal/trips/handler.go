package trips

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-service/pkg/jwt"
)

// Handler exposes trip HTTP endpoints.
type Handler struct{ svc *Service }

// NewHandler wires a handler to the trip service.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Routes returns a chi.Router with all trip routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth) // all trip endpoints need auth

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetDetails)
	r.Get("/{id}/status", h.GetStatus)
	r.Patch("/{id}/status", h.UpdateStatus)

	return r
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	tripID, message, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"trip_id": tripID,
		"message": message,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")
	status, err := h.svc.GetStatus(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"trip_id": tripID,
		"status":  status,
	})
}

func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	message, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// writeError maps service sentinels to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflictingAcceptance):
		status = http.StatusConflict
	case errors.Is(err, ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
