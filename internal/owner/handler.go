package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ownerapi/internal/owner/apperr"
	"ownerapi/internal/owner/model"
	"ownerapi/internal/owner/schema"
	"ownerapi/internal/owner/service"
	"ownerapi/pkg/logger"
)

type OwnerHandler struct {
	Service *service.OwnerService
}

func NewOwnerHandler(service *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{Service: service}
}

func (h *OwnerHandler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	payload, verr := schema.ValidateCreate(raw)
	if verr != nil {
		writeError(w, http.StatusBadRequest, verr.Fields)
		return
	}

	id, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CreateOwnerResponse{ID: id})
}

func (h *OwnerHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	owner, err := h.Service.Fetch(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, owner)
}

func (h *OwnerHandler) PatchOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	payload, verr := schema.ValidatePatch(raw)
	if verr != nil {
		writeError(w, http.StatusBadRequest, verr.Fields)
		return
	}

	owner, err := h.Service.Patch(r.Context(), id, payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, owner)
}

func (h *OwnerHandler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

func ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, true
}

// writeServiceError maps a domain error to its HTTP status. Anything
// uncategorized becomes a plain 500; store error text never leaks.
func writeServiceError(w http.ResponseWriter, err error) {
	var conflict *apperr.ConflictError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, apperr.ErrNotFound.Error())
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Error())
	default:
		logger.Sugar.Errorf("Unhandled service error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type errorBody struct {
	Status      string `json:"status"`
	Description any    `json:"description"`
}

func writeError(w http.ResponseWriter, status int, description any) {
	writeJSON(w, status, errorBody{Status: "error", Description: description})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
