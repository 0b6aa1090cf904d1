package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/store"
)

// RoomsHandler handles room endpoints.
type RoomsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

type roomRequest struct {
	Title string `json:"title"`
}

type reorderRequest struct {
	IDs []int64 `json:"ids"`
}

// List handles GET /api/rooms.
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := store.ListRooms(r.Context(), h.DB)
	if err != nil {
		serverError(w, r, "failed to list rooms", err)
		return
	}
	jsonResponse(w, http.StatusOK, rooms)
}

// Create handles POST /api/rooms. An empty title is allowed; such rooms are
// removed by compaction.
func (h *RoomsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := store.CreateRoom(r.Context(), h.DB, strings.TrimSpace(req.Title))
	if err != nil {
		serverError(w, r, "failed to create room", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindRoom, Action: events.ActionCreated, ID: room.ID})
	jsonResponse(w, http.StatusCreated, room)
}

// Update handles PUT /api/rooms/{id}.
func (h *RoomsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateRoom(r.Context(), h.DB, id, strings.TrimSpace(req.Title)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "room not found")
			return
		}
		serverError(w, r, "failed to update room", err)
		return
	}

	room, err := store.GetRoom(r.Context(), h.DB, id)
	if err != nil {
		serverError(w, r, "failed to get room", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindRoom, Action: events.ActionUpdated, ID: id})
	jsonResponse(w, http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/{id}. When the last room is deleted the
// response carries the placeholder room that replaced it.
func (h *RoomsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	placeholder, err := store.DeleteRoom(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "room not found")
			return
		}
		serverError(w, r, "failed to delete room", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindRoom, Action: events.ActionDeleted, ID: id})
	if placeholder != nil {
		h.Hub.Publish(events.Event{Kind: events.KindRoom, Action: events.ActionCreated, ID: placeholder.ID})
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"message":     "room deleted",
		"placeholder": placeholder,
	})
}

// Reorder handles PUT /api/rooms/order.
func (h *RoomsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.ReorderRooms(r.Context(), h.DB, req.IDs); err != nil {
		if errors.Is(err, store.ErrInvalidOrder) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		serverError(w, r, "failed to reorder rooms", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindRoom, Action: events.ActionUpdated})
	h.List(w, r)
}

// Compact handles POST /api/rooms/compact.
func (h *RoomsHandler) Compact(w http.ResponseWriter, r *http.Request) {
	removed, err := store.CompactRooms(r.Context(), h.DB)
	if err != nil {
		serverError(w, r, "failed to compact rooms", err)
		return
	}

	rooms, err := store.ListRooms(r.Context(), h.DB)
	if err != nil {
		serverError(w, r, "failed to list rooms", err)
		return
	}

	if removed > 0 {
		h.Hub.Publish(events.Event{Kind: events.KindRoom, Action: events.ActionDeleted})
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"removed": removed,
		"rooms":   rooms,
	})
}
