package api

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/filter"
	"github.com/erazemk/roomboard/internal/imaging"
	"github.com/erazemk/roomboard/internal/model"
	"github.com/erazemk/roomboard/internal/store"
)

// DefaultMaxUploadBytes caps photo uploads when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// ItemsHandler handles item CRUD and the filtered inventory listing.
type ItemsHandler struct {
	DB             *sql.DB
	Session        *filter.Session
	Hub            *events.Hub
	MaxUploadBytes int64
}

type itemRequest struct {
	Title  string     `json:"title"`
	Date   *time.Time `json:"date"`
	Notes  string     `json:"notes"`
	Value  string     `json:"value"`
	RoomID *int64     `json:"room_id"`
	TagIDs []int64    `json:"tag_ids"`
}

func (req itemRequest) params() store.ItemParams {
	return store.ItemParams{
		Title:  req.Title,
		Date:   req.Date,
		Notes:  req.Notes,
		Value:  req.Value,
		RoomID: req.RoomID,
		TagIDs: req.TagIDs,
	}
}

type inventoryResponse struct {
	Items         []model.Item `json:"items"`
	SortMode      string       `json:"sort_mode"`
	ValueSummary  string       `json:"value_summary"`
	SearchSummary string       `json:"search_summary"`
}

// List handles GET /api/items. The optional q parameter is the search text;
// filters and sort order come from the session.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	state := h.Session.State()

	items, err := store.ListItems(r.Context(), h.DB, string(state.SortMode()))
	if err != nil {
		serverError(w, r, "failed to list items", err)
		return
	}

	jsonResponse(w, http.StatusOK, inventoryResponse{
		Items:         filter.Apply(items, state, r.URL.Query().Get("q")),
		SortMode:      string(state.SortMode()),
		ValueSummary:  filter.DescribeValueFilters(state),
		SearchSummary: filter.DescribeSearchProperties(state),
	})
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.params())
	if err != nil {
		if writeReferenceError(w, err) {
			return
		}
		serverError(w, r, "failed to create item", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindItem, Action: events.ActionCreated, ID: item.ID})
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		serverError(w, r, "failed to get item", err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, req.params()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		if writeReferenceError(w, err) {
			return
		}
		serverError(w, r, "failed to update item", err)
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		serverError(w, r, "failed to get item", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindItem, Action: events.ActionUpdated, ID: id})
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		serverError(w, r, "failed to delete item", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindItem, Action: events.ActionDeleted, ID: id})
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image. The photo is sent as the
// multipart field "image"; "orientation" optionally carries its correction.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	orientation := 0
	if raw := r.FormValue("orientation"); raw != "" {
		o, err := strconv.Atoi(raw)
		if err != nil || !imaging.Orientation(o).Valid() {
			jsonError(w, http.StatusBadRequest, "invalid orientation")
			return
		}
		orientation = o
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file, limit, imaging.Orientation(orientation))
	if err != nil {
		if errors.Is(err, imaging.ErrTooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, photo.Data, photo.MIME, int(photo.Orientation)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		serverError(w, r, "failed to save image", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindItem, Action: events.ActionUpdated, ID: id})
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image. The stored orientation is
// applied before serving; if that fails the raw photo is served.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, orientation, err := store.GetItemImage(r.Context(), h.DB, id)
	if err != nil {
		serverError(w, r, "failed to get image", err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	oriented, err := imaging.Orient(data, orientation)
	if err != nil {
		slog.Warn("serving unoriented image", "item", id, "orientation", orientation, "error", err)
		oriented = data
	} else if !bytes.Equal(oriented, data) {
		mime = imaging.StoredMIME
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(oriented)
}

// writeReferenceError answers 400 for writes naming a missing room or tag.
func writeReferenceError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, store.ErrUnknownRoom):
		jsonError(w, http.StatusBadRequest, "unknown room")
	case errors.Is(err, store.ErrUnknownTag):
		jsonError(w, http.StatusBadRequest, "unknown tag")
	default:
		return false
	}
	return true
}
