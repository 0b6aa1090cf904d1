package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/model"
	"github.com/erazemk/roomboard/internal/store"
)

// TagsHandler handles tag endpoints.
type TagsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

type tagRequest struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// normalize fills defaults and validates the color.
func (req tagRequest) normalize() (text, color string, err error) {
	text = strings.TrimSpace(req.Text)
	if text == "" {
		text = model.DefaultTagText
	}
	if req.Color == "" {
		return text, model.DefaultTagColor, nil
	}
	color, err = model.NormalizeColor(req.Color)
	return text, color, err
}

// List handles GET /api/tags.
func (h *TagsHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := store.ListTags(r.Context(), h.DB)
	if err != nil {
		serverError(w, r, "failed to list tags", err)
		return
	}
	jsonResponse(w, http.StatusOK, tags)
}

// Create handles POST /api/tags.
func (h *TagsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, color, err := req.normalize()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := store.CreateTag(r.Context(), h.DB, text, color)
	if err != nil {
		serverError(w, r, "failed to create tag", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindTag, Action: events.ActionCreated, ID: tag.ID})
	jsonResponse(w, http.StatusCreated, tag)
}

// Update handles PUT /api/tags/{id}.
func (h *TagsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, color, err := req.normalize()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdateTag(r.Context(), h.DB, id, text, color); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "tag not found")
			return
		}
		serverError(w, r, "failed to update tag", err)
		return
	}

	tag, err := store.GetTag(r.Context(), h.DB, id)
	if err != nil {
		serverError(w, r, "failed to get tag", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindTag, Action: events.ActionUpdated, ID: id})
	jsonResponse(w, http.StatusOK, tag)
}

// Delete handles DELETE /api/tags/{id}.
func (h *TagsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := store.DeleteTag(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "tag not found")
			return
		}
		serverError(w, r, "failed to delete tag", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindTag, Action: events.ActionDeleted, ID: id})
	jsonResponse(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}

// InstallDefaults handles POST /api/tags/defaults, replacing all tags with
// the starter set.
func (h *TagsHandler) InstallDefaults(w http.ResponseWriter, r *http.Request) {
	tags, err := store.InstallDefaultTags(r.Context(), h.DB)
	if err != nil {
		serverError(w, r, "failed to install default tags", err)
		return
	}

	h.Hub.Publish(events.Event{Kind: events.KindTag, Action: events.ActionUpdated})
	jsonResponse(w, http.StatusOK, tags)
}
