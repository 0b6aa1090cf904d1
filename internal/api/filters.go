package api

import (
	"net/http"

	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/filter"
)

// FiltersHandler exposes the live filter selection.
type FiltersHandler struct {
	Session *filter.Session
	Hub     *events.Hub
}

type filtersResponse struct {
	State         filter.State         `json:"state"`
	ValueSummary  string               `json:"value_summary"`
	SearchSummary string               `json:"search_summary"`
	Menu          []filter.MenuSection `json:"menu"`
}

type sortRequest struct {
	SortMode string `json:"sort_mode"`
}

func (h *FiltersHandler) respond(w http.ResponseWriter, state filter.State, changed bool) {
	if changed {
		h.Hub.Publish(events.Event{Kind: events.KindFilters, Action: events.ActionUpdated})
	}
	jsonResponse(w, http.StatusOK, filtersResponse{
		State:         state,
		ValueSummary:  filter.DescribeValueFilters(state),
		SearchSummary: filter.DescribeSearchProperties(state),
		Menu:          filter.Menu(state),
	})
}

// Get handles GET /api/filters.
func (h *FiltersHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.Session.State(), false)
}

// ToggleSearch handles POST /api/filters/search/{property}. Toggling off the
// only selected property leaves the selection unchanged.
func (h *FiltersHandler) ToggleSearch(w http.ResponseWriter, r *http.Request) {
	p, ok := filter.ParseSearchProperty(r.PathValue("property"))
	if !ok {
		jsonError(w, http.StatusBadRequest, "unknown search property")
		return
	}
	st, changed := h.Session.ToggleSearchProperty(r.Context(), p)
	h.respond(w, st, changed)
}

// ToggleValue handles POST /api/filters/value/{filter}.
func (h *FiltersHandler) ToggleValue(w http.ResponseWriter, r *http.Request) {
	f, ok := filter.ParseValueFilter(r.PathValue("filter"))
	if !ok {
		jsonError(w, http.StatusBadRequest, "unknown value filter")
		return
	}
	h.respond(w, h.Session.ToggleValueFilter(r.Context(), f), true)
}

// SetSort handles PUT /api/filters/sort.
func (h *FiltersHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, ok := filter.ParseSortMode(req.SortMode)
	if !ok {
		jsonError(w, http.StatusBadRequest, "unknown sort mode")
		return
	}
	h.respond(w, h.Session.SetSortMode(r.Context(), m), true)
}

// Reset handles POST /api/filters/reset.
func (h *FiltersHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.Session.RestoreDefaults(r.Context()), true)
}
