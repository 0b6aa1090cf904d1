package api

import (
	"net/http"

	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/prefs"
)

// SettingsHandler reads and writes user preferences.
type SettingsHandler struct {
	Prefs prefs.Store
	Hub   *events.Hub
}

type settingsResponse struct {
	Appearance         prefs.Appearance `json:"appearance"`
	PreserveFilters    bool             `json:"preserve_filters"`
	FinishedOnboarding bool             `json:"finished_onboarding"`
}

type settingsRequest struct {
	Appearance         *string `json:"appearance"`
	PreserveFilters    *bool   `json:"preserve_filters"`
	FinishedOnboarding *bool   `json:"finished_onboarding"`
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appearance, err := prefs.SelectedAppearance(ctx, h.Prefs)
	if err != nil {
		serverError(w, r, "failed to read settings", err)
		return
	}
	preserve, err := h.Prefs.Bool(ctx, prefs.KeyPreserveFilters)
	if err != nil {
		serverError(w, r, "failed to read settings", err)
		return
	}
	onboarded, err := h.Prefs.Bool(ctx, prefs.KeyFinishedOnboarding)
	if err != nil {
		serverError(w, r, "failed to read settings", err)
		return
	}

	jsonResponse(w, http.StatusOK, settingsResponse{
		Appearance:         appearance,
		PreserveFilters:    preserve,
		FinishedOnboarding: onboarded,
	})
}

// Update handles PUT /api/settings. Omitted fields are left unchanged.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if req.Appearance != nil {
		a, ok := prefs.ParseAppearance(*req.Appearance)
		if !ok {
			jsonError(w, http.StatusBadRequest, "unknown appearance")
			return
		}
		if err := h.Prefs.SetString(ctx, prefs.KeySelectedAppearance, string(a)); err != nil {
			serverError(w, r, "failed to save settings", err)
			return
		}
	}
	if req.PreserveFilters != nil {
		if err := h.Prefs.SetBool(ctx, prefs.KeyPreserveFilters, *req.PreserveFilters); err != nil {
			serverError(w, r, "failed to save settings", err)
			return
		}
	}
	if req.FinishedOnboarding != nil {
		if err := h.Prefs.SetBool(ctx, prefs.KeyFinishedOnboarding, *req.FinishedOnboarding); err != nil {
			serverError(w, r, "failed to save settings", err)
			return
		}
	}

	h.Hub.Publish(events.Event{Kind: events.KindSettings, Action: events.ActionUpdated})
	h.Get(w, r)
}
