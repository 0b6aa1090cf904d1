package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/filter"
	"github.com/erazemk/roomboard/internal/prefs"
)

// Config carries the dependencies shared by the API handlers.
type Config struct {
	DB             *sql.DB
	JWTSecret      string
	TokenTTL       time.Duration
	Prefs          prefs.Store
	Session        *filter.Session
	Hub            *events.Hub
	MaxUploadBytes int64

	// AllowedOrigins limits websocket upgrades. Empty means same-origin only.
	AllowedOrigins []string
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: cfg.DB, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	itemsHandler := &ItemsHandler{DB: cfg.DB, Session: cfg.Session, Hub: cfg.Hub, MaxUploadBytes: cfg.MaxUploadBytes}
	filtersHandler := &FiltersHandler{Session: cfg.Session, Hub: cfg.Hub}
	roomsHandler := &RoomsHandler{DB: cfg.DB, Hub: cfg.Hub}
	tagsHandler := &TagsHandler{DB: cfg.DB, Hub: cfg.Hub}
	settingsHandler := &SettingsHandler{Prefs: cfg.Prefs, Hub: cfg.Hub}
	eventsHandler := &EventsHandler{Hub: cfg.Hub}
	eventsHandler.Upgrader.CheckOrigin = checkOrigin(cfg.AllowedOrigins)

	authMW := AuthMiddleware(cfg.JWTSecret, cfg.DB)
	protected := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("PUT /api/auth/password", protected(authHandler.ChangePassword))
	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))

	// Items.
	mux.Handle("GET /api/items", protected(itemsHandler.List))
	mux.Handle("POST /api/items", protected(itemsHandler.Create))
	mux.Handle("GET /api/items/{id}", protected(itemsHandler.Get))
	mux.Handle("PUT /api/items/{id}", protected(itemsHandler.Update))
	mux.Handle("DELETE /api/items/{id}", protected(itemsHandler.Delete))
	mux.Handle("PUT /api/items/{id}/image", protected(itemsHandler.UploadImage))
	mux.Handle("GET /api/items/{id}/image", protected(itemsHandler.GetImage))

	// Filters.
	mux.Handle("GET /api/filters", protected(filtersHandler.Get))
	mux.Handle("POST /api/filters/search/{property}", protected(filtersHandler.ToggleSearch))
	mux.Handle("POST /api/filters/value/{filter}", protected(filtersHandler.ToggleValue))
	mux.Handle("PUT /api/filters/sort", protected(filtersHandler.SetSort))
	mux.Handle("POST /api/filters/reset", protected(filtersHandler.Reset))

	// Rooms.
	mux.Handle("GET /api/rooms", protected(roomsHandler.List))
	mux.Handle("POST /api/rooms", protected(roomsHandler.Create))
	mux.Handle("PUT /api/rooms/order", protected(roomsHandler.Reorder))
	mux.Handle("POST /api/rooms/compact", protected(roomsHandler.Compact))
	mux.Handle("PUT /api/rooms/{id}", protected(roomsHandler.Update))
	mux.Handle("DELETE /api/rooms/{id}", protected(roomsHandler.Delete))

	// Tags.
	mux.Handle("GET /api/tags", protected(tagsHandler.List))
	mux.Handle("POST /api/tags", protected(tagsHandler.Create))
	mux.Handle("POST /api/tags/defaults", protected(tagsHandler.InstallDefaults))
	mux.Handle("PUT /api/tags/{id}", protected(tagsHandler.Update))
	mux.Handle("DELETE /api/tags/{id}", protected(tagsHandler.Delete))

	// Settings.
	mux.Handle("GET /api/settings", protected(settingsHandler.Get))
	mux.Handle("PUT /api/settings", protected(settingsHandler.Update))

	// Change events.
	mux.Handle("GET /api/events", protected(eventsHandler.Stream))

	return mux
}

// checkOrigin accepts same-origin requests plus the configured origins.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] || set[origin] {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
