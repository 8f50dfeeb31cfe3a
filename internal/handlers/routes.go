package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/trip-planner/internal/auth"
	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKey": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func tagged(tag string) func(o *huma.Operation) {
	return func(o *huma.Operation) { o.Tags = []string{tag} }
}

// RegisterRoutes mounts the middleware and every operation on r and returns the
// huma API so callers can inspect the generated OpenAPI document.
func RegisterRoutes(
	r *chi.Mux,
	log *logger.Logger,
	authHandler *auth.AuthHandler,
	apiKeyHandler *APIKeyHandler,
	catalogHandler *CatalogHandler,
	sessionHandler *SessionHandler,
	tripHandler *TripHandler,
) huma.API {
	if log == nil {
		log = logger.Nop()
	}
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(authHandler.AuthMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Trip Planner API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"apiKey": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/discord/login", authHandler.HandleLogin)
	r.Get("/auth/discord/callback", authHandler.HandleCallback)
	huma.Get(api, "/me", authHandler.HandleMe, secured, tagged("auth"))

	huma.Post(api, "/api-keys", apiKeyHandler.HandleCreate, secured, created, tagged("api-keys"))
	huma.Get(api, "/api-keys", apiKeyHandler.HandleList, secured, tagged("api-keys"))
	huma.Delete(api, "/api-keys/{id}", apiKeyHandler.HandleDelete, secured, tagged("api-keys"))

	// Catalog
	huma.Get(api, "/catalog/destinations", catalogHandler.HandleListDestinations, tagged("catalog"))
	huma.Get(api, "/catalog/destinations/{slug}", catalogHandler.HandleGetDestination, tagged("catalog"))

	// Planning sessions
	huma.Post(api, "/sessions", sessionHandler.HandleCreate, secured, created, tagged("sessions"))
	huma.Get(api, "/sessions/{id}", sessionHandler.HandleGet, secured, tagged("sessions"))
	huma.Delete(api, "/sessions/{id}", sessionHandler.HandleDelete, secured, tagged("sessions"))
	huma.Put(api, "/sessions/{id}/transport", sessionHandler.HandleUpdateTransport, secured, tagged("sessions"))
	huma.Put(api, "/sessions/{id}/accommodation", sessionHandler.HandleUpdateAccommodation, secured, tagged("sessions"))
	huma.Post(api, "/sessions/{id}/attractions/toggle", sessionHandler.HandleTogglePlace, secured, tagged("sessions"))
	huma.Put(api, "/sessions/{id}/attractions", sessionHandler.HandleUpdateAttractions, secured, tagged("sessions"))
	huma.Put(api, "/sessions/{id}/food", sessionHandler.HandleUpdateFood, secured, tagged("sessions"))
	huma.Put(api, "/sessions/{id}/shopping", sessionHandler.HandleUpdateShopping, secured, tagged("sessions"))
	huma.Get(api, "/sessions/{id}/summary", sessionHandler.HandleSummary, secured, tagged("sessions"))
	huma.Post(api, "/sessions/{id}/save", sessionHandler.HandleSave, secured, tagged("sessions"))
	huma.Post(api, "/sessions/{id}/confirm", sessionHandler.HandleConfirm, secured, tagged("sessions"))

	// Saved trips
	huma.Get(api, "/trips", tripHandler.HandleList, secured, tagged("trips"))
	huma.Get(api, "/trips/{id}", tripHandler.HandleGet, secured, tagged("trips"))
	huma.Delete(api, "/trips/{id}", tripHandler.HandleDelete, secured, tagged("trips"))
	huma.Get(api, "/trips/{id}/history", tripHandler.HandleHistory, secured, tagged("trips"))

	return api
}
