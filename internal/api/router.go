package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/knowyourrights/cards/server/internal/api/instrument"
	"github.com/knowyourrights/cards/server/internal/api/recovery"
	respond "github.com/knowyourrights/cards/server/internal/api/respond"
	"github.com/knowyourrights/cards/server/internal/services"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Users      *services.UserService
	Encounters *services.EncounterService
	Contacts   *services.ContactService
	Alerts     *services.AlertService
	Frames     *services.FrameService
}

// NewRouter wires every API route onto a gorilla/mux router.
func NewRouter(svc Services, health ServiceHealth, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares. instrument is outermost so recovered panics are counted.
	router.Use(instrument.Middleware(log))
	router.Use(recovery.Middleware(log))

	userHandler := NewUserHandler(svc.Users, log)
	encounterHandler := NewEncounterHandler(svc.Encounters, log)
	contactHandler := NewContactHandler(svc.Contacts, log)
	alertHandler := NewAlertHandler(svc.Alerts, log)
	frameHandler := NewFrameHandler(svc.Frames)
	healthHandler := NewHealthHandler(health)

	// Health & metrics
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// User endpoints
	router.HandleFunc("/api/user", userHandler.FindOrCreateUser).Methods("GET")
	router.HandleFunc("/api/user", userHandler.UpdateUser).Methods("PUT")
	router.HandleFunc("/api/user", userHandler.CreateUser).Methods("POST")

	// Encounter endpoints
	router.HandleFunc("/api/encounters", encounterHandler.GetEncounters).Methods("GET")
	router.HandleFunc("/api/encounters", encounterHandler.CreateEncounter).Methods("POST")
	router.HandleFunc("/api/encounters", encounterHandler.UpdateEncounter).Methods("PUT")
	router.HandleFunc("/api/encounters/share", encounterHandler.ShareEncounter).Methods("POST")

	// Trusted contact endpoints
	router.HandleFunc("/api/trusted-contacts", contactHandler.ListContacts).Methods("GET")
	router.HandleFunc("/api/trusted-contacts", contactHandler.AddContact).Methods("POST")
	router.HandleFunc("/api/trusted-contacts", contactHandler.RemoveContact).Methods("DELETE")

	// Alert endpoints
	router.HandleFunc("/api/alerts", alertHandler.DispatchAlert).Methods("POST")
	router.HandleFunc("/api/alerts", alertHandler.AlertHistory).Methods("GET")

	// Farcaster frame
	router.HandleFunc("/api/frame/action", frameHandler.FrameAction).Methods("POST")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}
