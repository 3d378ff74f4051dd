package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"flagarena/internal/repository"
	"flagarena/internal/service"
	"flagarena/internal/transport/rest/handler"
	"flagarena/internal/transport/rest/middleware"
	"flagarena/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	JudgeService       *service.JudgeService
	LeaderboardService *service.LeaderboardService
	SubmissionRepo     repository.SubmissionRepo
	WSHandler          *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	submissionHandler := handler.NewSubmissionHandler(c.JudgeService)
	scoreboardHandler := handler.NewScoreboardHandler(c.LeaderboardService)
	auditHandler := handler.NewAuditHandler(c.SubmissionRepo)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Solve feed (token in query param)
	v1.HandleFunc("/ws/contests/{id}/feed", c.WSHandler.WatchWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Account routes
	accountRoutes := v1.NewRoute().Subrouter()
	accountRoutes.Use(authMW.RequireAccount)

	accountRoutes.HandleFunc("/contests/{id}/challenges/{slug}/submit", submissionHandler.Submit).Methods("POST", "OPTIONS")
	// The scoreboard handler gates ?live=1 on the admin claim itself
	accountRoutes.HandleFunc("/contests/{id}/scoreboard", scoreboardHandler.Get).Methods("GET", "OPTIONS")

	// Admin audit routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/admin/submissions", auditHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/submissions/compare", auditHandler.CompareFlag).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/submissions/{id}/suspect", auditHandler.SetSuspected).Methods("PATCH", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
