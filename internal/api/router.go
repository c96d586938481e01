package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mwillard/gameroom/internal/api/apierr"
	"github.com/mwillard/gameroom/internal/api/handler"
	"github.com/mwillard/gameroom/internal/api/response"
	"github.com/mwillard/gameroom/internal/game"
	"github.com/mwillard/gameroom/internal/middleware"
	"github.com/mwillard/gameroom/internal/services/engine"
	"github.com/mwillard/gameroom/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Registry       *game.Registry
	RoomController *room.Controller
	Engine         *engine.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Engine)
	actionHandler := handler.NewActionHandler(cfg.Engine)
	gamesHandler := handler.NewGamesHandler(cfg.Registry)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Room routes
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/actions", actionHandler.Apply).Methods(http.MethodPost)

	// Game template routes
	api.HandleFunc("/games", gamesHandler.List).Methods(http.MethodGet)

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
	}).Methods(http.MethodGet)

	return r
}
