package handler

import (
	"net/http"

	"github.com/mwillard/gameroom/internal/api/response"
	"github.com/mwillard/gameroom/internal/game"
)

// GamesHandler lists the registered game templates
type GamesHandler struct {
	registry *game.Registry
}

// NewGamesHandler creates a new GamesHandler
func NewGamesHandler(registry *game.Registry) *GamesHandler {
	return &GamesHandler{registry: registry}
}

// List handles GET /games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	templates := h.registry.List()

	infos := make([]response.GameInfo, len(templates))
	for i, t := range templates {
		infos[i] = response.GameInfoFromMetadata(t.Metadata())
	}

	response.JSON(w, http.StatusOK, infos)
}
