package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mwillard/gameroom/internal/api/apierr"
	"github.com/mwillard/gameroom/internal/api/request"
	"github.com/mwillard/gameroom/internal/api/response"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/services/engine"
	"github.com/mwillard/gameroom/internal/services/room"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	roomController *room.Controller
	engine         *engine.Controller
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomController *room.Controller, eng *engine.Controller) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
		engine:         eng,
	}
}

// Create handles POST /rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoom
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	record, err := h.roomController.CreateRoom(r.Context(),
		model.GameID(req.GameID), model.PlayerID(req.PlayerID), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	view, err := h.engine.View(r.Context(), string(record.Room.Code))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomStateFromResult(view))
}

// Join handles POST /rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req request.JoinRoom
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	record, err := h.roomController.JoinRoom(r.Context(), code, model.PlayerID(req.PlayerID), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	view, err := h.engine.View(r.Context(), string(record.Room.Code))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromResult(view))
}

// Get handles GET /rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	view, err := h.engine.View(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromResult(view))
}
