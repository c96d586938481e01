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
)

// ActionHandler handles game action submission
type ActionHandler struct {
	engine *engine.Controller
}

// NewActionHandler creates a new ActionHandler
func NewActionHandler(eng *engine.Controller) *ActionHandler {
	return &ActionHandler{engine: eng}
}

// Apply handles POST /rooms/{code}/actions
func (h *ActionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req request.Action
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.Type == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Action type is required"))
		return
	}

	action := model.Action{
		Type:     req.Type,
		PlayerID: model.PlayerID(req.PlayerID),
		Payload:  req.Payload,
	}

	result, err := h.engine.Apply(r.Context(), code, action)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromResult(result))
}
