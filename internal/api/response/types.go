package response

import (
	"encoding/json"
	"time"

	"github.com/mwillard/gameroom/internal/game"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/services/engine"
)

// Player represents a player in API responses
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
		Role: string(p.Role),
	}
}

// Room represents room metadata in API responses
type Room struct {
	Code      string    `json:"code"`
	GameID    string    `json:"game_id"`
	HostID    string    `json:"host_id"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r model.Room) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p)
	}
	return Room{
		Code:      string(r.Code),
		GameID:    string(r.GameID),
		HostID:    string(r.HostID),
		Players:   players,
		CreatedAt: r.CreatedAt,
	}
}

// RoomState is the full view collaborators consume: room metadata, opaque
// game state, and the derived phase. Version numbers stay internal.
type RoomState struct {
	Room  Room            `json:"room"`
	Phase string          `json:"phase"`
	State json.RawMessage `json:"state,omitempty"`
}

// RoomStateFromResult converts a pipeline result
func RoomStateFromResult(r *engine.Result) RoomState {
	return RoomState{
		Room:  RoomFromModel(r.Room),
		Phase: string(r.Phase),
		State: json.RawMessage(r.GameState),
	}
}

// GameInfo describes a registered game template
type GameInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	MinPlayers  int    `json:"min_players"`
	MaxPlayers  int    `json:"max_players"`
}

// GameInfoFromMetadata converts template metadata
func GameInfoFromMetadata(m game.Metadata) GameInfo {
	return GameInfo{
		ID:          string(m.ID),
		DisplayName: m.DisplayName,
		MinPlayers:  m.MinPlayers,
		MaxPlayers:  m.MaxPlayers,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
