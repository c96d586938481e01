package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RoomCode is a short human-typeable identifier for joining rooms
type RoomCode string

// GameID selects a registered game template
type GameID string

// GameState is the opaque per-game state blob. The core never inspects it
// beyond checking for absence; its shape is owned entirely by the template
// identified by the room's GameID.
type GameState = json.RawMessage

// NormalizeRoomCode folds a user-supplied code to the store's canonical form
func NormalizeRoomCode(code string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(code)))
}

// Room holds the room metadata shared by all participants
type Room struct {
	Code      RoomCode  `json:"code"`
	GameID    GameID    `json:"game_id"`
	HostID    PlayerID  `json:"host_id"`
	Players   []Player  `json:"players"` // insertion order = join order
	CreatedAt time.Time `json:"created_at"`
}

// GetPlayer returns the player with the given id, or nil if not present
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// RoomRecord is the persisted unit: room metadata, opaque game state, and the
// version counter that is the sole conflict-detection mechanism. Version
// starts at 1 on creation and increments by exactly 1 per successful update.
type RoomRecord struct {
	Room      Room      `json:"room"`
	GameState GameState `json:"game_state,omitempty"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
