// Package request defines the JSON request bodies accepted by the API.
package request

import "encoding/json"

// CreateRoom is the body for POST /api/v1/rooms
type CreateRoom struct {
	GameID   string `json:"game_id,omitempty"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// JoinRoom is the body for POST /api/v1/rooms/{code}/join
type JoinRoom struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// Action is the body for POST /api/v1/rooms/{code}/actions
type Action struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"player_id"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
