package model

import "encoding/json"

// Action is a named mutation submitted against a room. The payload shape is
// defined per action type by the target game template; the claimed submitter
// is not independently authenticated by this core.
type Action struct {
	Type     string          `json:"type"`
	PlayerID PlayerID        `json:"player_id"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
