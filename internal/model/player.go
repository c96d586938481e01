package model

// PlayerID uniquely identifies a player across the system.
// It is stable across reconnects; the client is responsible for persisting it.
type PlayerID string

// PlayerRole distinguishes the room host from regular players
type PlayerRole string

const (
	RoleHost   PlayerRole = "host"
	RolePlayer PlayerRole = "player"
)

// Player represents a room participant
type Player struct {
	ID   PlayerID   `json:"id"`
	Name string     `json:"name"`
	Role PlayerRole `json:"role"`
}
