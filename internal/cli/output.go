package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RoomState:
		o.printRoomState(v)
	case []GameInfo:
		o.printGameInfos(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Room response type
type Room struct {
	Code      string    `json:"code"`
	GameID    string    `json:"game_id"`
	HostID    string    `json:"host_id"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomState response type
type RoomState struct {
	Room  Room            `json:"room"`
	Phase string          `json:"phase"`
	State json.RawMessage `json:"state,omitempty"`
}

// GameInfo response type
type GameInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	MinPlayers  int    `json:"min_players"`
	MaxPlayers  int    `json:"max_players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoomState(rs RoomState) {
	fmt.Printf("Room: %s\n", rs.Room.Code)
	fmt.Printf("Game: %s\n", rs.Room.GameID)
	fmt.Printf("Phase: %s\n", rs.Phase)
	fmt.Printf("Players (%d):\n", len(rs.Room.Players))
	for _, p := range rs.Room.Players {
		hostStr := ""
		if p.ID == rs.Room.HostID {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s (%s)%s\n", p.Name, p.ID, hostStr)
	}
	if len(rs.State) > 0 {
		fmt.Println("State:")
		var pretty map[string]any
		if err := json.Unmarshal(rs.State, &pretty); err == nil {
			data, _ := json.MarshalIndent(pretty, "  ", "  ")
			fmt.Printf("  %s\n", string(data))
		} else {
			fmt.Printf("  %s\n", string(rs.State))
		}
	}
}

func (o *Output) printGameInfos(infos []GameInfo) {
	fmt.Printf("Registered games (%d):\n", len(infos))
	for _, g := range infos {
		fmt.Printf("  - %s: %s (%d-%d players)\n", g.ID, g.DisplayName, g.MinPlayers, g.MaxPlayers)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
