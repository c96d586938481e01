package game

import (
	"github.com/mwillard/gameroom/internal/dependencies/clock"
	"github.com/mwillard/gameroom/internal/dependencies/random"
	"github.com/mwillard/gameroom/internal/model"
)

// Phase is a coarse lifecycle label derived from game state, exposed to
// external consumers without revealing the state's shape
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in-progress"
	PhaseResults    Phase = "results"
)

// Metadata describes a game template
type Metadata struct {
	ID          model.GameID
	DisplayName string
	MinPlayers  int
	MaxPlayers  int
}

// Context supplies per-call dependencies to template functions.
// Random is deterministic per call; templates that consume it must draw in
// the order their own logic dictates so the same context yields the same
// result.
type Context struct {
	PlayerID model.PlayerID
	Room     *model.Room // read-only
	Random   random.Random
	Clock    clock.Clock
}

// Template is a named, versionless unit of game logic. State crosses the
// boundary as an opaque blob; every method recovers concrete typing
// internally (see Wrap).
//
// Reduce must be a total function: it never fails, and returns the state
// unchanged when the action is not applicable.
type Template interface {
	Metadata() Metadata
	InitialState(players []model.Player) model.GameState
	Reduce(state model.GameState, action model.Action, ctx Context) model.GameState
	Phase(state model.GameState) Phase
}

// ActionValidator is an optional pre-check consulted before Reduce. A
// template that does not implement it allows every action; rejection
// happens before any state mutation is attempted.
type ActionValidator interface {
	ActionAllowed(state model.GameState, action model.Action, ctx Context) bool
}
