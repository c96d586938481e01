// Package guess implements the built-in number guessing game.
//
// The host starts the round, a secret target between 1 and 100 is drawn, and
// players submit guesses until one of them hits the target.
package guess

import (
	"encoding/json"

	"github.com/mwillard/gameroom/internal/game"
	"github.com/mwillard/gameroom/internal/model"
)

// GameID is the registry key for this template
const GameID = model.GameID("guess")

// Action types understood by the reducer
const (
	ActionStartGame = "START_GAME"
	ActionGuess     = "GUESS"
	ActionPlayAgain = "PLAY_AGAIN"
)

// Stage values within the game state
const (
	StageLobby   = "lobby"
	StagePlaying = "playing"
	StageResults = "results"
)

const (
	targetMin = 1
	targetMax = 100
)

// Guess records one submitted guess and the hint it produced
type Guess struct {
	PlayerID model.PlayerID `json:"player_id"`
	Value    int            `json:"value"`
	Hint     string         `json:"hint"` // "higher", "lower", or "correct"
}

// State is the full game state for a guessing round
type State struct {
	Stage   string         `json:"stage"`
	Target  int            `json:"target"`
	Guesses []Guess        `json:"guesses"`
	Winner  model.PlayerID `json:"winner,omitempty"`
	Round   int            `json:"round"`
}

type guessPayload struct {
	Value int `json:"value"`
}

// New creates the guessing game template
func New() game.Template {
	return game.Wrap[State](game.Metadata{
		ID:          GameID,
		DisplayName: "Number Guessing",
		MinPlayers:  1,
		MaxPlayers:  8,
	}, rules{})
}

type rules struct{}

func (rules) InitialState(players []model.Player) State {
	return State{
		Stage:   StageLobby,
		Guesses: []Guess{},
		Round:   1,
	}
}

func (rules) Reduce(state State, action model.Action, ctx game.Context) State {
	switch action.Type {
	case ActionStartGame:
		if state.Stage != StageLobby {
			return state
		}
		state.Stage = StagePlaying
		state.Target = targetMin + ctx.Random.Intn(targetMax-targetMin+1)
		state.Guesses = []Guess{}
		state.Winner = ""
		return state

	case ActionGuess:
		if state.Stage != StagePlaying {
			return state
		}
		var payload guessPayload
		if err := json.Unmarshal(action.Payload, &payload); err != nil {
			return state
		}
		if payload.Value < targetMin || payload.Value > targetMax {
			return state
		}
		guess := Guess{PlayerID: action.PlayerID, Value: payload.Value}
		switch {
		case payload.Value < state.Target:
			guess.Hint = "higher"
		case payload.Value > state.Target:
			guess.Hint = "lower"
		default:
			guess.Hint = "correct"
			state.Stage = StageResults
			state.Winner = action.PlayerID
		}
		state.Guesses = append(state.Guesses, guess)
		return state

	case ActionPlayAgain:
		if state.Stage != StageResults {
			return state
		}
		state.Stage = StageLobby
		state.Target = 0
		state.Guesses = []Guess{}
		state.Winner = ""
		state.Round++
		return state

	default:
		// Unknown actions are a no-op
		return state
	}
}

func (rules) Phase(state State) game.Phase {
	switch state.Stage {
	case StagePlaying:
		return game.PhaseInProgress
	case StageResults:
		return game.PhaseResults
	default:
		return game.PhaseLobby
	}
}

// ActionAllowed restricts round control to the host. Everything else is
// left to the reducer's no-op convention.
func (rules) ActionAllowed(state State, action model.Action, ctx game.Context) bool {
	switch action.Type {
	case ActionStartGame, ActionPlayAgain:
		return ctx.Room != nil && ctx.Room.HostID == action.PlayerID
	default:
		return true
	}
}
