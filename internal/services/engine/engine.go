// Package engine implements the action application pipeline: load versioned
// room state, dispatch through the registered game template, and commit the
// result with a compare-and-swap write, retrying on conflict.
package engine

import (
	"context"
	"log/slog"

	"github.com/mwillard/gameroom/internal/dependencies/clock"
	"github.com/mwillard/gameroom/internal/dependencies/random"
	"github.com/mwillard/gameroom/internal/game"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/storage"
)

// Result is the room view produced by a pipeline run or a read
type Result struct {
	Room      model.Room
	GameState model.GameState
	Version   int64
	Phase     game.Phase
}

// Controller runs the pipeline. Each Apply call is an independent, stateless
// unit of work; any number may run concurrently, including against the same
// room. Correctness is delegated entirely to the store's CAS primitive.
type Controller struct {
	storage    storage.Storage
	registry   *game.Registry
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	maxRetries int
}

// NewController creates a new pipeline controller
func NewController(
	store storage.Storage,
	registry *game.Registry,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    store,
		registry:   registry,
		clock:      clk,
		random:     rnd,
		logger:     logger,
		maxRetries: storage.DefaultMaxRetries,
	}
}

// SetMaxRetries overrides the retry budget (tests)
func (c *Controller) SetMaxRetries(n int) {
	c.maxRetries = n
}

// Apply runs one action through the pipeline. Terminal failures:
// model.ErrRoomNotFound, model.ErrGameNotRegistered,
// model.ErrActionNotAllowed, and model.ErrVersionConflict once the retry
// budget is exhausted.
func (c *Controller) Apply(ctx context.Context, rawCode string, action model.Action) (*Result, error) {
	code := model.NormalizeRoomCode(rawCode)

	var result *Result
	err := storage.WithRetry(ctx, c.maxRetries, c.random, func(ctx context.Context) error {
		record, err := c.storage.GetRoom(ctx, code)
		if err != nil {
			return err
		}

		tmpl, ok := c.registry.Get(record.Room.GameID)
		if !ok {
			// A room pointing at an unregistered game is a deployment bug,
			// not a client error
			c.logger.Error("room references unregistered game",
				slog.String("room_code", string(code)),
				slog.String("game_id", string(record.Room.GameID)),
			)
			return model.ErrGameNotRegistered
		}

		// Lazily materialize game state on first use; it is persisted as
		// part of the same CAS write, so no reader ever observes a room
		// with null state once an action has been processed.
		state := record.GameState
		if len(state) == 0 {
			state = tmpl.InitialState(record.Room.Players)
		}

		// Each attempt derives a fresh deterministic random source; a
		// retried action may draw different values than the conflicted
		// attempt did.
		gameCtx := game.Context{
			PlayerID: action.PlayerID,
			Room:     &record.Room,
			Random:   random.NewSeeded(c.random.Int63()),
			Clock:    c.clock,
		}

		if v, ok := tmpl.(game.ActionValidator); ok {
			if !v.ActionAllowed(state, action, gameCtx) {
				return model.ErrActionNotAllowed
			}
		}

		newState := tmpl.Reduce(state, action, gameCtx)

		newVersion, err := c.storage.UpdateRoom(ctx, code, record.Room, newState, record.Version)
		if err != nil {
			return err
		}

		result = &Result{
			Room:      record.Room,
			GameState: newState,
			Version:   newVersion,
			Phase:     tmpl.Phase(newState),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("action applied",
		slog.String("room_code", string(code)),
		slog.String("action_type", action.Type),
		slog.String("player_id", string(action.PlayerID)),
		slog.Int64("version", result.Version),
	)

	return result, nil
}

// View returns the current room, game state, and derived phase without
// mutating anything. A room whose state has never been materialized is
// presented with its template's initial state; nothing is persisted.
func (c *Controller) View(ctx context.Context, rawCode string) (*Result, error) {
	code := model.NormalizeRoomCode(rawCode)

	record, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	tmpl, ok := c.registry.Get(record.Room.GameID)
	if !ok {
		c.logger.Error("room references unregistered game",
			slog.String("room_code", string(code)),
			slog.String("game_id", string(record.Room.GameID)),
		)
		return nil, model.ErrGameNotRegistered
	}

	state := record.GameState
	if len(state) == 0 {
		state = tmpl.InitialState(record.Room.Players)
	}

	return &Result{
		Room:      record.Room,
		GameState: state,
		Version:   record.Version,
		Phase:     tmpl.Phase(state),
	}, nil
}
