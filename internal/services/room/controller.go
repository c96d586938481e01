// Package room implements room lifecycle operations: creating a room with
// its host and joining an existing room. Both are thin orchestration over
// the versioned store; joins go through the same CAS update as game actions
// so they participate in version ordering.
package room

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mwillard/gameroom/internal/dependencies/clock"
	"github.com/mwillard/gameroom/internal/dependencies/random"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/storage"
)

// createAttempts bounds regeneration when a generated code collides with a
// concurrent create
const createAttempts = 5

// Controller manages room creation and membership
type Controller struct {
	storage       storage.Storage
	clock         clock.Clock
	random        random.Random
	logger        *slog.Logger
	defaultGameID model.GameID
}

// NewController creates a new room controller. defaultGameID is used when a
// create request omits the game id.
func NewController(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	defaultGameID model.GameID,
) *Controller {
	return &Controller{
		storage:       store,
		clock:         clk,
		random:        rnd,
		logger:        logger,
		defaultGameID: defaultGameID,
	}
}

// CreateRoom creates a new room with the given player as host and sole
// member. The record starts at version 1 with no game state; the pipeline
// materializes state lazily on first use.
func (c *Controller) CreateRoom(ctx context.Context, gameID model.GameID, hostID model.PlayerID, hostName string) (*model.RoomRecord, error) {
	if strings.TrimSpace(hostName) == "" {
		return nil, model.ErrMissingName
	}
	if gameID == "" {
		gameID = c.defaultGameID
	}

	var record *model.RoomRecord
	for attempt := 0; attempt < createAttempts; attempt++ {
		code, err := storage.GenerateUniqueCode(ctx, c.storage, c.random)
		if err != nil {
			return nil, err
		}

		newRoom := model.Room{
			Code:   code,
			GameID: gameID,
			HostID: hostID,
			Players: []model.Player{
				{ID: hostID, Name: hostName, Role: model.RoleHost},
			},
			CreatedAt: c.clock.Now(),
		}

		record, err = c.storage.CreateRoom(ctx, newRoom, nil)
		if err == nil {
			break
		}
		if err != model.ErrRoomExists {
			return nil, err
		}
		// Lost the race between the uniqueness check and the insert;
		// regenerate and try again
		record = nil
	}
	if record == nil {
		return nil, model.ErrRoomExists
	}

	c.logger.Info("room created",
		slog.String("room_code", string(record.Room.Code)),
		slog.String("game_id", string(gameID)),
		slog.String("host_id", string(hostID)),
	)

	return record, nil
}

// GetRoom retrieves a room record by code
func (c *Controller) GetRoom(ctx context.Context, rawCode string) (*model.RoomRecord, error) {
	if strings.TrimSpace(rawCode) == "" {
		return nil, model.ErrMissingRoomCode
	}
	return c.storage.GetRoom(ctx, model.NormalizeRoomCode(rawCode))
}

// JoinRoom appends a new player to a room, or updates an existing player's
// name if the id is already present (rejoin). Players are never removed.
func (c *Controller) JoinRoom(ctx context.Context, rawCode string, playerID model.PlayerID, name string) (*model.RoomRecord, error) {
	if strings.TrimSpace(rawCode) == "" {
		return nil, model.ErrMissingRoomCode
	}
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrMissingName
	}
	code := model.NormalizeRoomCode(rawCode)

	var joined *model.RoomRecord
	err := storage.WithRetry(ctx, storage.DefaultMaxRetries, c.random, func(ctx context.Context) error {
		record, err := c.storage.GetRoom(ctx, code)
		if err != nil {
			return err
		}

		updated := record.Room
		if existing := updated.GetPlayer(playerID); existing != nil {
			existing.Name = name
		} else {
			updated.Players = append(updated.Players, model.Player{
				ID:   playerID,
				Name: name,
				Role: model.RolePlayer,
			})
		}

		newVersion, err := c.storage.UpdateRoom(ctx, code, updated, record.GameState, record.Version)
		if err != nil {
			return err
		}

		joined = record
		joined.Room = updated
		joined.Version = newVersion
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("player joined room",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Int64("version", joined.Version),
	)

	return joined, nil
}
