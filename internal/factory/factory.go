// Package factory wires the application's components together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mwillard/gameroom/internal/dependencies/clock"
	"github.com/mwillard/gameroom/internal/dependencies/random"
	"github.com/mwillard/gameroom/internal/game"
	"github.com/mwillard/gameroom/internal/game/guess"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/services/engine"
	"github.com/mwillard/gameroom/internal/services/room"
	"github.com/mwillard/gameroom/internal/storage"
	"github.com/mwillard/gameroom/internal/storage/memory"
	redisstorage "github.com/mwillard/gameroom/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Game templates
	Registry *game.Registry

	// Services
	RoomController *room.Controller
	Engine         *engine.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DefaultGame is the game id used when room creation omits one
	// If empty, defaults to the built-in guessing game
	DefaultGame model.GameID
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	defaultGame := cfg.DefaultGame
	if defaultGame == "" {
		defaultGame = guess.GameID
	}

	return newWithDependencies(store, clk, rnd, defaultGame, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, defaultGame model.GameID, logger *slog.Logger) *App {
	// Register built-in game templates. All registration completes before
	// the first lookup.
	registry := game.NewRegistry(logger)
	registry.Register(guess.New())

	roomController := room.NewController(store, clk, rnd, logger, defaultGame)
	eng := engine.NewController(store, registry, clk, rnd, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Registry:       registry,
		RoomController: roomController,
		Engine:         eng,
	}
}
