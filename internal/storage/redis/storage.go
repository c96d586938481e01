package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mwillard/gameroom/internal/dependencies/clock"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON under one key per room; the version check in
// UpdateRoom runs inside a WATCH transaction, so concurrent updates against
// the same key serialize on the Redis side.
type Storage struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateRoom(ctx context.Context, room model.Room, state model.GameState) (*model.RoomRecord, error) {
	now := s.clock.Now()
	record := &model.RoomRecord{
		Room:      room,
		GameState: state,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	// SETNX: never overwrite an existing code
	set, err := s.client.SetNX(ctx, roomKey(room.Code), data, s.cfg.RoomTTL).Result()
	if err != nil {
		return nil, err
	}
	if !set {
		return nil, model.ErrRoomExists
	}

	return record, nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var record model.RoomRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, code model.RoomCode, room model.Room, state model.GameState, expectedVersion int64) (int64, error) {
	key := roomKey(code)
	var newVersion int64

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Absent room counts as a conflict, not a write target
				return &model.ConflictError{CurrentVersion: 0}
			}
			return err
		}

		var record model.RoomRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return err
		}
		if record.Version != expectedVersion {
			return &model.ConflictError{CurrentVersion: record.Version}
		}

		record.Room = room
		record.GameState = state
		record.Version++
		record.UpdatedAt = s.clock.Now()
		newVersion = record.Version

		newData, err := json.Marshal(&record)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, s.cfg.RoomTTL)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer changed the key between our read and the
			// transaction commit; report the version it left behind.
			current, readErr := s.GetRoom(ctx, code)
			if readErr != nil {
				return 0, &model.ConflictError{CurrentVersion: 0}
			}
			return 0, &model.ConflictError{CurrentVersion: current.Version}
		}
		return 0, err
	}

	return newVersion, nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) (bool, error) {
	deleted, err := s.client.Del(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.RoomRecord, error) {
	var records []*model.RoomRecord

	iter := s.client.Scan(ctx, 0, roomKeyPattern(), 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // Expired between scan and get
			}
			return nil, err
		}

		var record model.RoomRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Storage) PurgeRoomsOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.clock.Now().Add(-maxAge)
	count := 0

	iter := s.client.Scan(ctx, 0, roomKeyPattern(), 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return count, err
		}

		var record model.RoomRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}

		if record.UpdatedAt.Before(cutoff) {
			deleted, err := s.client.Del(ctx, key).Result()
			if err != nil {
				return count, err
			}
			count += int(deleted)
		}
	}
	if err := iter.Err(); err != nil {
		return count, err
	}

	return count, nil
}
