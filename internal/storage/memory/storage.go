package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mwillard/gameroom/internal/dependencies/clock"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. All
// operations, including the CAS in UpdateRoom, run under a single lock, so
// concurrent updates against the same code serialize trivially.
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomCode]*model.RoomRecord
	clock clock.Clock
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode]*model.RoomRecord),
		clock: clk,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateRoom(ctx context.Context, room model.Room, state model.GameState) (*model.RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[room.Code]; exists {
		return nil, model.ErrRoomExists
	}

	now := s.clock.Now()
	record := &model.RoomRecord{
		Room:      room,
		GameState: cloneState(state),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rooms[room.Code] = record

	return cloneRecord(record), nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return cloneRecord(record), nil
}

func (s *Storage) UpdateRoom(ctx context.Context, code model.RoomCode, room model.Room, state model.GameState, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.rooms[code]
	if !ok {
		return 0, &model.ConflictError{CurrentVersion: 0}
	}
	if record.Version != expectedVersion {
		return 0, &model.ConflictError{CurrentVersion: record.Version}
	}

	record.Room = cloneRoom(room)
	record.GameState = cloneState(state)
	record.Version++
	record.UpdatedAt = s.clock.Now()

	return record.Version, nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[code]
	delete(s.rooms, code)
	return ok, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*model.RoomRecord, 0, len(s.rooms))
	for _, record := range s.rooms {
		records = append(records, cloneRecord(record))
	}
	return records, nil
}

func (s *Storage) PurgeRoomsOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-maxAge)
	count := 0
	for code, record := range s.rooms {
		if record.UpdatedAt.Before(cutoff) {
			delete(s.rooms, code)
			count++
		}
	}
	return count, nil
}

// Records are copied on every boundary crossing so callers never alias the
// stored state.

func cloneRecord(record *model.RoomRecord) *model.RoomRecord {
	clone := *record
	clone.Room = cloneRoom(record.Room)
	clone.GameState = cloneState(record.GameState)
	return &clone
}

func cloneRoom(room model.Room) model.Room {
	clone := room
	clone.Players = make([]model.Player, len(room.Players))
	copy(clone.Players, room.Players)
	return clone
}

func cloneState(state model.GameState) model.GameState {
	if state == nil {
		return nil
	}
	clone := make(model.GameState, len(state))
	copy(clone, state)
	return clone
}
