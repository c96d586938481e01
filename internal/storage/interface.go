package storage

import (
	"context"
	"time"

	"github.com/mwillard/gameroom/internal/dependencies/random"
	"github.com/mwillard/gameroom/internal/model"
)

// Storage defines the versioned room store. Update is the compare-and-swap
// boundary that gives the whole system its correctness: it must be
// linearizable with respect to all other Update/Create calls on the same
// room code.
type Storage interface {
	// CreateRoom inserts a new record with version 1. It never overwrites;
	// a present code fails with model.ErrRoomExists.
	CreateRoom(ctx context.Context, room model.Room, state model.GameState) (*model.RoomRecord, error)

	// GetRoom returns the record for the given code, or model.ErrRoomNotFound
	GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error)

	// UpdateRoom atomically checks that the stored version equals
	// expectedVersion, writes the new room and game state, and increments the
	// version by exactly 1, returning the new version. If the stored version
	// differs or the room is absent, no write happens and a
	// *model.ConflictError carrying the current version is returned.
	UpdateRoom(ctx context.Context, code model.RoomCode, room model.Room, state model.GameState, expectedVersion int64) (int64, error)

	// RoomExists reports whether a record exists for the given code
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// DeleteRoom removes a record, reporting whether it was present
	DeleteRoom(ctx context.Context, code model.RoomCode) (bool, error)

	// ListRooms returns all records. Diagnostic use only.
	ListRooms(ctx context.Context) ([]*model.RoomRecord, error)

	// PurgeRoomsOlderThan deletes records whose UpdatedAt is older than
	// maxAge, returning the number deleted
	PurgeRoomsOlderThan(ctx context.Context, maxAge time.Duration) (int, error)
}

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoids
	// easily-confused characters)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateUniqueCode draws room codes from the fixed alphabet until the
// store reports the code unused. Uniqueness is enforced purely by this
// existence check; CreateRoom rejecting collisions is the second layer of
// defense against a race between the check and the insert.
func GenerateUniqueCode(ctx context.Context, s Storage, rnd random.Random) (model.RoomCode, error) {
	for {
		code := model.NormalizeRoomCode(rnd.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := s.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
