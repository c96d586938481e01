package redis

import (
	"fmt"

	"github.com/mwillard/gameroom/internal/model"
)

// Key prefix for all room data
const keyPrefix = "gameroom"

// roomKey returns the Redis key for a RoomRecord
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// roomKeyPattern matches all room record keys, for SCAN-based operations
func roomKeyPattern() string {
	return fmt.Sprintf("%s:room:*", keyPrefix)
}
