package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room code already exists")
	ErrMissingRoomCode = errors.New("room code is required")
	ErrMissingName     = errors.New("player name is required")

	// Pipeline errors
	ErrGameNotRegistered = errors.New("game is not registered")
	ErrActionNotAllowed  = errors.New("action is not allowed")
	ErrVersionConflict   = errors.New("concurrent update conflict")
)

// ConflictError reports a failed compare-and-swap together with the version
// currently stored, so the caller can retry against it.
// errors.Is(err, ErrVersionConflict) matches.
type ConflictError struct {
	CurrentVersion int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent update conflict (current version %d)", e.CurrentVersion)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}
