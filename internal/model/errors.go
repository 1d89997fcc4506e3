package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrRosterNotFound  = errors.New("roster not found")
	ErrDuplicatePlayer = errors.New("duplicate player id")
	ErrEmptyPlayerName = errors.New("player name is empty")
	ErrCodeExhausted   = errors.New("no free roster code")
	ErrStaleRevision   = errors.New("roster changed since it was read")

	// Team errors
	ErrInvalidTeam    = errors.New("invalid team")
	ErrInvalidPointer = errors.New("invalid player pointer")

	// Grid errors
	ErrCardNotFound     = errors.New("card not found")
	ErrInvalidContainer = errors.New("container size must be positive")
	ErrSessionClosed    = errors.New("team session is closed")
)
