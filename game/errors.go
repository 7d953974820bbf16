package game

import "errors"

var (
	// ErrOutOfRange is returned for coordinates outside the grid. Nothing is
	// mutated when it is returned.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidState is returned by every mutating call on a terminal game.
	ErrInvalidState = errors.New("game is over")
	// ErrUnknownPlayer is returned for player ids outside 1..4.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
