package arena

import "errors"

var (
	// ErrOutOfMemory indicates the break primitive refused to extend the arena.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrExhausted indicates a breaker reached the end of its reservation.
	ErrExhausted = errors.New("arena: break limit reached")

	// ErrClosed indicates use of a breaker after Close.
	ErrClosed = errors.New("arena: breaker closed")

	// ErrBadGrow indicates a non-positive grow request.
	ErrBadGrow = errors.New("arena: grow size must be positive")
)
