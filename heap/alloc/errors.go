package alloc

import (
	"errors"

	"github.com/joshuapare/heapkit/heap/arena"
)

var (
	// ErrOutOfMemory indicates no free block fit and the arena could not grow.
	// It is the same value as arena.ErrOutOfMemory.
	ErrOutOfMemory = arena.ErrOutOfMemory

	// ErrClosed indicates use of an allocator after Close.
	ErrClosed = arena.ErrClosed

	// ErrInvalidSize indicates a zero or negative allocation request.
	ErrInvalidSize = errors.New("alloc: allocation size must be positive")

	// ErrInvalidRelease indicates Free was handed a pointer that is not the
	// payload of an occupied block. Free panics with an error wrapping it.
	ErrInvalidRelease = errors.New("alloc: invalid release")

	// ErrArenaInUse indicates an allocator was asked to adopt an arena that
	// has already granted bytes to someone else.
	ErrArenaInUse = errors.New("alloc: arena already has bytes granted")

	// ErrUnknownPolicy indicates an out-of-range Policy value.
	ErrUnknownPolicy = errors.New("alloc: unknown fit policy")
)
