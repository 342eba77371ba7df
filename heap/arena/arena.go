package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// DefaultLimit is the default reservation size (1 GiB).
const DefaultLimit = 1 << 30

// Backing selects the break primitive used by New.
type Backing uint8

const (
	// BackingAuto uses mmap where available and a Go slice elsewhere.
	BackingAuto Backing = iota
	// BackingMmap requires an mmap reservation.
	BackingMmap
	// BackingSlice uses a Go byte slice.
	BackingSlice
)

// Config controls arena construction.
type Config struct {
	// Limit is the maximum number of bytes the arena may ever grant.
	// Values <= 0 select DefaultLimit. Limits above format.MaxArenaSize are
	// clamped, since block references are 32-bit offsets.
	Limit int

	// Backing selects the break primitive. Default: BackingAuto.
	Backing Backing
}

// DefaultConfig is used when callers have no preference.
var DefaultConfig = Config{Limit: DefaultLimit}

// Arena tracks a growable region and the cumulative bytes granted to it.
type Arena struct {
	brk   Breaker
	size  int // cumulative bytes granted
	grows int // successful Grow calls
}

// New creates an arena with the break primitive selected by cfg.
func New(cfg Config) (*Arena, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = clampLimit(limit)

	var (
		b   Breaker
		err error
	)
	switch cfg.Backing {
	case BackingSlice:
		b = NewSliceBreaker(limit)
	case BackingMmap:
		if !mmapSupported {
			return nil, fmt.Errorf("arena: mmap backing not supported on this platform")
		}
		b, err = newDefaultBreaker(limit)
		if err != nil {
			return nil, err
		}
	case BackingAuto:
		b, err = newDefaultBreaker(limit)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("arena: unknown backing %d", cfg.Backing)
	}
	return NewWithBreaker(b), nil
}

// clampLimit bounds limit to what 32-bit block references can address. Where
// int is 32 bits wide no positive limit can exceed it.
func clampLimit(limit int) int {
	ceiling := uint64(format.MaxArenaSize)
	if uint64(limit) > ceiling {
		return int(ceiling)
	}
	return limit
}

// NewWithBreaker wraps an existing break primitive.
func NewWithBreaker(b Breaker) *Arena {
	return &Arena{brk: b}
}

// Grow extends the arena by exactly n bytes and returns the offset of the
// first granted byte. On failure the returned error wraps ErrOutOfMemory and
// no counter changes.
func (a *Arena) Grow(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadGrow, n)
	}
	off, err := a.brk.Brk(n)
	if err != nil {
		return 0, fmt.Errorf("%w: grow by %d bytes (arena size %d): %w", ErrOutOfMemory, n, a.size, err)
	}
	a.size += n
	a.grows++
	return off, nil
}

// Size returns the cumulative number of bytes granted. It never decreases.
func (a *Arena) Size() int { return a.size }

// Grows returns the number of successful Grow calls.
func (a *Arena) Grows() int { return a.grows }

// Bytes returns the granted region. Re-fetch after every Grow: the slice
// length changes even though its base does not.
func (a *Arena) Bytes() []byte { return a.brk.Bytes() }

// Close releases the backing memory.
func (a *Arena) Close() error { return a.brk.Close() }
