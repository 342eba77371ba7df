package alloc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Allocator carves blocks out of a single growable arena.
//
// It is not safe for concurrent use. Callers serialize access externally.
type Allocator struct {
	arena *arena.Arena
	data  []byte // arena.Bytes(), re-fetched after growth

	reg  registry
	free freeIndex

	freeSpace int // payload bytes of free blocks
	policy    Policy

	log   *slog.Logger
	debug bool // log at debug level; computed once, checked on hot paths

	stats  Stats
	closed bool

	// onGrow is called before every arena growth with the byte count (test hook).
	onGrow func(n int)
}

// New creates an arena from cfg and an allocator that owns it. A nil opts
// selects DefaultOptions.
func New(cfg arena.Config, opts *Options) (*Allocator, error) {
	ar, err := arena.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("alloc: create arena: %w", err)
	}
	a, err := NewWithArena(ar, opts)
	if err != nil {
		_ = ar.Close()
		return nil, err
	}
	return a, nil
}

// NewWithArena creates an allocator over ar, which must not have granted any
// bytes yet. The allocator takes ownership: Close closes ar.
func NewWithArena(ar *arena.Arena, opts *Options) (*Allocator, error) {
	if ar.Size() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrArenaInUse, ar.Size())
	}
	if opts == nil {
		opts = &DefaultOptions
	}
	if opts.Policy != FirstFit && opts.Policy != BestFit {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, opts.Policy)
	}
	log := opts.Logger
	if log == nil {
		log = logger.L
	}
	return &Allocator{
		arena:  ar,
		data:   ar.Bytes(),
		reg:    newRegistry(),
		free:   newFreeIndex(),
		policy: opts.Policy,
		log:    log,
		debug:  log.Enabled(context.Background(), slog.LevelDebug),
	}, nil
}

// AllocFirstFit allocates size bytes using the first free block large enough.
func (a *Allocator) AllocFirstFit(size int) (Ptr, error) { return a.alloc(size, FirstFit) }

// AllocBestFit allocates size bytes using the free block with the least slack.
func (a *Allocator) AllocBestFit(size int) (Ptr, error) { return a.alloc(size, BestFit) }

// Alloc allocates size bytes using the configured policy.
func (a *Allocator) Alloc(size int) (Ptr, error) { return a.alloc(size, a.policy) }

func (a *Allocator) alloc(size int, p Policy) (Ptr, error) {
	a.stats.AllocCalls++
	if a.closed {
		return NilPtr, ErrClosed
	}
	if size <= 0 {
		return NilPtr, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if uint64(size) > format.MaxArenaSize-format.HeaderSize {
		a.stats.AllocFailures++
		return NilPtr, fmt.Errorf("%w: request of %d bytes exceeds the 32-bit arena", ErrOutOfMemory, size)
	}
	need := uint32(size)

	r, err := a.search(need, p)
	if err != nil {
		return NilPtr, fmt.Errorf("%w: %d", err, p)
	}
	if r != InvalidRef {
		a.stats.AllocFastPath++
		return a.split(r, need), nil
	}

	ptr, err := a.grow(need)
	if err != nil {
		a.stats.AllocFailures++
		a.log.Warn("allocation failed",
			"size", size,
			"policy", p.String(),
			"arena_size", a.arena.Size(),
			"free_space", a.freeSpace,
			"err", err)
		return NilPtr, err
	}
	a.stats.AllocSlowPath++
	return ptr, nil
}

// grow obtains need+HeaderSize bytes at the top of the arena and turns them
// into an occupied block at the registry tail. Nothing changes on failure.
func (a *Allocator) grow(need uint32) (Ptr, error) {
	total, ok := buf.AddU32(need, format.HeaderSize)
	if !ok || uint64(a.arena.Size())+uint64(total) > format.MaxArenaSize {
		return NilPtr, fmt.Errorf("%w: arena of %d bytes cannot grow by %d", ErrOutOfMemory, a.arena.Size(), uint64(need)+format.HeaderSize)
	}
	if a.onGrow != nil {
		a.onGrow(int(total))
	}
	off, err := a.arena.Grow(int(total))
	if err != nil {
		return NilPtr, err
	}
	a.data = a.arena.Bytes()

	r := Ref(off)
	a.initBlock(r, need, true)
	a.reg.appendTail(a.data, r)

	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(total)
	if a.debug {
		a.log.Debug("arena grown",
			"bytes", total,
			"block", r,
			"arena_size", a.arena.Size(),
			"blocks", a.reg.n)
	}
	return payloadOf(r), nil
}

// Free releases the block whose payload starts at p. Free(NilPtr) is a no-op.
//
// Releasing anything other than the payload pointer of a live allocation is a
// contract violation: Free logs it and panics with an error wrapping
// ErrInvalidRelease.
func (a *Allocator) Free(p Ptr) {
	if p == NilPtr {
		return
	}
	r, err := a.blockOf(p)
	if err != nil {
		a.log.Error("invalid release", "ptr", uint32(p), "err", err)
		panic(err)
	}
	a.stats.FreeCalls++
	a.release(r)
}

// ArenaSize returns the cumulative bytes obtained from the break primitive.
func (a *Allocator) ArenaSize() int { return a.arena.Size() }

// FreeSpace returns the payload bytes held by free blocks. Header bytes are
// never counted.
func (a *Allocator) FreeSpace() int { return a.freeSpace }

// Policy returns the policy used by Alloc.
func (a *Allocator) Policy() Policy { return a.policy }

// Bytes returns the payload of the occupied block at p, with len and cap equal
// to the block size. It returns nil when p is not a live allocation. The slice
// stays valid until p is freed.
func (a *Allocator) Bytes(p Ptr) []byte {
	r, err := a.blockOf(p)
	if err != nil {
		return nil
	}
	b, _ := buf.Slice(a.data, int(p), int(a.blockSize(r)))
	return b
}

// Arena returns the raw arena bytes. Read-only.
func (a *Allocator) Arena() []byte { return a.data }

// RegistryHead returns the lowest-addressed block, or InvalidRef.
func (a *Allocator) RegistryHead() Ref { return a.reg.head }

// RegistryTail returns the highest-addressed block, or InvalidRef.
func (a *Allocator) RegistryTail() Ref { return a.reg.tail }

// FreeHead returns the first Free Index entry, or InvalidRef.
func (a *Allocator) FreeHead() Ref { return a.free.head }

// FreeTail returns the last Free Index entry, or InvalidRef.
func (a *Allocator) FreeTail() Ref { return a.free.tail }

// Close releases the arena. Later allocations fail with ErrClosed and every
// previously returned pointer becomes invalid.
func (a *Allocator) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.data = nil
	a.reg = newRegistry()
	a.free = newFreeIndex()
	a.freeSpace = 0
	return a.arena.Close()
}
