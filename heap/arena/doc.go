// Package arena provides the growable memory region a heap allocator carves
// blocks from, plus the break primitives that extend it.
//
// # Overview
//
// An Arena is a contiguous byte region that only ever grows at its top, the
// way a process data segment grows under sbrk(2). Grow(n) extends the region
// by exactly n bytes and returns the offset of the first new byte; bytes that
// were granted earlier never move, so offsets handed out stay valid for the
// lifetime of the Arena.
//
// The Arena also accumulates the total number of bytes ever granted, which is
// what allocators report as their arena size.
//
// # Break Primitives
//
// The actual memory comes from a Breaker:
//
//   - MmapBreaker (linux, darwin): reserves Limit bytes of address space with
//     PROT_NONE and commits pages with mprotect as the break advances.
//     Untouched reservation costs no physical memory.
//   - SliceBreaker: a fixed-capacity Go byte slice. Used on platforms without
//     mmap and in tests that need exhaustion at an exact byte count.
//
// # Usage Example
//
//	ar, err := arena.New(arena.Config{Limit: 64 << 20})
//	if err != nil {
//	    return err
//	}
//	defer ar.Close()
//
//	off, err := ar.Grow(4096)
//	if errors.Is(err, arena.ErrOutOfMemory) {
//	    // reservation exhausted, nothing changed
//	}
//	page := ar.Bytes()[off : off+4096]
//
// # Thread Safety
//
// Arena instances are not thread-safe. The owning allocator serializes access.
package arena
