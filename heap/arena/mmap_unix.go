//go:build linux || darwin

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/heapkit/internal/buf"
)

// MmapBreaker emulates sbrk over an anonymous mapping. The whole reservation
// is mapped PROT_NONE up front so the region never moves; pages become
// readable and writable as the break passes them.
type MmapBreaker struct {
	mem       []byte // full reservation
	brk       int    // current break
	committed int    // page-aligned end of the read/write prefix
	page      int
}

// NewMmapBreaker reserves limit bytes (rounded up to whole pages) of address
// space.
func NewMmapBreaker(limit int) (*MmapBreaker, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("arena: invalid mmap limit %d", limit)
	}
	page := unix.Getpagesize()
	size := alignUp(limit, page)

	mem, err := unix.Mmap(
		-1,
		0,
		size,
		unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_NORESERVE,
	)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap reserve %d bytes: %w", size, err)
	}
	return &MmapBreaker{mem: mem, page: page}, nil
}

// Brk implements Breaker.
func (m *MmapBreaker) Brk(n int) (int, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	end, ok := buf.AddOverflowSafe(m.brk, n)
	if !ok || end > len(m.mem) {
		return 0, ErrExhausted
	}

	if end > m.committed {
		next := alignUp(end, m.page)
		if err := unix.Mprotect(m.mem[m.committed:next], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("arena: mprotect [0x%X, 0x%X): %w", m.committed, next, err)
		}
		m.committed = next
	}

	off := m.brk
	m.brk = end
	return off, nil
}

// Bytes implements Breaker.
func (m *MmapBreaker) Bytes() []byte {
	if m.mem == nil {
		return nil
	}
	return m.mem[:m.brk:m.brk]
}

// Close implements Breaker. Closing twice is a no-op.
func (m *MmapBreaker) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	m.brk = 0
	m.committed = 0
	return err
}

// Committed returns the number of bytes currently mapped read/write.
func (m *MmapBreaker) Committed() int { return m.committed }

const mmapSupported = true

func newDefaultBreaker(limit int) (Breaker, error) {
	m, err := NewMmapBreaker(limit)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
