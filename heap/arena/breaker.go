package arena

import "github.com/joshuapare/heapkit/internal/buf"

// Breaker is the raw "extend the break by n bytes" primitive.
//
// Implementations must never relocate bytes that were already granted: the
// slice returned by Bytes may grow between calls, but its base address and
// existing contents stay put.
type Breaker interface {
	// Brk extends the break by n bytes and returns the offset of the first new
	// byte. On failure the break is unchanged.
	Brk(n int) (int, error)

	// Bytes returns the granted region, from offset 0 up to the current break.
	Bytes() []byte

	// Close releases the backing memory. Subsequent Brk calls fail.
	Close() error
}

// SliceBreaker hands out bytes from a fixed-capacity Go slice.
type SliceBreaker struct {
	mem []byte
	brk int
}

// NewSliceBreaker creates a breaker able to grant up to limit bytes in total.
// The backing slice is allocated up front; the Go runtime obtains it as zeroed
// pages so untouched capacity is not resident.
func NewSliceBreaker(limit int) *SliceBreaker {
	if limit < 0 {
		limit = 0
	}
	return &SliceBreaker{mem: make([]byte, limit)}
}

// Brk implements Breaker.
func (s *SliceBreaker) Brk(n int) (int, error) {
	if s.mem == nil {
		return 0, ErrClosed
	}
	end, ok := buf.AddOverflowSafe(s.brk, n)
	if !ok || end > len(s.mem) {
		return 0, ErrExhausted
	}
	off := s.brk
	s.brk = end
	return off, nil
}

// Bytes implements Breaker.
func (s *SliceBreaker) Bytes() []byte {
	return s.mem[:s.brk:s.brk]
}

// Close implements Breaker.
func (s *SliceBreaker) Close() error {
	s.mem = nil
	s.brk = 0
	return nil
}
