//go:build !linux && !darwin

package arena

const mmapSupported = false

// newDefaultBreaker falls back to a heap-backed slice where mmap is unavailable.
func newDefaultBreaker(limit int) (Breaker, error) {
	return NewSliceBreaker(limit), nil
}
