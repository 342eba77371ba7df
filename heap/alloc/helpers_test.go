package alloc

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/heap/verify"
)

// testLimit bounds every test arena.
const testLimit = 1 << 20

// newTestAllocator creates an allocator over a slice-backed arena so
// exhaustion is deterministic on every platform.
func newTestAllocator(t testing.TB, limit int, opts *Options) *Allocator {
	t.Helper()

	a, err := New(testArenaConfig(limit), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// testArenaConfig selects a slice-backed arena of the given limit.
func testArenaConfig(limit int) arena.Config {
	return arena.Config{Limit: limit, Backing: arena.BackingSlice}
}

// mustAlloc allocates with the given policy and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, p Policy, size int) Ptr {
	t.Helper()

	ptr, err := a.alloc(size, p)
	require.NoError(t, err, "alloc(%d, %s)", size, p)
	require.NotEqual(t, NilPtr, ptr)
	return ptr
}

// allocN allocates one block per size with First-Fit.
func allocN(t testing.TB, a *Allocator, sizes ...int) []Ptr {
	t.Helper()

	ptrs := make([]Ptr, len(sizes))
	for i, n := range sizes {
		ptrs[i] = mustAlloc(t, a, FirstFit, n)
	}
	return ptrs
}

// verifyAll runs every structural check.
func verifyAll(a *Allocator) error { return verify.AllInvariants(a) }

// requireInvariants runs the full verifier.
func requireInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, verifyAll(a))
}

// registryRefs returns the registry in address order.
func registryRefs(a *Allocator) []Ref {
	return slices.Collect(a.reg.all(a.data))
}

// freeRefs returns the Free Index in search order.
func freeRefs(a *Allocator) []Ref {
	return slices.Collect(a.free.all(a.data))
}

// refOf is the header offset of a payload pointer.
func refOf(p Ptr) Ref { return Ref(p) - HeaderSize }

// recoverPanic runs fn and returns the value it panicked with, or nil.
func recoverPanic(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// requireInvalidRelease asserts that Free(p) panics with ErrInvalidRelease
// and leaves the heap intact.
func requireInvalidRelease(t *testing.T, a *Allocator, p Ptr) {
	t.Helper()

	before := a.FreeSpace()
	v := recoverPanic(func() { a.Free(p) })
	require.NotNil(t, v, "Free(0x%X) should panic", uint32(p))
	err, ok := v.(error)
	require.True(t, ok, "panic value should be an error, got %T", v)
	require.ErrorIs(t, err, ErrInvalidRelease)
	require.Equal(t, before, a.FreeSpace())
	requireInvariants(t, a)
}
