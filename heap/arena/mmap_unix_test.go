//go:build linux || darwin

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestMmapBreaker_CommitsWholePages verifies the read/write prefix tracks the break page by page.
func TestMmapBreaker_CommitsWholePages(t *testing.T) {
	page := unix.Getpagesize()
	m, err := NewMmapBreaker(4 * page)
	require.NoError(t, err)
	defer m.Close()

	off, err := m.Brk(10)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Equal(t, page, m.Committed())

	off, err = m.Brk(page)
	require.NoError(t, err)
	assert.Equal(t, 10, off)
	assert.Equal(t, 2*page, m.Committed())

	// Every granted byte must be writable.
	b := m.Bytes()
	require.Len(t, b, page+10)
	for i := range b {
		b[i] = byte(i)
	}
	assert.Equal(t, byte(9), b[9])
}

// TestMmapBreaker_Exhaustion verifies the reservation bounds the break.
func TestMmapBreaker_Exhaustion(t *testing.T) {
	page := unix.Getpagesize()
	m, err := NewMmapBreaker(page)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Brk(page)
	require.NoError(t, err)

	_, err = m.Brk(1)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, m.Bytes(), page)
}

// TestMmapBreaker_CloseTwice verifies Close is idempotent and disables Brk.
func TestMmapBreaker_CloseTwice(t *testing.T) {
	m, err := NewMmapBreaker(1 << 16)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err = m.Brk(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, m.Bytes())
}

// TestNew_MmapBacking verifies the default backing is an mmap reservation on unix.
func TestNew_MmapBacking(t *testing.T) {
	ar, err := New(Config{Limit: 1 << 20, Backing: BackingMmap})
	require.NoError(t, err)
	defer ar.Close()

	_, ok := ar.brk.(*MmapBreaker)
	require.True(t, ok)

	off, err := ar.Grow(124)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Equal(t, 124, ar.Size())
}

// TestNewMmapBreaker_InvalidLimit verifies non-positive reservations are rejected.
func TestNewMmapBreaker_InvalidLimit(t *testing.T) {
	_, err := NewMmapBreaker(0)
	require.Error(t, err)
}
