package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPutReadU32 tests little-endian placement and round trip at an unaligned offset.
func TestPutReadU32(t *testing.T) {
	b := make([]byte, 8)
	PutU32(b, 2, 0xDEADBEEF)

	assert.Equal(t, []byte{0, 0, 0xEF, 0xBE, 0xAD, 0xDE, 0, 0}, b)
	assert.Equal(t, uint32(0xDEADBEEF), ReadU32(b, 2))
}
