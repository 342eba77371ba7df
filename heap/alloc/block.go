package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Header accessors. All read and write a.data, which must be re-fetched from
// the arena after every growth.

func (a *Allocator) blockSize(r Ref) uint32 {
	return format.ReadU32(a.data, int(r)+format.SizeOffset)
}

func (a *Allocator) setBlockSize(r Ref, size uint32) {
	format.PutU32(a.data, int(r)+format.SizeOffset, size)
}

func (a *Allocator) isOccupied(r Ref) bool {
	return format.ReadU32(a.data, int(r)+format.FlagsOffset)&format.FlagOccupied != 0
}

func (a *Allocator) setOccupied(r Ref, occupied bool) {
	format.PutU32(a.data, int(r)+format.FlagsOffset, format.Flags(occupied))
}

// initBlock writes a fresh header at r with every link cleared.
func (a *Allocator) initBlock(r Ref, size uint32, occupied bool) {
	format.PutBlock(a.data, format.Block{
		Offset:   r,
		Size:     size,
		Occupied: occupied,
		Prev:     InvalidRef,
		Next:     InvalidRef,
		FreePrev: InvalidRef,
		FreeNext: InvalidRef,
	})
}

// retire clears the header of a block absorbed by its predecessor so a stale
// pointer into it can no longer pass blockOf.
func (a *Allocator) retire(r Ref) {
	format.PutU32(a.data, int(r)+format.FlagsOffset, 0)
}

func payloadOf(r Ref) Ptr { return Ptr(r + format.HeaderSize) }

// blockOf is the one place a payload pointer is turned back into its header.
// It reports ErrInvalidRelease unless p is the payload of an occupied block
// currently linked into the registry.
func (a *Allocator) blockOf(p Ptr) (Ref, error) {
	if uint32(p) < format.HeaderSize || !buf.Has(a.data, int(p)-format.HeaderSize, format.HeaderSize) {
		return InvalidRef, fmt.Errorf("%w: pointer 0x%X is outside the arena", ErrInvalidRelease, uint32(p))
	}
	r := Ref(p) - format.HeaderSize
	flags := format.ReadU32(a.data, int(r)+format.FlagsOffset)
	if !format.HasSignature(flags) {
		return InvalidRef, fmt.Errorf("%w: no block header before pointer 0x%X", ErrInvalidRelease, uint32(p))
	}
	if flags&format.FlagOccupied == 0 {
		return InvalidRef, fmt.Errorf("%w: block at 0x%X is already free", ErrInvalidRelease, r)
	}
	prev := a.reg.prev(a.data, r)
	if prev == InvalidRef {
		if a.reg.head != r {
			return InvalidRef, fmt.Errorf("%w: block at 0x%X is not linked", ErrInvalidRelease, r)
		}
	} else if !buf.Has(a.data, int(prev), format.HeaderSize) || a.reg.next(a.data, prev) != r {
		return InvalidRef, fmt.Errorf("%w: block at 0x%X is not linked", ErrInvalidRelease, r)
	}
	return r, nil
}
