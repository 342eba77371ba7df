package format

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Block is the decoded form of a block header plus its location.
//
// Header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Payload size. Always > 0 for a live block.
//	0x04    4     Flags. Bit 0 set => occupied. Upper half holds BlockSignature.
//	0x08    16    Registry prev/next, free-index prev/next (InvalidRef = none).
//	0x18    ...   Payload.
type Block struct {
	Offset   uint32 // Offset of the header from the arena base
	Size     uint32 // Payload bytes (excludes header)
	Occupied bool   // True while the payload belongs to a caller
	Prev     uint32
	Next     uint32
	FreePrev uint32
	FreeNext uint32
}

// End returns the offset one past the last payload byte, which is where the
// physically following block starts.
func (b Block) End() uint32 { return b.Offset + HeaderSize + b.Size }

// Flags encodes the flags word for a live header.
func Flags(occupied bool) uint32 {
	f := uint32(BlockSignature) << signatureShift
	if occupied {
		f |= FlagOccupied
	}
	return f
}

// HasSignature reports whether a flags word belongs to a live header.
func HasSignature(flags uint32) bool {
	return flags>>signatureShift == BlockSignature
}

// ParseBlock decodes the header located at off within b. It validates the
// signature, a non-zero size and that the payload lies inside b.
func ParseBlock(b []byte, off int) (Block, error) {
	head, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return Block{}, fmt.Errorf("block at 0x%X: %w", off, ErrTruncated)
	}
	flags := ReadU32(head, FlagsOffset)
	if !HasSignature(flags) {
		return Block{}, fmt.Errorf("block at 0x%X: %w", off, ErrSignatureMismatch)
	}
	size := ReadU32(head, SizeOffset)
	if size == 0 {
		return Block{}, fmt.Errorf("block at 0x%X: %w", off, ErrZeroSize)
	}
	if !buf.Has(b, off+HeaderSize, int(size)) {
		return Block{}, fmt.Errorf("block at 0x%X: payload of %d bytes: %w", off, size, ErrTruncated)
	}
	return Block{
		Offset:   uint32(off),
		Size:     size,
		Occupied: flags&FlagOccupied != 0,
		Prev:     ReadU32(head, PrevOffset),
		Next:     ReadU32(head, NextOffset),
		FreePrev: ReadU32(head, FreePrevOffset),
		FreeNext: ReadU32(head, FreeNextOffset),
	}, nil
}

// PutBlock writes the header for blk at blk.Offset. The caller must ensure the
// header fits within b.
func PutBlock(b []byte, blk Block) {
	off := int(blk.Offset)
	PutU32(b, off+SizeOffset, blk.Size)
	PutU32(b, off+FlagsOffset, Flags(blk.Occupied))
	PutU32(b, off+PrevOffset, blk.Prev)
	PutU32(b, off+NextOffset, blk.Next)
	PutU32(b, off+FreePrevOffset, blk.FreePrev)
	PutU32(b, off+FreeNextOffset, blk.FreeNext)
}
