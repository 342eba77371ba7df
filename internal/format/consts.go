// Package format houses the low-level layout of the inline block header that
// prefixes every block carved from a heap arena. Higher-level packages decode
// and mutate headers exclusively through these helpers so the byte layout is
// defined in one place.
package format

const (
	// HeaderSize is the number of bytes occupied by the header preceding every
	// block payload, free or in use.
	HeaderSize = 0x18

	// Header field offsets (little-endian, 4 bytes each):
	//
	//	Offset  Size  Field
	//	0x00    4     Payload size in bytes (excludes the header)
	//	0x04    4     Flags: bit 0 = occupied, bits 16..31 = BlockSignature
	//	0x08    4     Registry previous (address order)
	//	0x0C    4     Registry next
	//	0x10    4     Free-index previous
	//	0x14    4     Free-index next
	SizeOffset     = 0x00
	FlagsOffset    = 0x04
	PrevOffset     = 0x08
	NextOffset     = 0x0C
	FreePrevOffset = 0x10
	FreeNextOffset = 0x14

	// FlagOccupied marks a block handed out to a caller and not yet released.
	FlagOccupied = 0x1

	// BlockSignature occupies the upper half of the flags word of every live
	// header ("HK"). Headers absorbed by coalescing have it cleared.
	BlockSignature = 0x484B

	// signatureShift positions BlockSignature inside the flags word.
	signatureShift = 16

	// InvalidRef is the nil link value for every header reference field.
	InvalidRef = 0xFFFFFFFF

	// MaxArenaSize is the largest arena addressable by 32-bit references. The
	// top value is reserved for InvalidRef.
	MaxArenaSize = InvalidRef - 1
)
