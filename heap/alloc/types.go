package alloc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/internal/format"
)

// Ref is the arena offset of a block header.
type Ref = uint32

// InvalidRef is the nil Ref.
const InvalidRef Ref = format.InvalidRef

// HeaderSize is the per-block metadata overhead in bytes.
const HeaderSize = format.HeaderSize

// Ptr is the arena offset of a block payload, the value handed to callers.
// No payload can start at offset 0, so the zero Ptr is the nil pointer.
type Ptr uint32

// NilPtr is the nil payload pointer.
const NilPtr Ptr = 0

// Policy selects how a free block is chosen for a request.
type Policy uint8

const (
	// FirstFit takes the first free block, in Free Index order, that is large enough.
	FirstFit Policy = iota
	// BestFit takes the free block leaving the least slack.
	BestFit
)

func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	default:
		return "unknown"
	}
}

// BlockInfo describes one block for read-only traversal.
type BlockInfo struct {
	Ref      Ref  // Header offset
	Ptr      Ptr  // Payload offset
	Size     int  // Payload bytes
	Occupied bool // Handed out and not yet released
}

// Options configures an Allocator.
type Options struct {
	// Policy used by Alloc. AllocFirstFit and AllocBestFit ignore it.
	Policy Policy

	// Logger receives allocator diagnostics. Default: logger.L.
	Logger *slog.Logger
}

// DefaultOptions is used when New is given nil options.
var DefaultOptions = Options{Policy: FirstFit}
