package verify

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Heap is the read-only view of an allocator needed for verification.
// *alloc.Allocator satisfies it.
type Heap interface {
	Arena() []byte
	ArenaSize() int
	FreeSpace() int
	RegistryHead() uint32
	RegistryTail() uint32
	FreeHead() uint32
	FreeTail() uint32
}

// ValidationError describes one invariant violation.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants runs every check. Returns the first error encountered, or nil.
func AllInvariants(h Heap) error {
	blocks, err := registryBlocks(h)
	if err != nil {
		return err
	}
	if err := freeIndex(h, blocks); err != nil {
		return err
	}
	if err := coalesced(blocks); err != nil {
		return err
	}
	return conservation(h, blocks)
}

// Registry validates the address-ordered block list.
func Registry(h Heap) error {
	_, err := registryBlocks(h)
	return err
}

// FreeIndex validates the free list against the registry.
func FreeIndex(h Heap) error {
	blocks, err := registryBlocks(h)
	if err != nil {
		return err
	}
	return freeIndex(h, blocks)
}

// Coalesced validates that no two adjacent blocks are both free.
func Coalesced(h Heap) error {
	blocks, err := registryBlocks(h)
	if err != nil {
		return err
	}
	return coalesced(blocks)
}

// Conservation validates the free-space counter and the byte balance of the
// arena.
func Conservation(h Heap) error {
	blocks, err := registryBlocks(h)
	if err != nil {
		return err
	}
	return conservation(h, blocks)
}

// registryBlocks walks the registry, decoding and checking every block.
func registryBlocks(h Heap) ([]format.Block, error) {
	data := h.Arena()
	head, tail := h.RegistryHead(), h.RegistryTail()

	if len(data) != h.ArenaSize() {
		return nil, &ValidationError{
			Type:    "Registry",
			Message: fmt.Sprintf("arena view is %d bytes, arena size is %d", len(data), h.ArenaSize()),
			Offset:  -1,
		}
	}
	if head == format.InvalidRef || tail == format.InvalidRef {
		if head != tail {
			return nil, &ValidationError{
				Type:    "Registry",
				Message: fmt.Sprintf("head 0x%X and tail 0x%X disagree on emptiness", head, tail),
				Offset:  -1,
			}
		}
		if len(data) != 0 {
			return nil, &ValidationError{
				Type:    "Registry",
				Message: fmt.Sprintf("empty registry over %d arena bytes", len(data)),
				Offset:  -1,
			}
		}
		return nil, nil
	}
	if head != 0 {
		return nil, &ValidationError{
			Type:    "Registry",
			Message: "first block does not start at the arena base",
			Offset:  int(head),
		}
	}

	// Every block takes at least HeaderSize+1 bytes, which bounds the walk
	// even if the links form a cycle.
	limit := len(data)/(format.HeaderSize+1) + 1

	var blocks []format.Block
	prev := uint32(format.InvalidRef)
	want := uint32(0)
	for r := head; r != format.InvalidRef; {
		if len(blocks) >= limit {
			return nil, &ValidationError{
				Type:    "Registry",
				Message: fmt.Sprintf("more than %d blocks, links form a cycle", limit),
				Offset:  int(r),
			}
		}
		if r != want {
			return nil, &ValidationError{
				Type:    "Registry",
				Message: fmt.Sprintf("block found at 0x%X, previous block ends at 0x%X", r, want),
				Offset:  int(r),
				Details: map[string]any{"expected": want},
			}
		}
		b, err := format.ParseBlock(data, int(r))
		if err != nil {
			return nil, &ValidationError{Type: "Registry", Message: err.Error(), Offset: int(r)}
		}
		if b.Prev != prev {
			return nil, &ValidationError{
				Type:    "Registry",
				Message: fmt.Sprintf("back-link is 0x%X, expected 0x%X", b.Prev, prev),
				Offset:  int(r),
			}
		}
		blocks = append(blocks, b)
		prev, want = r, b.End()
		r = b.Next
	}

	if prev != tail {
		return nil, &ValidationError{
			Type:    "Registry",
			Message: fmt.Sprintf("walk ended at 0x%X, tail is 0x%X", prev, tail),
			Offset:  int(tail),
		}
	}
	if int(want) != len(data) {
		return nil, &ValidationError{
			Type:    "Registry",
			Message: fmt.Sprintf("last block ends at 0x%X, arena top is 0x%X", want, len(data)),
			Offset:  int(tail),
		}
	}
	return blocks, nil
}

func freeIndex(h Heap, blocks []format.Block) error {
	data := h.Arena()
	head, tail := h.FreeHead(), h.FreeTail()

	free := make(map[uint32]bool)
	for _, b := range blocks {
		if !b.Occupied {
			free[b.Offset] = false
		}
	}

	if (head == format.InvalidRef) != (tail == format.InvalidRef) {
		return &ValidationError{
			Type:    "FreeIndex",
			Message: fmt.Sprintf("head 0x%X and tail 0x%X disagree on emptiness", head, tail),
			Offset:  -1,
		}
	}

	prev := uint32(format.InvalidRef)
	for r := head; r != format.InvalidRef; {
		seen, ok := free[r]
		if !ok {
			return &ValidationError{
				Type:    "FreeIndex",
				Message: "entry is not a free block of the registry",
				Offset:  int(r),
			}
		}
		if seen {
			return &ValidationError{
				Type:    "FreeIndex",
				Message: "entry appears twice",
				Offset:  int(r),
			}
		}
		free[r] = true

		fp := format.ReadU32(data, int(r)+format.FreePrevOffset)
		if fp != prev {
			return &ValidationError{
				Type:    "FreeIndex",
				Message: fmt.Sprintf("back-link is 0x%X, expected 0x%X", fp, prev),
				Offset:  int(r),
			}
		}
		prev = r
		r = format.ReadU32(data, int(r)+format.FreeNextOffset)
	}

	if prev != tail {
		return &ValidationError{
			Type:    "FreeIndex",
			Message: fmt.Sprintf("walk ended at 0x%X, tail is 0x%X", prev, tail),
			Offset:  int(tail),
		}
	}
	for off, seen := range free {
		if !seen {
			return &ValidationError{
				Type:    "FreeIndex",
				Message: "free block missing from the index",
				Offset:  int(off),
			}
		}
	}
	return nil
}

func coalesced(blocks []format.Block) error {
	for i := 1; i < len(blocks); i++ {
		if !blocks[i-1].Occupied && !blocks[i].Occupied {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("adjacent free blocks at 0x%X and 0x%X", blocks[i-1].Offset, blocks[i].Offset),
				Offset:  int(blocks[i].Offset),
			}
		}
	}
	return nil
}

func conservation(h Heap, blocks []format.Block) error {
	var free, used int
	for _, b := range blocks {
		if b.Occupied {
			used += int(b.Size)
		} else {
			free += int(b.Size)
		}
	}
	if free != h.FreeSpace() {
		return &ValidationError{
			Type:    "Conservation",
			Message: fmt.Sprintf("free space counter is %d, free blocks hold %d", h.FreeSpace(), free),
			Offset:  -1,
			Details: map[string]any{"counter": h.FreeSpace(), "actual": free},
		}
	}
	total := free + used + len(blocks)*format.HeaderSize
	if total != h.ArenaSize() {
		return &ValidationError{
			Type:    "Conservation",
			Message: fmt.Sprintf("blocks account for %d bytes, arena size is %d", total, h.ArenaSize()),
			Offset:  -1,
			Details: map[string]any{"free": free, "used": used, "blocks": len(blocks)},
		}
	}
	return nil
}
