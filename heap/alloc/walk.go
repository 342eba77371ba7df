package alloc

import "iter"

func (a *Allocator) info(r Ref) BlockInfo {
	return BlockInfo{
		Ref:      r,
		Ptr:      payloadOf(r),
		Size:     int(a.blockSize(r)),
		Occupied: a.isOccupied(r),
	}
}

// Blocks yields every block in address order. The allocator must not be
// mutated during iteration.
func (a *Allocator) Blocks() iter.Seq[BlockInfo] {
	return func(yield func(BlockInfo) bool) {
		for r := range a.reg.all(a.data) {
			if !yield(a.info(r)) {
				return
			}
		}
	}
}

// FreeBlocks yields the Free Index in search order.
func (a *Allocator) FreeBlocks() iter.Seq[BlockInfo] {
	return func(yield func(BlockInfo) bool) {
		for r := range a.free.all(a.data) {
			if !yield(a.info(r)) {
				return
			}
		}
	}
}
