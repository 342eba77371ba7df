package alloc

import "github.com/joshuapare/heapkit/internal/format"

// release marks r free and merges it with free physical neighbors.
//
// A free successor is absorbed into r, and r inherits the successor's Free
// Index slot. A free predecessor then absorbs r. A block absorbed by its
// predecessor never enters the Free Index on its own, so the index gains at
// most one entry per release.
func (a *Allocator) release(r Ref) {
	size := a.blockSize(r)
	a.setOccupied(r, false)
	a.freeSpace += int(size)

	indexed := false
	if next := a.reg.next(a.data, r); next != InvalidRef && !a.isOccupied(next) {
		size += format.HeaderSize + a.blockSize(next)
		a.setBlockSize(r, size)
		a.reg.unlink(a.data, next)
		a.free.swap(a.data, next, r)
		a.retire(next)
		a.freeSpace += format.HeaderSize
		a.stats.CoalesceForward++
		indexed = true
	}

	if prev := a.reg.prev(a.data, r); prev != InvalidRef && !a.isOccupied(prev) {
		a.setBlockSize(prev, a.blockSize(prev)+format.HeaderSize+size)
		a.reg.unlink(a.data, r)
		if indexed {
			a.free.drop(a.data, r)
		}
		a.retire(r)
		a.freeSpace += format.HeaderSize
		a.stats.CoalesceBackward++
		return
	}

	if !indexed {
		a.free.add(a.data, r)
	}
}
