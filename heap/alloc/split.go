package alloc

import "github.com/joshuapare/heapkit/internal/format"

// split hands out free block r for a request of need bytes and returns its
// payload pointer.
//
// When the slack could not hold a header plus at least one payload byte the
// whole block is handed out. Otherwise r is trimmed to need bytes and the tail
// becomes a residual free block that takes r's place in the Free Index and
// follows r in the registry.
func (a *Allocator) split(r Ref, need uint32) Ptr {
	size := a.blockSize(r)

	if size-need <= format.HeaderSize {
		a.free.drop(a.data, r)
		a.setOccupied(r, true)
		a.freeSpace -= int(size)
		a.stats.WholeReuse++
		return payloadOf(r)
	}

	rest := r + format.HeaderSize + need
	a.initBlock(rest, size-need-format.HeaderSize, false)
	a.reg.insertAfter(a.data, r, rest)
	a.free.swap(a.data, r, rest)

	a.setBlockSize(r, need)
	a.setOccupied(r, true)
	a.freeSpace -= int(need) + format.HeaderSize
	a.stats.SplitCount++
	return payloadOf(r)
}
