package alloc

// Stats holds operation counters.
type Stats struct {
	AllocCalls       int   // Total allocation requests, including rejected ones
	AllocFastPath    int   // Served from the Free Index
	AllocSlowPath    int   // Served by growing the arena
	AllocFailures    int   // Out of memory
	FreeCalls        int   // Non-nil releases
	GrowCalls        int   // Successful arena growths
	GrowBytes        int64 // Bytes added by arena growth
	SplitCount       int   // Free blocks split into used + residual
	WholeReuse       int   // Free blocks handed out whole
	CoalesceForward  int   // Merges with a free successor
	CoalesceBackward int   // Merges into a free predecessor
}

// Stats returns the current counters.
func (a *Allocator) Stats() Stats { return a.stats }

// Metrics is a point-in-time view of arena usage, computed by walking the
// registry.
type Metrics struct {
	ArenaSize   int // Bytes obtained from the break primitive
	FreeSpace   int // Payload bytes in free blocks
	InUse       int // Payload bytes in occupied blocks
	Blocks      int // Registry entries
	FreeBlocks  int // Free Index entries
	LargestFree int // Largest free payload, 0 if none

	// FreeRatio is FreeSpace / ArenaSize.
	FreeRatio float64

	// Fragmentation is 1 - LargestFree/FreeSpace: 0 when all free space is one
	// block, approaching 1 as it scatters.
	Fragmentation float64
}

// Metrics computes a usage snapshot. Cost is linear in the number of blocks.
func (a *Allocator) Metrics() Metrics {
	m := Metrics{
		ArenaSize:  a.arena.Size(),
		FreeSpace:  a.freeSpace,
		Blocks:     a.reg.n,
		FreeBlocks: a.free.n,
	}
	for r := range a.reg.all(a.data) {
		size := int(a.blockSize(r))
		if a.isOccupied(r) {
			m.InUse += size
		} else if size > m.LargestFree {
			m.LargestFree = size
		}
	}
	if m.ArenaSize > 0 {
		m.FreeRatio = float64(m.FreeSpace) / float64(m.ArenaSize)
	}
	if m.FreeSpace > 0 {
		m.Fragmentation = 1 - float64(m.LargestFree)/float64(m.FreeSpace)
	}
	return m
}
