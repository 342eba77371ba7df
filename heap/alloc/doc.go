// Package alloc implements a heap allocator over a single growable arena.
//
// # Overview
//
// Every block carved from the arena starts with an inline 24-byte header
// (see internal/format) holding its payload size, an occupied flag and two
// pairs of links. Blocks are threaded onto two intrusive lists:
//
//   - The Block Registry: all blocks in ascending address order. Physical
//     neighbors are always registry neighbors, which is what makes
//     coalescing O(1).
//   - The Free Index: exactly the free blocks, in the order they were
//     released. Searches walk it head to tail.
//
// # Allocation
//
// Two fit policies search the Free Index:
//
//	FirstFit  first block with size >= request
//	BestFit   block with the least slack; exact fit stops the scan,
//	          ties keep the earlier block
//
// A chosen block is split when the slack can hold a header plus at least one
// byte; the residual takes the block's Free Index slot. When nothing fits the
// arena grows by request+HeaderSize and the new block is appended to the
// registry tail.
//
// # Release
//
// Free marks the block free and merges it with a free successor, then with a
// free predecessor, so no two adjacent blocks are ever both free.
//
// # Accounting
//
// ArenaSize is the cumulative number of bytes obtained from the arena and
// never decreases. FreeSpace is the payload bytes of free blocks; headers are
// never counted. Together with the in-use payload they satisfy:
//
//	ArenaSize = FreeSpace + InUse + Blocks*HeaderSize
//
// # Usage Example
//
//	a, err := alloc.New(arena.DefaultConfig, nil)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	p, err := a.AllocBestFit(128)
//	if err != nil {
//	    return err
//	}
//	copy(a.Bytes(p), payload)
//	a.Free(p)
//
// # Logging
//
// Set HEAPKIT_LOG_ALLOC to log arena growth to stderr, or pass a logger in
// Options.
package alloc
