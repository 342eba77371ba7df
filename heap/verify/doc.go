// Package verify checks the structural invariants of a heap arena.
//
// It decodes the raw arena bytes and the list heads exposed by an allocator
// and reports the first violation found. It is used heavily by tests after
// every mutating operation, and is cheap enough for callers to run in debug
// builds.
//
// # Quick Start
//
//	if err := verify.AllInvariants(a); err != nil {
//	    log.Fatalf("heap corrupted: %v", err)
//	}
//
// # Checks
//
//   - Registry: blocks tile the arena from offset 0 in ascending order with
//     consistent back-links, and the tail ends exactly at the arena top.
//   - FreeIndex: links are consistent and the members are exactly the free
//     blocks of the registry.
//   - Coalesced: no two registry-adjacent blocks are both free.
//   - Conservation: FreeSpace equals the free payload, and
//     ArenaSize = FreeSpace + in-use payload + blocks*HeaderSize.
//
// # ValidationError
//
// Every failure is a *ValidationError:
//
//	type ValidationError struct {
//	    Type    string         // Check that failed, e.g. "Registry"
//	    Message string         // Human-readable description
//	    Offset  int            // Block offset, -1 if not tied to a block
//	    Details map[string]any // Additional context
//	}
package verify
