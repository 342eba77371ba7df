package alloc

import "github.com/joshuapare/heapkit/internal/format"

// freeIndex holds exactly the blocks whose occupied flag is clear. Insertion
// is tail-append, so order reflects release history rather than size or
// address, and searches are linear.
type freeIndex struct {
	list
}

func newFreeIndex() freeIndex {
	return freeIndex{newList(format.FreePrevOffset, format.FreeNextOffset)}
}

// add appends r at the tail.
func (f *freeIndex) add(d []byte, r Ref) { f.pushBack(d, r) }

// drop removes r.
func (f *freeIndex) drop(d []byte, r Ref) { f.remove(d, r) }

// swap gives r the slot old occupied.
func (f *freeIndex) swap(d []byte, old, r Ref) { f.replace(d, old, r) }
