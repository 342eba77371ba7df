package alloc

import "github.com/joshuapare/heapkit/internal/format"

// registry is the Block Registry: every block carved from the arena, used or
// free, in ascending address order. It is the only source of physical
// adjacency. Order changes only when the Splitter inserts a residual or the
// Coalescer removes an absorbed block.
type registry struct {
	list
}

func newRegistry() registry {
	return registry{newList(format.PrevOffset, format.NextOffset)}
}

// appendTail adds a block created by arena growth at the end of the arena.
func (g *registry) appendTail(d []byte, r Ref) { g.pushBack(d, r) }

// insertAfter adds r as the immediate physical successor of anchor.
func (g *registry) insertAfter(d []byte, anchor, r Ref) { g.list.insertAfter(d, anchor, r) }

// unlink removes r from the registry.
func (g *registry) unlink(d []byte, r Ref) { g.remove(d, r) }
