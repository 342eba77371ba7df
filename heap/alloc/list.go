package alloc

import (
	"iter"

	"github.com/joshuapare/heapkit/internal/format"
)

// list is an intrusive doubly linked list threaded through block headers.
// prevOff and nextOff select which pair of header link fields it owns, so the
// Block Registry and the Free Index share this code while never touching each
// other's links.
//
// All operations are O(1) and repair head/tail at every boundary position.
type list struct {
	prevOff int
	nextOff int
	head    Ref
	tail    Ref
	n       int
}

func newList(prevOff, nextOff int) list {
	return list{prevOff: prevOff, nextOff: nextOff, head: InvalidRef, tail: InvalidRef}
}

func (l *list) prev(d []byte, r Ref) Ref { return format.ReadU32(d, int(r)+l.prevOff) }
func (l *list) next(d []byte, r Ref) Ref { return format.ReadU32(d, int(r)+l.nextOff) }

func (l *list) setPrev(d []byte, r, v Ref) { format.PutU32(d, int(r)+l.prevOff, v) }
func (l *list) setNext(d []byte, r, v Ref) { format.PutU32(d, int(r)+l.nextOff, v) }

// pushBack appends r at the tail.
func (l *list) pushBack(d []byte, r Ref) {
	l.setPrev(d, r, l.tail)
	l.setNext(d, r, InvalidRef)
	if l.tail == InvalidRef {
		l.head = r
	} else {
		l.setNext(d, l.tail, r)
	}
	l.tail = r
	l.n++
}

// insertAfter links r immediately after anchor.
func (l *list) insertAfter(d []byte, anchor, r Ref) {
	nx := l.next(d, anchor)
	l.setPrev(d, r, anchor)
	l.setNext(d, r, nx)
	l.setNext(d, anchor, r)
	if nx == InvalidRef {
		l.tail = r
	} else {
		l.setPrev(d, nx, r)
	}
	l.n++
}

// remove unlinks r and clears its links.
func (l *list) remove(d []byte, r Ref) {
	p, nx := l.prev(d, r), l.next(d, r)
	if p == InvalidRef {
		l.head = nx
	} else {
		l.setNext(d, p, nx)
	}
	if nx == InvalidRef {
		l.tail = p
	} else {
		l.setPrev(d, nx, p)
	}
	l.setPrev(d, r, InvalidRef)
	l.setNext(d, r, InvalidRef)
	l.n--
}

// replace puts r into old's position and clears old's links. r must not
// already be a member.
func (l *list) replace(d []byte, old, r Ref) {
	p, nx := l.prev(d, old), l.next(d, old)
	l.setPrev(d, r, p)
	l.setNext(d, r, nx)
	if p == InvalidRef {
		l.head = r
	} else {
		l.setNext(d, p, r)
	}
	if nx == InvalidRef {
		l.tail = r
	} else {
		l.setPrev(d, nx, r)
	}
	l.setPrev(d, old, InvalidRef)
	l.setNext(d, old, InvalidRef)
}

// all yields members head to tail. The callback must not mutate the list.
func (l *list) all(d []byte) iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		for r := l.head; r != InvalidRef; r = l.next(d, r) {
			if !yield(r) {
				return
			}
		}
	}
}
