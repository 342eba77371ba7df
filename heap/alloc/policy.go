package alloc

// firstFit returns the first free block, in Free Index order, whose size is
// at least need.
func (a *Allocator) firstFit(need uint32) Ref {
	for r := a.free.head; r != InvalidRef; r = a.free.next(a.data, r) {
		if a.blockSize(r) >= need {
			return r
		}
	}
	return InvalidRef
}

// bestFit returns the free block with the smallest slack for need. An exact
// fit ends the scan. Ties keep the block encountered first.
func (a *Allocator) bestFit(need uint32) Ref {
	best := InvalidRef
	var bestSlack uint32
	for r := a.free.head; r != InvalidRef; r = a.free.next(a.data, r) {
		size := a.blockSize(r)
		if size < need {
			continue
		}
		slack := size - need
		if slack == 0 {
			return r
		}
		if best == InvalidRef || slack < bestSlack {
			best, bestSlack = r, slack
		}
	}
	return best
}

func (a *Allocator) search(need uint32, p Policy) (Ref, error) {
	switch p {
	case FirstFit:
		return a.firstFit(need), nil
	case BestFit:
		return a.bestFit(need), nil
	default:
		return InvalidRef, ErrUnknownPolicy
	}
}
