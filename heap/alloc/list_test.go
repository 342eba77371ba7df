package alloc

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// scratch returns a buffer holding n header slots at offsets 0, 24, 48, ...
func scratch(n int) ([]byte, []Ref) {
	d := make([]byte, n*format.HeaderSize)
	refs := make([]Ref, n)
	for i := range refs {
		refs[i] = Ref(i * format.HeaderSize)
	}
	return d, refs
}

// backward walks tail to head through the prev links.
func backward(l *list, d []byte) []Ref {
	var out []Ref
	for r := l.tail; r != InvalidRef; r = l.prev(d, r) {
		out = append(out, r)
	}
	return out
}

// requireOrder checks forward order, backward order and the count.
func requireOrder(t *testing.T, l *list, d []byte, want ...Ref) {
	t.Helper()

	got := slices.Collect(l.all(d))
	if len(want) == 0 {
		require.Empty(t, got)
		require.Equal(t, InvalidRef, l.head)
		require.Equal(t, InvalidRef, l.tail)
		require.Zero(t, l.n)
		return
	}
	require.Equal(t, want, got)
	rev := slices.Clone(want)
	slices.Reverse(rev)
	require.Equal(t, rev, backward(l, d))
	require.Equal(t, len(want), l.n)
}

// TestRegistry_AppendTail tests the empty and non-empty append paths.
func TestRegistry_AppendTail(t *testing.T) {
	d, r := scratch(3)
	g := newRegistry()
	requireOrder(t, &g.list, d)

	g.appendTail(d, r[0])
	requireOrder(t, &g.list, d, r[0])

	g.appendTail(d, r[1])
	g.appendTail(d, r[2])
	requireOrder(t, &g.list, d, r[0], r[1], r[2])
}

// TestRegistry_InsertAfter tests insertion in the middle and after the tail.
func TestRegistry_InsertAfter(t *testing.T) {
	d, r := scratch(4)
	g := newRegistry()
	g.appendTail(d, r[0])
	g.appendTail(d, r[2])

	g.insertAfter(d, r[0], r[1])
	requireOrder(t, &g.list, d, r[0], r[1], r[2])

	g.insertAfter(d, r[2], r[3])
	requireOrder(t, &g.list, d, r[0], r[1], r[2], r[3])
	assert.Equal(t, r[3], g.tail)
}

// TestRegistry_Unlink tests removal at head, middle, tail and of the only entry.
func TestRegistry_Unlink(t *testing.T) {
	d, r := scratch(4)
	g := newRegistry()
	for _, ref := range r {
		g.appendTail(d, ref)
	}

	g.unlink(d, r[1])
	requireOrder(t, &g.list, d, r[0], r[2], r[3])

	g.unlink(d, r[0])
	requireOrder(t, &g.list, d, r[2], r[3])

	g.unlink(d, r[3])
	requireOrder(t, &g.list, d, r[2])

	g.unlink(d, r[2])
	requireOrder(t, &g.list, d)

	// Unlinked entries carry no stale links.
	assert.Equal(t, InvalidRef, g.prev(d, r[1]))
	assert.Equal(t, InvalidRef, g.next(d, r[1]))
}

// TestFreeIndex_Replace tests slot replacement at every boundary position.
func TestFreeIndex_Replace(t *testing.T) {
	tests := []struct {
		name string
		old  int
		want func(r []Ref) []Ref
	}{
		{"head", 0, func(r []Ref) []Ref { return []Ref{r[3], r[1], r[2]} }},
		{"middle", 1, func(r []Ref) []Ref { return []Ref{r[0], r[3], r[2]} }},
		{"tail", 2, func(r []Ref) []Ref { return []Ref{r[0], r[1], r[3]} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r := scratch(4)
			f := newFreeIndex()
			f.add(d, r[0])
			f.add(d, r[1])
			f.add(d, r[2])

			f.swap(d, r[tt.old], r[3])
			requireOrder(t, &f.list, d, tt.want(r)...)
			assert.Equal(t, InvalidRef, f.prev(d, r[tt.old]))
			assert.Equal(t, InvalidRef, f.next(d, r[tt.old]))
		})
	}
}

// TestFreeIndex_ReplaceOnly tests replacing the single member.
func TestFreeIndex_ReplaceOnly(t *testing.T) {
	d, r := scratch(2)
	f := newFreeIndex()
	f.add(d, r[0])

	f.swap(d, r[0], r[1])
	requireOrder(t, &f.list, d, r[1])
}

// TestFreeIndex_TailAppend tests that order follows insertion, not address.
func TestFreeIndex_TailAppend(t *testing.T) {
	d, r := scratch(3)
	f := newFreeIndex()
	f.add(d, r[2])
	f.add(d, r[0])
	f.add(d, r[1])
	requireOrder(t, &f.list, d, r[2], r[0], r[1])

	f.drop(d, r[0])
	requireOrder(t, &f.list, d, r[2], r[1])
}

// TestLists_Independent tests that registry and free index links never alias.
func TestLists_Independent(t *testing.T) {
	d, r := scratch(3)
	g := newRegistry()
	f := newFreeIndex()
	for _, ref := range r {
		g.appendTail(d, ref)
	}
	f.add(d, r[2])
	f.add(d, r[0])

	g.unlink(d, r[1])
	f.drop(d, r[2])

	requireOrder(t, &g.list, d, r[0], r[2])
	requireOrder(t, &f.list, d, r[0])
}
