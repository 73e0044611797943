// SPDX-License-Identifier: GPL-2.0-or-later

package quadtree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godoom/geom"
	"godoom/math/vec"
	"godoom/rand"
)

var world = geom.NewAABB2(vec.Vec2{0, 0}, vec.Vec2{1024, 1024})

func box(x, y, r float32) geom.AABB2 {
	return geom.NewAABB2(vec.Vec2{x - r, y - r}, vec.Vec2{x + r, y + r})
}

func collect[K comparable](q *Quadtree[K], b geom.AABB2) []K {
	var r []K
	q.TraverseNodes(b, func(entities []K) {
		r = append(r, entities...)
	})
	return r
}

func sorted(s []int) []int {
	r := append([]int(nil), s...)
	sort.Ints(r)
	return r
}

type counter struct {
	splits, collapses int
}

func (c *counter) Split()    { c.splits++ }
func (c *counter) Collapse() { c.collapses++ }

func TestNewPanicsOnEmptyBox(t *testing.T) {
	assert.Panics(t, func() { New[int](geom.EmptyAABB2()) })
}

func TestInsertQueryRemove(t *testing.T) {
	q := New[int](world)
	q.Insert(1, box(100, 100, 8))
	q.Insert(2, box(900, 900, 8))

	assert.Equal(t, []int{1}, q.Query(box(100, 100, 1)))
	assert.Equal(t, []int{2}, q.Query(box(900, 900, 1)))
	assert.Empty(t, q.Query(box(500, 500, 1)))

	q.Remove(1)
	assert.Empty(t, q.Query(box(100, 100, 1)))
	assert.Equal(t, 1, q.Len())

	// removing again is fine
	q.Remove(1)
	assert.Equal(t, 1, q.Len())
}

func TestSplitCollapse(t *testing.T) {
	q := New[int](world)
	c := &counter{}
	q.Observer = c

	// LeafMax+1 boxes spread over all four quadrants
	centers := []vec.Vec2{
		{100, 100}, {200, 100}, {100, 200},
		{800, 100}, {900, 100},
		{100, 800}, {200, 900},
		{800, 800}, {900, 900}, {700, 900},
		{300, 300},
	}
	require.Len(t, centers, LeafMax+1)
	for i, p := range centers[:LeafMax] {
		q.Insert(i, box(p[0], p[1], 4))
	}
	_, isLeaf := q.root.(*leaf[int])
	require.True(t, isLeaf, "tree split before exceeding LeafMax")

	q.Insert(LeafMax, box(centers[LeafMax][0], centers[LeafMax][1], 4))
	b, isBranch := q.root.(*branch[int])
	require.True(t, isBranch, "tree did not split")
	assert.Equal(t, vec.Vec2{512, 512}, b.middle)
	assert.Equal(t, LeafMax+1, b.numDescendants)
	assert.Empty(t, b.entities)
	assert.Equal(t, 1, c.splits)

	remaining := LeafMax + 1
	for i := 0; remaining >= NodeMin; i++ {
		q.Remove(i)
		remaining--
	}
	l, isLeaf := q.root.(*leaf[int])
	require.True(t, isLeaf, "tree did not collapse")
	assert.Equal(t, 1, c.collapses)
	want := []int{}
	for i := LeafMax + 1 - remaining; i <= LeafMax; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, sorted(l.entities))
}

func TestStraddlingStaysAtBranch(t *testing.T) {
	q := New[int](world)
	for i := 0; i <= LeafMax; i++ {
		q.Insert(i, box(10+float32(i), 10, 2))
	}
	// crosses both split lines
	q.Insert(100, box(512, 512, 10))
	b, ok := q.root.(*branch[int])
	require.True(t, ok)
	assert.Equal(t, []int{100}, b.entities)

	// a query deep inside a single quadrant still sees the straddling key
	// list but Query filters it
	got := collect(q, box(20, 20, 1))
	assert.Contains(t, got, 100)
	assert.NotContains(t, q.Query(box(20, 20, 1)), 100)

	// a query in another quadrant does not visit the crowded one
	got = collect(q, box(900, 900, 1))
	assert.Equal(t, []int{100}, got)
}

func TestInsertIsIdempotent(t *testing.T) {
	q := New[int](world)
	first := box(100, 100, 4)
	q.Insert(7, first)
	q.Insert(7, box(900, 900, 4))

	b, ok := q.Box(7)
	require.True(t, ok)
	assert.Equal(t, first, b)
	assert.Equal(t, 1, q.Len())
	assert.Empty(t, q.Query(box(900, 900, 5)))
	assert.Equal(t, []int{7}, collect(q, world))
}

func TestUpdateMovesKey(t *testing.T) {
	q := New[int](world)
	q.Insert(7, box(100, 100, 4))
	q.Update(7, box(900, 900, 4))
	assert.Empty(t, q.Query(box(100, 100, 5)))
	assert.Equal(t, []int{7}, q.Query(box(900, 900, 5)))
	q.Update(8, box(10, 10, 1))
	assert.Equal(t, 2, q.Len())
}

func TestTouchingBoundaryIsReported(t *testing.T) {
	q := New[int](world)
	for i := 0; i <= LeafMax; i++ {
		// all in the lower left quadrant, flush with the split line
		q.Insert(i, geom.NewAABB2(vec.Vec2{float32(i), 500}, vec.Vec2{float32(i) + 1, 512}))
	}
	// query lies in the upper half and touches the split line
	got := q.Query(geom.NewAABB2(vec.Vec2{0, 512}, vec.Vec2{20, 600}))
	assert.Len(t, got, LeafMax+1)
}

// After any prefix of random inserts and removes a traversal over the union
// of the live boxes yields every live key exactly once.
func TestRandomRoundTrip(t *testing.T) {
	g := rand.New(1234)
	q := New[int](world)
	live := map[int]geom.AABB2{}

	for step := 0; step < 3000; step++ {
		k := g.Intn(200)
		if _, ok := live[k]; ok && g.Intn(3) != 0 {
			q.Remove(k)
			delete(live, k)
		} else if !ok {
			b := box(g.Range(0, 1024), g.Range(0, 1024), g.Range(0.5, 40))
			q.Insert(k, b)
			live[k] = b
		}
		if step%50 != 0 {
			continue
		}
		union := geom.EmptyAABB2()
		want := make([]int, 0, len(live))
		for k, b := range live {
			union = union.Union(b)
			want = append(want, k)
		}
		if len(live) == 0 {
			continue
		}
		got := collect(q, union)
		require.Equal(t, sorted(want), sorted(got), "step %d", step)
		require.Equal(t, len(live), q.Len())
		require.Equal(t, len(live), q.root.count())
	}

	// every live key is found by a query of its own box
	for k, b := range live {
		assert.Contains(t, q.Query(b), k)
	}
}

func TestChild(t *testing.T) {
	m := vec.Vec2{10, 10}
	tests := []struct {
		b    geom.AABB2
		want int
	}{
		{geom.NewAABB2(vec.Vec2{0, 0}, vec.Vec2{5, 5}), 0},
		{geom.NewAABB2(vec.Vec2{11, 0}, vec.Vec2{15, 5}), 1},
		{geom.NewAABB2(vec.Vec2{0, 11}, vec.Vec2{5, 15}), 2},
		{geom.NewAABB2(vec.Vec2{11, 11}, vec.Vec2{15, 15}), 3},
		{geom.NewAABB2(vec.Vec2{5, 0}, vec.Vec2{15, 5}), -1},
		{geom.NewAABB2(vec.Vec2{0, 5}, vec.Vec2{5, 15}), -1},
		// flush with the split goes to the lower side
		{geom.NewAABB2(vec.Vec2{0, 0}, vec.Vec2{10, 10}), 0},
		{geom.NewAABB2(vec.Vec2{10, 10}, vec.Vec2{12, 12}), 3},
	}
	for _, tc := range tests {
		if got := child(tc.b, m); got != tc.want {
			t.Errorf("child(%v) = %v want %v", tc.b, got, tc.want)
		}
	}
}
