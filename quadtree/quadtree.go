// SPDX-License-Identifier: GPL-2.0-or-later

// Package quadtree implements an incremental spatial index over axis aligned
// boxes. Every key is stored at the deepest node whose quadrant fully
// contains its box. Boxes crossing a split stay at the branch.
package quadtree

import (
	"log"
	"runtime/debug"

	"godoom/geom"
	"godoom/math/vec"
)

const (
	// LeafMax is the number of keys a leaf holds before it splits
	LeafMax = 10
	// NodeMin is the number of keys below which a branch collapses
	NodeMin = 5
)

// Quadtree is not safe for concurrent use.
type Quadtree[K comparable] struct {
	root   node[K]
	bbox   geom.AABB2
	bboxes map[K]geom.AABB2

	// Observer is notified about structural changes. May be nil.
	Observer Observer
}

// Observer receives split and collapse notifications, used for metrics
type Observer interface {
	Split()
	Collapse()
}

// node is either a *leaf or a *branch
type node[K comparable] interface {
	count() int
}

type leaf[K comparable] struct {
	entities []K
}

type branch[K comparable] struct {
	middle         vec.Vec2
	entities       []K
	numDescendants int // all keys in this subtree including entities
	children       [4]node[K]
}

func (l *leaf[K]) count() int   { return len(l.entities) }
func (b *branch[K]) count() int { return b.numDescendants }

// New returns an empty quadtree covering bbox. It panics if bbox is empty.
func New[K comparable](bbox geom.AABB2) *Quadtree[K] {
	if bbox.IsEmpty() {
		debug.PrintStack()
		log.Panicf("quadtree.New: empty bbox %v", bbox)
	}
	return &Quadtree[K]{
		root:   &leaf[K]{},
		bbox:   bbox,
		bboxes: make(map[K]geom.AABB2),
	}
}

// BBox returns the region covered by the root
func (q *Quadtree[K]) BBox() geom.AABB2 {
	return q.bbox
}

// Len returns the number of keys in the tree
func (q *Quadtree[K]) Len() int {
	return len(q.bboxes)
}

// Box returns the box k was inserted with
func (q *Quadtree[K]) Box(k K) (geom.AABB2, bool) {
	b, ok := q.bboxes[k]
	return b, ok
}

// Insert adds k with the given box. Inserting a key which is already present
// does nothing, even if bbox differs. Use Update to move a key.
func (q *Quadtree[K]) Insert(k K, bbox geom.AABB2) {
	if _, ok := q.bboxes[k]; ok {
		return
	}
	if bbox.IsEmpty() {
		debug.PrintStack()
		log.Panicf("quadtree.Insert: empty bbox %v", bbox)
	}
	q.bboxes[k] = bbox
	q.root = q.insert(q.root, q.bbox, k, bbox)
}

// Remove deletes k. Removing an absent key does nothing.
func (q *Quadtree[K]) Remove(k K) {
	bbox, ok := q.bboxes[k]
	if !ok {
		return
	}
	delete(q.bboxes, k)
	q.root = q.remove(q.root, k, bbox)
}

// Update moves k to bbox, inserting it if absent
func (q *Quadtree[K]) Update(k K, bbox geom.AABB2) {
	if old, ok := q.bboxes[k]; ok {
		if old == bbox {
			return
		}
		q.Remove(k)
	}
	q.Insert(k, bbox)
}

// child returns the quadrant of bbox relative to middle or -1 if the box
// crosses one of the split lines. Bit 0 is set for the upper x half, bit 1
// for the upper y half.
func child(bbox geom.AABB2, middle vec.Vec2) int {
	idx := 0
	for axis := 0; axis < 2; axis++ {
		switch {
		case bbox.Max[axis] <= middle[axis]:
		case bbox.Min[axis] >= middle[axis]:
			idx |= 1 << axis
		default:
			return -1
		}
	}
	return idx
}

// quadrant returns the region of child i of a branch covering region
func quadrant(region geom.AABB2, middle vec.Vec2, i int) geom.AABB2 {
	r := region
	for axis := 0; axis < 2; axis++ {
		if i&(1<<axis) != 0 {
			r.Min[axis] = middle[axis]
		} else {
			r.Max[axis] = middle[axis]
		}
	}
	return r
}

// insert consumes n and returns the node replacing it in its parent slot
func (q *Quadtree[K]) insert(n node[K], region geom.AABB2, k K, bbox geom.AABB2) node[K] {
	switch n := n.(type) {
	case *leaf[K]:
		n.entities = append(n.entities, k)
		if len(n.entities) > LeafMax {
			return q.split(n, region)
		}
		return n
	case *branch[K]:
		n.numDescendants++
		i := child(bbox, n.middle)
		if i < 0 {
			n.entities = append(n.entities, k)
			return n
		}
		n.children[i] = q.insert(n.children[i], quadrant(region, n.middle, i), k, bbox)
		return n
	}
	debug.PrintStack()
	log.Panicf("quadtree: unknown node %T", n)
	return nil
}

// split turns a full leaf into a branch. The keys are distributed one level
// deep only, children never split here.
func (q *Quadtree[K]) split(l *leaf[K], region geom.AABB2) node[K] {
	b := &branch[K]{
		middle:         region.Middle(),
		numDescendants: len(l.entities),
	}
	for i := range b.children {
		b.children[i] = &leaf[K]{}
	}
	for _, e := range l.entities {
		i := child(q.bboxes[e], b.middle)
		if i < 0 {
			b.entities = append(b.entities, e)
			continue
		}
		c := b.children[i].(*leaf[K])
		c.entities = append(c.entities, e)
	}
	if q.Observer != nil {
		q.Observer.Split()
	}
	return b
}

// remove consumes n and returns the node replacing it in its parent slot
func (q *Quadtree[K]) remove(n node[K], k K, bbox geom.AABB2) node[K] {
	switch n := n.(type) {
	case *leaf[K]:
		n.entities = swapRemove(n.entities, k)
		return n
	case *branch[K]:
		n.numDescendants--
		if i := child(bbox, n.middle); i < 0 {
			n.entities = swapRemove(n.entities, k)
		} else {
			n.children[i] = q.remove(n.children[i], k, bbox)
		}
		if n.numDescendants < NodeMin {
			return q.collapse(n)
		}
		return n
	}
	debug.PrintStack()
	log.Panicf("quadtree: unknown node %T", n)
	return nil
}

// collapse flattens all keys below b into a single leaf
func (q *Quadtree[K]) collapse(b *branch[K]) node[K] {
	l := &leaf[K]{entities: make([]K, 0, b.numDescendants)}
	var gather func(n node[K])
	gather = func(n node[K]) {
		switch n := n.(type) {
		case *leaf[K]:
			l.entities = append(l.entities, n.entities...)
		case *branch[K]:
			l.entities = append(l.entities, n.entities...)
			for _, c := range n.children {
				gather(c)
			}
		}
	}
	gather(b)
	if q.Observer != nil {
		q.Observer.Collapse()
	}
	return l
}

func swapRemove[K comparable](s []K, k K) []K {
	for i, e := range s {
		if e == k {
			last := len(s) - 1
			s[i] = s[last]
			var zero K
			s[last] = zero
			return s[:last]
		}
	}
	debug.PrintStack()
	log.Panicf("quadtree: key %v not found in its node", k)
	return s
}

// TraverseNodes calls f with the keys of every node whose region may
// intersect bbox. The lists may contain keys whose boxes do not intersect
// bbox. f must not modify the tree or keep the slice.
func (q *Quadtree[K]) TraverseNodes(bbox geom.AABB2, f func(entities []K)) {
	traverse(q.root, bbox, f)
}

func traverse[K comparable](n node[K], bbox geom.AABB2, f func([]K)) {
	for {
		switch t := n.(type) {
		case *leaf[K]:
			if len(t.entities) > 0 {
				f(t.entities)
			}
			return
		case *branch[K]:
			if len(t.entities) > 0 {
				f(t.entities)
			}
			// quadrants the query reaches on each axis, low bit is the
			// lower half
			var reach [2]int
			for axis := 0; axis < 2; axis++ {
				if bbox.Min[axis] <= t.middle[axis] {
					reach[axis] |= 1
				}
				if bbox.Max[axis] >= t.middle[axis] {
					reach[axis] |= 2
				}
			}
			next := -1
			for i := range t.children {
				if reach[0]&(1<<(i&1)) == 0 || reach[1]&(1<<(i>>1)) == 0 {
					continue
				}
				if next >= 0 {
					traverse(t.children[next], bbox, f)
				}
				next = i
			}
			if next < 0 {
				return
			}
			n = t.children[next]
		default:
			return
		}
	}
}

// Query returns all keys whose box overlaps bbox, boundaries included
func (q *Quadtree[K]) Query(bbox geom.AABB2) []K {
	var r []K
	q.TraverseNodes(bbox, func(entities []K) {
		for _, e := range entities {
			if q.bboxes[e].Overlaps(bbox) {
				r = append(r, e)
			}
		}
	})
	return r
}
