// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"sort"

	"godoom/geom"
	"godoom/math/vec"
)

// FindSubsectorIndex returns the index of the subsector containing p.
// Points outside of the level still end in some subsector.
func (m *Map) FindSubsectorIndex(p vec.Vec2) int {
	if len(m.Nodes) == 0 {
		// single subsector maps have no nodes
		return 0
	}
	c := NodeRef(len(m.Nodes) - 1)
	for !c.IsSubsector() {
		n := &m.Nodes[c.Index()]
		c = n.Children[n.PointSide(p)]
	}
	return c.Index()
}

// FindSubsector returns the subsector containing p
func (m *Map) FindSubsector(p vec.Vec2) *Subsector {
	return &m.Subsectors[m.FindSubsectorIndex(p)]
}

// SectorAt returns the index of the sector containing p
func (m *Map) SectorAt(p vec.Vec2) int {
	return m.FindSubsector(p).Sector
}

// SubsectorsInBox calls f for every subsector whose node bounding box
// overlaps box. This over reports; callers need to check the polygon.
func (m *Map) SubsectorsInBox(box geom.AABB2, f func(subsector int)) {
	if len(m.Nodes) == 0 {
		f(0)
		return
	}
	m.subsectorsInBox(NodeRef(len(m.Nodes)-1), box, f)
}

func (m *Map) subsectorsInBox(c ChildRef, box geom.AABB2, f func(int)) {
	for !c.IsSubsector() {
		n := &m.Nodes[c.Index()]
		front := n.ChildBBoxes[0].Overlaps(box)
		back := n.ChildBBoxes[1].Overlaps(box)
		switch {
		case front && back:
			// go down both
			m.subsectorsInBox(n.Children[0], box, f)
			c = n.Children[1]
		case front:
			c = n.Children[0]
		case back:
			c = n.Children[1]
		default:
			return
		}
	}
	f(c.Index())
}

// SectorsInBox returns the sectors having a subsector which overlaps box.
// The result is sorted and free of duplicates.
func (m *Map) SectorsInBox(box geom.AABB2) []int {
	seen := make(map[int]bool)
	m.SubsectorsInBox(box, func(i int) {
		ss := &m.Subsectors[i]
		if !box.OverlapsPolygon(ss.Polygon) {
			return
		}
		seen[ss.Sector] = true
	})
	r := make([]int, 0, len(seen))
	for i := range seen {
		r = append(r, i)
	}
	sort.Ints(r)
	return r
}
