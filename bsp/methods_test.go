// SPDX-License-Identifier: GPL-2.0-or-later

package bsp_test

import (
	"testing"

	"godoom/bsp"
	"godoom/bsp/bsptest"
	"godoom/geom"
	"godoom/math/vec"
)

func TestFindSubsector(t *testing.T) {
	m := bsptest.TwoRooms()
	tests := []struct {
		p    vec.Vec2
		want int
	}{
		{vec.Vec2{10, 10}, 0},
		{vec.Vec2{63.9, 120}, 0},
		{vec.Vec2{100, 64}, 1},
		{vec.Vec2{127, 1}, 1},
		// on the partition line
		{vec.Vec2{64, 64}, 0},
		{vec.Vec2{64, -500}, 0},
		{vec.Vec2{64, 0}, 0},
		// far outside the level still resolves
		{vec.Vec2{-1e6, 3}, 0},
		{vec.Vec2{1e6, 3}, 1},
	}
	for _, tc := range tests {
		if got := m.FindSubsectorIndex(tc.p); got != tc.want {
			t.Errorf("FindSubsectorIndex(%v) = %v want %v", tc.p, got, tc.want)
		}
	}
}

func TestPointSideTie(t *testing.T) {
	n := bsp.Node{
		PartitionPoint: vec.Vec2{0, 0},
		PartitionDir:   vec.Vec2{1, 1},
	}
	if got := n.PointSide(vec.Vec2{5, 5}); got != 1 {
		t.Errorf("PointSide on line = %v want 1", got)
	}
	if got := n.PointSide(vec.Vec2{-3, -3}); got != 1 {
		t.Errorf("PointSide on line behind = %v want 1", got)
	}
	if got := n.PointSide(vec.Vec2{0, 5}); got != 1 {
		t.Errorf("PointSide left = %v want 1", got)
	}
	if got := n.PointSide(vec.Vec2{5, 0}); got != 0 {
		t.Errorf("PointSide right = %v want 0", got)
	}
}

func TestSectorAt(t *testing.T) {
	m := bsptest.TwoRooms()
	if got := m.SectorAt(vec.Vec2{32, 32}); got != 0 {
		t.Errorf("SectorAt west = %v want 0", got)
	}
	if got := m.SectorAt(vec.Vec2{96, 32}); got != 1 {
		t.Errorf("SectorAt east = %v want 1", got)
	}
	if got := m.SectorAt(vec.Vec2{64, 32}); got != 0 {
		t.Errorf("SectorAt on the split = %v want 0", got)
	}
}

func TestNoNodes(t *testing.T) {
	m := bsptest.Room(64, 0, 72)
	if got := m.FindSubsectorIndex(vec.Vec2{5, 5}); got != 0 {
		t.Errorf("FindSubsectorIndex = %v want 0", got)
	}
	calls := 0
	m.SubsectorsInBox(geom.NewAABB2(vec.Vec2{0, 0}, vec.Vec2{1, 1}), func(int) { calls++ })
	if calls != 1 {
		t.Errorf("SubsectorsInBox called %d times want 1", calls)
	}
}

func TestSectorsInBox(t *testing.T) {
	m := bsptest.TwoRooms()
	tests := []struct {
		name string
		box  geom.AABB2
		want []int
	}{
		{"west", geom.NewAABB2(vec.Vec2{10, 10}, vec.Vec2{20, 20}), []int{0}},
		{"east", geom.NewAABB2(vec.Vec2{70, 10}, vec.Vec2{90, 20}), []int{1}},
		{"straddle", geom.NewAABB2(vec.Vec2{48, 10}, vec.Vec2{80, 20}), []int{0, 1}},
		// touching the partition is not inside the other sector
		{"flush", geom.NewAABB2(vec.Vec2{32, 10}, vec.Vec2{64, 20}), []int{0}},
	}
	for _, tc := range tests {
		got := m.SectorsInBox(tc.box)
		if len(got) != len(tc.want) {
			t.Errorf("%s: SectorsInBox = %v want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: SectorsInBox = %v want %v", tc.name, got, tc.want)
				break
			}
		}
	}
}

func TestSectorTables(t *testing.T) {
	m := bsptest.TwoRooms()
	if got := m.SectorSubsectors(1); len(got) != 1 || got[0] != 1 {
		t.Errorf("SectorSubsectors(1) = %v want [1]", got)
	}
	if got := m.SectorNeighbours(0); len(got) != 1 || got[0] != 1 {
		t.Errorf("SectorNeighbours(0) = %v want [1]", got)
	}
	if got := m.SectorsWithTag(1); len(got) != 1 || got[0] != 1 {
		t.Errorf("SectorsWithTag(1) = %v want [1]", got)
	}
	if got := len(m.SectorLinedefs(1)); got != 4 {
		t.Errorf("len(SectorLinedefs(1)) = %v want 4", got)
	}
	want := geom.NewAABB2(vec.Vec2{0, 0}, vec.Vec2{128, 128})
	if got := m.BBox(); got != want {
		t.Errorf("BBox = %v want %v", got, want)
	}
}

func TestNewMapErrors(t *testing.T) {
	base := func() bsp.Data {
		return bsptest.TwoRooms().Data
	}
	tests := []struct {
		name   string
		modify func(d *bsp.Data)
	}{
		{"no sectors", func(d *bsp.Data) { d.Sectors = nil }},
		{"bad sidedef sector", func(d *bsp.Data) { d.Sidedefs[0].Sector = 9 }},
		{"bad vertex", func(d *bsp.Data) { d.Linedefs[0].Vertices[1] = 99 }},
		{"bad seg range", func(d *bsp.Data) { d.Subsectors[1].NumSegs = 40 }},
		{"node cycle", func(d *bsp.Data) { d.Nodes[0].Children[0] = bsp.NodeRef(0) }},
		{"bad subsector ref", func(d *bsp.Data) { d.Nodes[0].Children[1] = bsp.SubsectorRef(7) }},
		{"missing side", func(d *bsp.Data) { d.Segs[0].Side = 1 }},
	}
	for _, tc := range tests {
		d := base()
		// do not share slices with other cases
		d.Sidedefs = append([]bsp.Sidedef(nil), d.Sidedefs...)
		d.Linedefs = append([]bsp.Linedef(nil), d.Linedefs...)
		d.Segs = append([]bsp.Seg(nil), d.Segs...)
		d.Subsectors = append([]bsp.Subsector(nil), d.Subsectors...)
		d.Nodes = append([]bsp.Node(nil), d.Nodes...)
		tc.modify(&d)
		if _, err := bsp.NewMap(d); err == nil {
			t.Errorf("%s: NewMap succeeded", tc.name)
		}
	}
}
