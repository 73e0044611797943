// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"godoom/geom"
	"godoom/math/vec"
)

type Sector struct {
	FloorHeight    float32
	CeilingHeight  float32
	FloorTexture   string
	CeilingTexture string
	LightLevel     float32
	Special        int
	Tag            int
}

// Interval returns the open space of the sector from floor to ceiling
func (s *Sector) Interval() geom.Interval {
	return geom.Interval{Min: s.FloorHeight, Max: s.CeilingHeight}
}

type Sidedef struct {
	TextureOffset vec.Vec2
	TopTexture    string
	BottomTexture string
	MiddleTexture string
	Sector        int
}

type LinedefFlags uint16

const (
	LinedefBlocking LinedefFlags = 1 << iota
	LinedefBlockMonsters
	LinedefTwoSided
	LinedefUpperUnpegged
	LinedefLowerUnpegged
	LinedefSecret
	LinedefBlockSound
	LinedefNeverMap
	LinedefAlwaysMap
)

const NoSidedef = -1

type Linedef struct {
	Vertices [2]int
	Flags    LinedefFlags
	Special  int
	Tag      int
	// Sidedefs[0] is the front (right) side, Sidedefs[1] the back side or
	// NoSidedef.
	Sidedefs [2]int
}

const MiniSeg = -1

// Seg is a part of a linedef bounding a subsector. GL nodes add minisegs
// which have no linedef and only close the subsector polygon.
type Seg struct {
	Vertices [2]vec.Vec2
	Linedef  int
	Side     int
}

type Subsector struct {
	Sector   int
	FirstSeg int
	NumSegs  int

	// derived at load time
	Polygon []vec.Vec2
	BBox    geom.AABB2
}

// ChildRef points to either a node or a subsector
type ChildRef uint32

const subsectorFlag ChildRef = 1 << 31

func NodeRef(i int) ChildRef {
	return ChildRef(i)
}

func SubsectorRef(i int) ChildRef {
	return ChildRef(i) | subsectorFlag
}

func (c ChildRef) IsSubsector() bool {
	return c&subsectorFlag != 0
}

func (c ChildRef) Index() int {
	return int(c &^ subsectorFlag)
}

type Node struct {
	PartitionPoint vec.Vec2
	PartitionDir   vec.Vec2
	ChildBBoxes    [2]geom.AABB2
	Children       [2]ChildRef
}

// PointSide returns the index of the child containing p. Points strictly to
// the right of the partition direction map to 0, points on the line and to
// the left map to 1.
func (n *Node) PointSide(p vec.Vec2) int {
	d := vec.Sub2(p, n.PartitionPoint)
	left := n.PartitionDir[1] * d[0]
	right := n.PartitionDir[0] * d[1]
	if right < left {
		return 0
	}
	return 1
}

type Thing struct {
	Position vec.Vec2
	Angle    float32
	Type     int
	Flags    int
}
