// SPDX-License-Identifier: GPL-2.0-or-later

// Package geom holds the axis aligned boxes, intervals and planes shared by
// the map, the spatial index and the sector movers. All types are plain
// values.
package geom

import (
	"github.com/chewxy/math32"

	"godoom/math/vec"
)

// AABB2 is an axis aligned box in the map plane.
// The zero value is the degenerate box at the origin, use EmptyAABB2 for a
// box without extent.
type AABB2 struct {
	Min vec.Vec2
	Max vec.Vec2
}

// EmptyAABB2 returns the box covering nothing. Adding a point to it yields
// the box of that point.
func EmptyAABB2() AABB2 {
	inf := math32.Inf(1)
	return AABB2{
		Min: vec.Vec2{inf, inf},
		Max: vec.Vec2{-inf, -inf},
	}
}

// NewAABB2 returns the box spanned by the two corners a and b
func NewAABB2(a, b vec.Vec2) AABB2 {
	min, max := vec.MinMax2(a, b)
	return AABB2{Min: min, Max: max}
}

// AABB2FromPoints returns the smallest box containing all points
func AABB2FromPoints(points ...vec.Vec2) AABB2 {
	b := EmptyAABB2()
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether the box has no extent on some axis
func (b AABB2) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1]
}

func (b AABB2) AddPoint(p vec.Vec2) AABB2 {
	for i := 0; i < 2; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing b and o
func (b AABB2) Union(o AABB2) AABB2 {
	for i := 0; i < 2; i++ {
		b.Min[i] = math32.Min(b.Min[i], o.Min[i])
		b.Max[i] = math32.Max(b.Max[i], o.Max[i])
	}
	return b
}

// Overlaps reports whether b and o share at least a boundary point
func (b AABB2) Overlaps(o AABB2) bool {
	return b.Min[0] <= o.Max[0] && o.Min[0] <= b.Max[0] &&
		b.Min[1] <= o.Max[1] && o.Min[1] <= b.Max[1]
}

// OverlapsStrict reports whether b and o share interior points
func (b AABB2) OverlapsStrict(o AABB2) bool {
	return b.Min[0] < o.Max[0] && o.Min[0] < b.Max[0] &&
		b.Min[1] < o.Max[1] && o.Min[1] < b.Max[1]
}

// Expand grows the box by d on every side
func (b AABB2) Expand(d float32) AABB2 {
	return AABB2{
		Min: vec.Vec2{b.Min[0] - d, b.Min[1] - d},
		Max: vec.Vec2{b.Max[0] + d, b.Max[1] + d},
	}
}

func (b AABB2) Middle() vec.Vec2 {
	return vec.Vec2{
		0.5 * (b.Min[0] + b.Max[0]),
		0.5 * (b.Min[1] + b.Max[1]),
	}
}

// OverlapsPolygon reports whether the box shares interior points with the
// convex polygon poly. The winding of poly does not matter. Polygons with
// less than three vertices are treated as their bounding box.
func (b AABB2) OverlapsPolygon(poly []vec.Vec2) bool {
	if !b.OverlapsStrict(AABB2FromPoints(poly...)) {
		return false
	}
	if len(poly) < 3 {
		return true
	}
	corners := [4]vec.Vec2{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
	}
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		axis := vec.Sub2(q, p).Perp()
		if axis == (vec.Vec2{}) {
			continue
		}
		bmin, bmax := project(axis, corners[:])
		pmin, pmax := project(axis, poly)
		if bmax <= pmin || pmax <= bmin {
			return false
		}
	}
	return true
}

func project(axis vec.Vec2, points []vec.Vec2) (float32, float32) {
	min := math32.Inf(1)
	max := math32.Inf(-1)
	for _, p := range points {
		d := vec.Dot2(axis, p)
		min = math32.Min(min, d)
		max = math32.Max(max, d)
	}
	return min, max
}

// AABB3 is an axis aligned box in world space
type AABB3 struct {
	Min vec.Vec3
	Max vec.Vec3
}

// XY returns the projection of the box onto the map plane
func (b AABB3) XY() AABB2 {
	return AABB2{Min: b.Min.XY(), Max: b.Max.XY()}
}

// Z returns the vertical extent of the box
func (b AABB3) Z() Interval {
	return Interval{Min: b.Min[2], Max: b.Max[2]}
}

func (b AABB3) Offset(d vec.Vec3) AABB3 {
	return AABB3{
		Min: vec.Add(b.Min, d),
		Max: vec.Add(b.Max, d),
	}
}

// OverlapsStrict reports whether b and o share interior points
func (b AABB3) OverlapsStrict(o AABB3) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] >= o.Max[i] || o.Min[i] >= b.Max[i] {
			return false
		}
	}
	return true
}
