// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"godoom/math/vec"
)

// Interval is the closed range [Min,Max]
type Interval struct {
	Min float32
	Max float32
}

// ContainsInterval reports whether o lies completely inside i
func (i Interval) ContainsInterval(o Interval) bool {
	return i.Min <= o.Min && o.Max <= i.Max
}

// Plane is the set of points p with Dot(Normal, p) == Dist.
// Normal is expected to have unit length.
type Plane struct {
	Normal vec.Vec3
	Dist   float32
}

// FloorPlane returns the plane at height h facing up
func FloorPlane(h float32) Plane {
	return Plane{Normal: vec.Vec3{0, 0, 1}, Dist: h}
}

// CeilingPlane returns the plane at height h facing down
func CeilingPlane(h float32) Plane {
	return Plane{Normal: vec.Vec3{0, 0, -1}, Dist: -h}
}

// Distance returns the signed distance of p in front of the plane
func (p Plane) Distance(v vec.Vec3) float32 {
	return vec.Dot(p.Normal, v) - p.Dist
}

// BoxDistance returns the signed distance of the corner of b closest to the
// back side of the plane. A negative value means b pokes through the plane.
func (p Plane) BoxDistance(b AABB3) float32 {
	var c vec.Vec3
	for i := 0; i < 3; i++ {
		if p.Normal[i] >= 0 {
			c[i] = b.Min[i]
		} else {
			c[i] = b.Max[i]
		}
	}
	return p.Distance(c)
}
