// SPDX-License-Identifier: GPL-2.0-or-later

package vec

type Vec2 [2]float32

type Vec3 [3]float32

// XY drops the Z component
func (v Vec3) XY() Vec2 {
	return Vec2{v[0], v[1]}
}

// Extend returns the Vec3 {v[0], v[1], z}
func (v Vec2) Extend(z float32) Vec3 {
	return Vec3{v[0], v[1], z}
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

// Scale returns the vector v multiplied by the skalar s
func Scale(s float32, v Vec3) Vec3 {
	return Vec3{
		s * v[0],
		s * v[1],
		s * v[2],
	}
}

// Dot returns a dot b
func Dot(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Add2 returns a + b
func Add2(a, b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

// Sub2 returns a - b
func Sub2(a, b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

// Dot2 returns a dot b
func Dot2(a, b Vec2) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Perp returns v rotated by 90 degrees counter clockwise
func (v Vec2) Perp() Vec2 {
	return Vec2{-v[1], v[0]}
}

func minmax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

func MinMax2(a, b Vec2) (Vec2, Vec2) {
	var r, s Vec2
	r[0], s[0] = minmax(a[0], b[0])
	r[1], s[1] = minmax(a[1], b[1])
	return r, s
}
