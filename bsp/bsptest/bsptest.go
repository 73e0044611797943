// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsptest builds small maps for tests.
package bsptest

import (
	"log"

	"godoom/bsp"
	"godoom/geom"
	"godoom/math/vec"
)

// TwoRooms returns a 128x128 square split at x=64 by a two sided linedef.
// Sector 0 is the west half, sector 1 the east half. Both have the floor at
// 0 and the ceiling at 128. Sector 1 has tag 1.
//
// The single node partitions along x=64 pointing north, so points with
// x <= 64 end in subsector 0 and points with x > 64 in subsector 1.
func TwoRooms() *bsp.Map {
	v := []vec.Vec2{
		{0, 0}, {64, 0}, {128, 0},
		{128, 128}, {64, 128}, {0, 128},
	}
	d := bsp.Data{
		Name:     "tworooms",
		Vertices: v,
		Sectors: []bsp.Sector{
			{FloorHeight: 0, CeilingHeight: 128, FloorTexture: "FLOOR4_8", CeilingTexture: "CEIL3_5", LightLevel: 160},
			{FloorHeight: 0, CeilingHeight: 128, FloorTexture: "STEP2", CeilingTexture: "CEIL3_5", LightLevel: 192, Tag: 1},
		},
		Sidedefs: []bsp.Sidedef{
			{MiddleTexture: "STARTAN3", Sector: 0},
			{MiddleTexture: "STARTAN3", Sector: 1},
			{MiddleTexture: "STARTAN3", Sector: 1},
			{MiddleTexture: "STARTAN3", Sector: 1},
			{MiddleTexture: "STARTAN3", Sector: 0},
			{MiddleTexture: "STARTAN3", Sector: 0},
			{BottomTexture: "SUPPORT2", Sector: 1},
			{BottomTexture: "SUPPORT2", Sector: 0},
		},
		Linedefs: []bsp.Linedef{
			{Vertices: [2]int{0, 1}, Flags: bsp.LinedefBlocking, Sidedefs: [2]int{0, bsp.NoSidedef}},
			{Vertices: [2]int{1, 2}, Flags: bsp.LinedefBlocking, Sidedefs: [2]int{1, bsp.NoSidedef}},
			{Vertices: [2]int{2, 3}, Flags: bsp.LinedefBlocking, Sidedefs: [2]int{2, bsp.NoSidedef}},
			{Vertices: [2]int{3, 4}, Flags: bsp.LinedefBlocking, Sidedefs: [2]int{3, bsp.NoSidedef}},
			{Vertices: [2]int{4, 5}, Flags: bsp.LinedefBlocking, Sidedefs: [2]int{4, bsp.NoSidedef}},
			{Vertices: [2]int{5, 0}, Flags: bsp.LinedefBlocking, Sidedefs: [2]int{5, bsp.NoSidedef}},
			{Vertices: [2]int{1, 4}, Flags: bsp.LinedefTwoSided, Special: 62, Tag: 1, Sidedefs: [2]int{6, 7}},
		},
		Segs: []bsp.Seg{
			// subsector 0, west
			{Vertices: [2]vec.Vec2{v[0], v[1]}, Linedef: 0},
			{Vertices: [2]vec.Vec2{v[1], v[4]}, Linedef: 6, Side: 1},
			{Vertices: [2]vec.Vec2{v[4], v[5]}, Linedef: 4},
			{Vertices: [2]vec.Vec2{v[5], v[0]}, Linedef: 5},
			// subsector 1, east
			{Vertices: [2]vec.Vec2{v[1], v[2]}, Linedef: 1},
			{Vertices: [2]vec.Vec2{v[2], v[3]}, Linedef: 2},
			{Vertices: [2]vec.Vec2{v[3], v[4]}, Linedef: 3},
			{Vertices: [2]vec.Vec2{v[4], v[1]}, Linedef: 6},
		},
		Subsectors: []bsp.Subsector{
			{Sector: -1, FirstSeg: 0, NumSegs: 4},
			{Sector: -1, FirstSeg: 4, NumSegs: 4},
		},
		Nodes: []bsp.Node{
			{
				PartitionPoint: vec.Vec2{64, 0},
				PartitionDir:   vec.Vec2{0, 128},
				ChildBBoxes: [2]geom.AABB2{
					geom.NewAABB2(vec.Vec2{64, 0}, vec.Vec2{128, 128}),
					geom.NewAABB2(vec.Vec2{0, 0}, vec.Vec2{64, 128}),
				},
				Children: [2]bsp.ChildRef{bsp.SubsectorRef(1), bsp.SubsectorRef(0)},
			},
		},
		Things: []bsp.Thing{
			{Position: vec.Vec2{32, 64}, Type: 1},
		},
	}
	m, err := bsp.NewMap(d)
	if err != nil {
		log.Panicf("bsptest: %v", err)
	}
	return m
}

// Room returns a single sector square map without nodes
func Room(size, floor, ceiling float32) *bsp.Map {
	v := []vec.Vec2{{0, 0}, {size, 0}, {size, size}, {0, size}}
	d := bsp.Data{
		Name:     "room",
		Vertices: v,
		Sectors: []bsp.Sector{
			{FloorHeight: floor, CeilingHeight: ceiling, LightLevel: 255},
		},
		Sidedefs: []bsp.Sidedef{{Sector: 0}},
		Linedefs: []bsp.Linedef{
			{Vertices: [2]int{0, 1}, Sidedefs: [2]int{0, bsp.NoSidedef}},
			{Vertices: [2]int{1, 2}, Sidedefs: [2]int{0, bsp.NoSidedef}},
			{Vertices: [2]int{2, 3}, Sidedefs: [2]int{0, bsp.NoSidedef}},
			{Vertices: [2]int{3, 0}, Sidedefs: [2]int{0, bsp.NoSidedef}},
		},
		Segs: []bsp.Seg{
			{Vertices: [2]vec.Vec2{v[0], v[1]}, Linedef: 0},
			{Vertices: [2]vec.Vec2{v[1], v[2]}, Linedef: 1},
			{Vertices: [2]vec.Vec2{v[2], v[3]}, Linedef: 2},
			{Vertices: [2]vec.Vec2{v[3], v[0]}, Linedef: 3},
		},
		Subsectors: []bsp.Subsector{{Sector: 0, FirstSeg: 0, NumSegs: 4}},
	}
	m, err := bsp.NewMap(d)
	if err != nil {
		log.Panicf("bsptest: %v", err)
	}
	return m
}
