// SPDX-License-Identifier: GPL-2.0-or-later

// Package physics owns the entity transforms and colliders and keeps the
// quadtree in sync with them. It answers whether moving an entity would push
// it into solid geometry.
package physics

import (
	"sort"

	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/conlog"
	"godoom/geom"
	"godoom/level"
	"godoom/math/vec"
	"godoom/quadtree"
)

// Entity is an opaque handle, stable for the lifetime of the entity
type Entity uint32

// DefaultEpsilon is how far a box may poke through a floor or ceiling before
// it counts as blocked. Movement is clipped this close to planes.
const DefaultEpsilon = 0.03125

type Transform struct {
	Position vec.Vec3
}

// Collider is a square footprint of half width Radius standing on Position
// and reaching Height up.
type Collider struct {
	Radius float32
	Height float32
	Solid  bool
}

// PlaneRef names the floor (Normal > 0) or ceiling (Normal < 0) of a sector
type PlaneRef struct {
	Sector int
	Normal float32
}

// NoPlane matches no sector
var NoPlane = PlaneRef{Sector: -1}

type World struct {
	Map     *bsp.Map
	Dynamic *level.Dynamic
	Index   *quadtree.Quadtree[Entity]
	Epsilon float32

	transforms map[Entity]*Transform
	colliders  map[Entity]*Collider
	next       Entity
}

func NewWorld(m *bsp.Map, d *level.Dynamic) *World {
	return &World{
		Map:        m,
		Dynamic:    d,
		Index:      quadtree.New[Entity](m.BBox()),
		Epsilon:    DefaultEpsilon,
		transforms: make(map[Entity]*Transform),
		colliders:  make(map[Entity]*Collider),
	}
}

// NewEntity allocates a handle without transform or collider, used for
// sectors.
func (w *World) NewEntity() Entity {
	w.next++
	return w.next
}

// Spawn creates a collidable entity standing on the highest floor below its
// footprint at p.
func (w *World) Spawn(p vec.Vec2, c Collider) Entity {
	e := w.NewEntity()
	w.colliders[e] = &c
	w.transforms[e] = &Transform{Position: p.Extend(w.floorBelow(p, c.Radius))}
	w.link(e)
	return e
}

// SpawnAt creates a collidable entity at exactly p
func (w *World) SpawnAt(p vec.Vec3, c Collider) Entity {
	e := w.NewEntity()
	w.colliders[e] = &c
	w.transforms[e] = &Transform{Position: p}
	w.link(e)
	return e
}

func (w *World) Despawn(e Entity) {
	w.Index.Remove(e)
	delete(w.transforms, e)
	delete(w.colliders, e)
}

func (w *World) floorBelow(p vec.Vec2, radius float32) float32 {
	fp := geom.NewAABB2(p, p).Expand(radius)
	floor := math32.Inf(-1)
	for _, s := range w.Map.SectorsInBox(fp) {
		floor = math32.Max(floor, w.Dynamic.Interval(s).Min)
	}
	if math32.IsInf(floor, -1) {
		conlog.DPrintf("spawn at %v outside of the map\n", p)
		return w.Dynamic.Interval(w.Map.SectorAt(p)).Min
	}
	return floor
}

// link updates the quadtree after the box of e changed
func (w *World) link(e Entity) {
	b, ok := w.Box(e)
	if !ok {
		return
	}
	w.Index.Update(e, b.XY())
}

func (w *World) Transform(e Entity) (Transform, bool) {
	t, ok := w.transforms[e]
	if !ok {
		return Transform{}, false
	}
	return *t, true
}

func (w *World) Collider(e Entity) (Collider, bool) {
	c, ok := w.colliders[e]
	if !ok {
		return Collider{}, false
	}
	return *c, true
}

// Box returns the world space box of e
func (w *World) Box(e Entity) (geom.AABB3, bool) {
	t, ok := w.transforms[e]
	if !ok {
		return geom.AABB3{}, false
	}
	c, ok := w.colliders[e]
	if !ok {
		return geom.AABB3{}, false
	}
	return boxAt(t.Position, c), true
}

func boxAt(p vec.Vec3, c *Collider) geom.AABB3 {
	return geom.AABB3{
		Min: vec.Vec3{p[0] - c.Radius, p[1] - c.Radius, p[2]},
		Max: vec.Vec3{p[0] + c.Radius, p[1] + c.Radius, p[2] + c.Height},
	}
}

func (w *World) SetPosition(e Entity, p vec.Vec3) {
	t, ok := w.transforms[e]
	if !ok {
		return
	}
	t.Position = p
	w.link(e)
}

// Move displaces e by delta without any collision check
func (w *World) Move(e Entity, delta vec.Vec3) {
	t, ok := w.transforms[e]
	if !ok {
		return
	}
	w.SetPosition(e, vec.Add(t.Position, delta))
}

// Entities returns all entities with a collider in ascending order
func (w *World) Entities() []Entity {
	r := make([]Entity, 0, len(w.colliders))
	for e := range w.colliders {
		r = append(r, e)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

// Blocked reports whether displacing e by delta would put it into a floor or
// ceiling of any sector below its footprint, or into a solid entity it does
// not already touch. The plane named by moving is ignored; it is the one
// doing the pushing.
func (w *World) Blocked(e Entity, delta vec.Vec3, moving PlaneRef) bool {
	c, ok := w.colliders[e]
	if !ok || !c.Solid {
		return false
	}
	from, _ := w.Box(e)
	to := from.Offset(delta)
	for _, s := range w.Map.SectorsInBox(to.XY()) {
		iv := w.Dynamic.Interval(s)
		room := geom.Interval{Min: iv.Min - w.Epsilon, Max: iv.Max + w.Epsilon}
		if s == moving.Sector && moving.Normal > 0 {
			room.Min = math32.Inf(-1)
		}
		if s == moving.Sector && moving.Normal < 0 {
			room.Max = math32.Inf(1)
		}
		if !room.ContainsInterval(to.Z()) {
			return true
		}
	}
	blocked := false
	w.Index.TraverseNodes(to.XY(), func(entities []Entity) {
		if blocked {
			return
		}
		for _, o := range entities {
			if o == e {
				continue
			}
			oc := w.colliders[o]
			if oc == nil || !oc.Solid {
				continue
			}
			ob, _ := w.Box(o)
			if ob.OverlapsStrict(to) && !ob.OverlapsStrict(from) {
				blocked = true
				return
			}
		}
	})
	return blocked
}

// TestPosition reports whether e is stuck in the world at its current
// position
func (w *World) TestPosition(e Entity) bool {
	return w.Blocked(e, vec.Vec3{}, NoPlane)
}
