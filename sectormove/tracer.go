// SPDX-License-Identifier: GPL-2.0-or-later

// Package sectormove moves sector floors and ceilings. The Tracer sweeps a
// plane through the entities above it, the Driver advances the movers every
// tick and reports when they arrive or get stuck.
package sectormove

import (
	"sort"

	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/geom"
	"godoom/math/vec"
	"godoom/physics"
	"godoom/quadtree"
)

// Occupants is the collider side of the world as seen by the tracer. It is
// only read during a trace.
type Occupants interface {
	Box(e physics.Entity) (geom.AABB3, bool)
	Blocked(e physics.Entity, delta vec.Vec3, moving physics.PlaneRef) bool
}

type Tracer struct {
	Map       *bsp.Map
	Index     *quadtree.Quadtree[physics.Entity]
	Occupants Occupants
	// Epsilon is the distance within which an entity counts as resting on
	// a floor
	Epsilon float32
	Metrics *Metrics
}

type TraceParams struct {
	Sector int
	// Height is the current height of the moving plane
	Height float32
	// Normal is +1 for a floor and -1 for a ceiling
	Normal     float32
	MaxMove    float32
	Subsectors []int
}

type Push struct {
	Entity physics.Entity
	Move   vec.Vec3
}

type Trace struct {
	MoveStep float32
	Fraction float32
	// Pushed is sorted by entity
	Pushed []Push
}

func (t *Tracer) Trace(p TraceParams) Trace {
	if p.MaxMove == 0 {
		return Trace{Fraction: 1}
	}
	r := t.resolve(p, t.candidates(p.Subsectors))
	if r.Fraction < 1 && t.Metrics != nil {
		t.Metrics.BlockedTraces.Inc()
	}
	return r
}

// candidates returns every entity whose footprint overlaps one of the
// subsectors. The order follows the quadtree and is not stable.
func (t *Tracer) candidates(subsectors []int) []physics.Entity {
	box := geom.EmptyAABB2()
	for _, s := range subsectors {
		box = box.Union(t.Map.Subsectors[s].BBox)
	}
	if box.IsEmpty() {
		return nil
	}
	var r []physics.Entity
	t.Index.TraverseNodes(box, func(entities []physics.Entity) {
		for _, e := range entities {
			eb, ok := t.Index.Box(e)
			if !ok || !eb.Overlaps(box) {
				continue
			}
			for _, s := range subsectors {
				ss := &t.Map.Subsectors[s]
				if eb.Overlaps(ss.BBox) && eb.OverlapsPolygon(ss.Polygon) {
					r = append(r, e)
					break
				}
			}
		}
	})
	return r
}

var up = vec.Vec3{0, 0, 1}

type contact struct {
	entity physics.Entity
	// gap is the free distance between the plane and the entity, never
	// negative
	gap float32
}

// resolve computes the trace over a fixed candidate set. The result does not
// depend on the order of candidates.
func (t *Tracer) resolve(p TraceParams, candidates []physics.Entity) Trace {
	plane := geom.FloorPlane(p.Height)
	if p.Normal < 0 {
		plane = geom.CeilingPlane(p.Height)
	}
	moving := physics.PlaneRef{Sector: p.Sector, Normal: p.Normal}
	// advance > 0 means the plane moves into the open space of the sector
	advance := p.MaxMove * p.Normal

	var contacts []contact
	for _, e := range candidates {
		b, ok := t.Occupants.Box(e)
		if !ok {
			continue
		}
		gap := math32.Max(plane.BoxDistance(b), 0)
		contacts = append(contacts, contact{entity: e, gap: gap})
	}

	if advance < 0 {
		return t.retreat(p, moving, contacts)
	}

	allowed := advance
	for _, c := range contacts {
		if c.gap >= advance {
			continue
		}
		if t.Occupants.Blocked(c.entity, t.pushDelta(p, advance-c.gap), moving) {
			allowed = math32.Min(allowed, c.gap)
		}
	}

	r := Trace{
		MoveStep: allowed * p.Normal,
		Fraction: allowed / advance,
	}
	for _, c := range contacts {
		if c.gap >= allowed {
			continue
		}
		r.Pushed = append(r.Pushed, Push{
			Entity: c.entity,
			Move:   t.pushDelta(p, allowed-c.gap),
		})
	}
	sortPushed(r.Pushed)
	return r
}

// retreat handles a plane moving away from the open space. Nothing can block
// it; floors carry down what rests on them unless that would force it into
// other geometry.
func (t *Tracer) retreat(p TraceParams, moving physics.PlaneRef, contacts []contact) Trace {
	r := Trace{MoveStep: p.MaxMove, Fraction: 1}
	if p.Normal < 0 {
		return r
	}
	delta := vec.Scale(p.MaxMove, up)
	for _, c := range contacts {
		if c.gap > t.Epsilon {
			continue
		}
		if t.Occupants.Blocked(c.entity, delta, moving) {
			continue
		}
		r.Pushed = append(r.Pushed, Push{Entity: c.entity, Move: delta})
	}
	sortPushed(r.Pushed)
	return r
}

func (t *Tracer) pushDelta(p TraceParams, d float32) vec.Vec3 {
	return vec.Scale(d*p.Normal, up)
}

func sortPushed(p []Push) {
	sort.Slice(p, func(i, j int) bool { return p[i].Entity < p[j].Entity })
}
