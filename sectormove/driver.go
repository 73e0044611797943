// SPDX-License-Identifier: GPL-2.0-or-later

package sectormove

import (
	"sort"

	"godoom/bsp"
	"godoom/conlog"
	"godoom/level"
	qmath "godoom/math"
	"godoom/math/vec"
	"godoom/physics"
	"godoom/quadtree"
	"godoom/snd"
)

// DefaultSoundInterval repeats the move sound every 8 tics
const DefaultSoundInterval = 8.0 / 35

// reachTolerance is one fixed point fraction; a mover ending closer than
// this to its target has arrived
const reachTolerance = 1.0 / 65536

type EventType int

const (
	TargetReached EventType = iota + 1
	Collided
)

func (t EventType) String() string {
	switch t {
	case TargetReached:
		return "target_reached"
	case Collided:
		return "collided"
	}
	return "none"
}

type SectorMoveEvent struct {
	// Entity is the one representing the sector
	Entity physics.Entity
	Type   EventType
	Normal float32
}

// SectorMove drives one plane. Velocity 0 means idle.
type SectorMove struct {
	Velocity float32
	Target   float32
	Sound    snd.Cue
	// SoundTimer counts down to the next sound start
	SoundTimer float32
}

type FloorMove struct{ SectorMove }
type CeilingMove struct{ SectorMove }

// World is what the driver needs from physics
type World interface {
	Occupants
	Move(e physics.Entity, delta vec.Vec3)
}

type Driver struct {
	Map           *bsp.Map
	Dynamic       *level.Dynamic
	World         World
	Sounds        snd.Sink
	SoundInterval float32
	Metrics       *Metrics

	tracer   *Tracer
	sectors  map[physics.Entity]int
	floors   map[physics.Entity]*FloorMove
	ceilings map[physics.Entity]*CeilingMove
}

func NewDriver(m *bsp.Map, d *level.Dynamic, index *quadtree.Quadtree[physics.Entity], w World) *Driver {
	return &Driver{
		Map:           m,
		Dynamic:       d,
		World:         w,
		Sounds:        snd.Discard{},
		SoundInterval: DefaultSoundInterval,
		tracer: &Tracer{
			Map:       m,
			Index:     index,
			Occupants: w,
			Epsilon:   physics.DefaultEpsilon,
		},
		sectors:  make(map[physics.Entity]int),
		floors:   make(map[physics.Entity]*FloorMove),
		ceilings: make(map[physics.Entity]*CeilingMove),
	}
}

// SetEpsilon changes the resting distance used by the tracer
func (d *Driver) SetEpsilon(eps float32) {
	d.tracer.Epsilon = eps
}

// SetMetrics enables metrics for the driver and its tracer
func (d *Driver) SetMetrics(m *Metrics) {
	d.Metrics = m
	d.tracer.Metrics = m
}

// AttachSector makes e the entity representing sector
func (d *Driver) AttachSector(e physics.Entity, sector int) {
	d.sectors[e] = sector
}

func (d *Driver) Sector(e physics.Entity) (int, bool) {
	s, ok := d.sectors[e]
	return s, ok
}

func (d *Driver) SetFloorMove(e physics.Entity, m FloorMove) {
	d.floors[e] = &m
}

func (d *Driver) SetCeilingMove(e physics.Entity, m CeilingMove) {
	d.ceilings[e] = &m
}

// FloorMove returns the mover of e for in place changes, nil if there is none
func (d *Driver) FloorMove(e physics.Entity) *FloorMove {
	return d.floors[e]
}

func (d *Driver) CeilingMove(e physics.Entity) *CeilingMove {
	return d.ceilings[e]
}

func (d *Driver) RemoveFloorMove(e physics.Entity) {
	delete(d.floors, e)
}

func (d *Driver) RemoveCeilingMove(e physics.Entity) {
	delete(d.ceilings, e)
}

func sortedKeys[V any](m map[physics.Entity]V) []physics.Entity {
	r := make([]physics.Entity, 0, len(m))
	for e := range m {
		r = append(r, e)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

// Tick advances all floor movers, then all ceiling movers, by dt seconds.
func (d *Driver) Tick(dt float32) []SectorMoveEvent {
	var events []SectorMoveEvent
	for _, e := range sortedKeys(d.floors) {
		if ev, ok := d.step(e, 1, &d.floors[e].SectorMove, dt); ok {
			events = append(events, ev)
		}
	}
	for _, e := range sortedKeys(d.ceilings) {
		if ev, ok := d.step(e, -1, &d.ceilings[e].SectorMove, dt); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (d *Driver) step(e physics.Entity, normal float32, m *SectorMove, dt float32) (SectorMoveEvent, bool) {
	if m.Velocity == 0 {
		return SectorMoveEvent{}, false
	}
	sector, ok := d.sectors[e]
	if !ok {
		conlog.DPrintf("sector mover %d without sector\n", e)
		return SectorMoveEvent{}, false
	}

	if m.SoundTimer <= 0 && !m.Sound.IsZero() {
		m.SoundTimer = d.SoundInterval
		d.Sounds.StartSound(snd.Start{Cue: m.Sound, Entity: e})
	}
	m.SoundTimer -= dt

	var event EventType
	height := d.Dynamic.Height(sector, normal)
	move := m.Velocity * dt
	left := m.Target - height
	if (move > 0 && move >= left) || (move < 0 && move <= left) || qmath.NearlyEqual(move, left, reachTolerance) {
		move = left
		event = TargetReached
	}

	trace := d.tracer.Trace(TraceParams{
		Sector:     sector,
		Height:     height,
		Normal:     normal,
		MaxMove:    move,
		Subsectors: d.Map.SectorSubsectors(sector),
	})
	for _, p := range trace.Pushed {
		d.World.Move(p.Entity, p.Move)
	}
	d.Dynamic.SetHeight(sector, normal, height+trace.MoveStep)

	if trace.Fraction < 1 {
		event = Collided
	} else if event == TargetReached {
		d.Dynamic.SetHeight(sector, normal, m.Target)
	}
	if event == 0 {
		return SectorMoveEvent{}, false
	}
	ev := SectorMoveEvent{Entity: e, Type: event, Normal: normal}
	if d.Metrics != nil {
		d.Metrics.event(ev)
	}
	conlog.DPrintf("sector %d %s at %v\n", sector, event, d.Dynamic.Height(sector, normal))
	return ev, true
}
