// SPDX-License-Identifier: GPL-2.0-or-later

// Package specials runs doors, lifts and moving floors on top of the sector
// movers. It starts movers and reacts to their events.
package specials

import (
	"strings"

	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/conlog"
	"godoom/level"
	"godoom/physics"
	"godoom/sectormove"
	"godoom/snd"
)

type Kind int

const (
	// DoorOpenWaitClose raises the ceiling, waits and closes again
	DoorOpenWaitClose Kind = iota
	DoorOpen
	// PlatDownWaitUp lowers the floor to the lowest neighbour, waits and
	// comes back up
	PlatDownWaitUp
	FloorRaiseToLowestCeiling
	FloorLowerToLowest
	FloorLowerToHighest
)

func (k Kind) String() string {
	switch k {
	case DoorOpenWaitClose:
		return "door"
	case DoorOpen:
		return "door open"
	case PlatDownWaitUp:
		return "plat"
	case FloorRaiseToLowestCeiling:
		return "floor raise"
	case FloorLowerToLowest:
		return "floor lower to lowest"
	case FloorLowerToHighest:
		return "floor lower to highest"
	}
	return "unknown"
}

// Speeds in units per second and waits in seconds, based on 35 tics per
// second.
const (
	DoorSpeed  = 2 * 35
	DoorWait   = 150.0 / 35
	PlatSpeed  = 4 * 35
	PlatWait   = 3
	FloorSpeed = 1 * 35
	// DoorLip keeps an open door this far below the neighbour ceiling
	DoorLip = 4
)

var linedefKinds = map[int]Kind{
	1:  DoorOpenWaitClose,
	2:  DoorOpen,
	5:  FloorRaiseToLowestCeiling,
	19: FloorLowerToHighest,
	38: FloorLowerToLowest,
	62: PlatDownWaitUp,
	63: DoorOpenWaitClose,
}

// lightLinedefs set the light level of all tagged sectors at once
var lightLinedefs = map[int]float32{
	13:  255,
	35:  35,
	138: 255,
	139: 35,
}

// LinedefKind maps a linedef special to the kind it starts
func LinedefKind(special int) (Kind, bool) {
	k, ok := linedefKinds[special]
	return k, ok
}

type phase int

const (
	phaseUp phase = iota
	phaseDown
	phaseWait
)

type special struct {
	kind   Kind
	sector int
	entity physics.Entity
	phase  phase
	// next is the phase after waiting
	next phase
	wait float32
	low  float32
	high float32
}

// Allocator hands out the entities sectors are represented by
type Allocator interface {
	NewEntity() physics.Entity
}

type Specials struct {
	Map     *bsp.Map
	Dynamic *level.Dynamic
	Driver  *sectormove.Driver

	entities Allocator
	sounds   *snd.Precache
	sectors  map[int]physics.Entity
	active   map[physics.Entity]*special
}

func New(m *bsp.Map, d *level.Dynamic, driver *sectormove.Driver, a Allocator, sounds *snd.Precache) *Specials {
	return &Specials{
		Map:      m,
		Dynamic:  d,
		Driver:   driver,
		entities: a,
		sounds:   sounds,
		sectors:  make(map[int]physics.Entity),
		active:   make(map[physics.Entity]*special),
	}
}

// SectorEntity returns the entity representing sector, creating it on first
// use
func (s *Specials) SectorEntity(sector int) physics.Entity {
	if e, ok := s.sectors[sector]; ok {
		return e
	}
	e := s.entities.NewEntity()
	s.sectors[sector] = e
	s.Driver.AttachSector(e, sector)
	return e
}

// Active reports whether a special is running on sector
func (s *Specials) Active(sector int) bool {
	e, ok := s.sectors[sector]
	if !ok {
		return false
	}
	_, ok = s.active[e]
	return ok
}

// UseLinedef triggers the special of linedef l. Tagged specials act on all
// sectors with the tag, doors without a tag on the sector behind the
// linedef. A switch texture on the front side flips when anything started.
// Returns the number of started specials.
func (s *Specials) UseLinedef(l int) int {
	n := s.useLinedef(l)
	if n > 0 {
		s.flipSwitch(l)
	}
	return n
}

func (s *Specials) useLinedef(l int) int {
	ld := &s.Map.Linedefs[l]
	if light, ok := lightLinedefs[ld.Special]; ok {
		return s.SetLights(ld.Tag, light)
	}
	k, ok := LinedefKind(ld.Special)
	if !ok {
		return 0
	}
	if ld.Tag != 0 {
		return s.ActivateTag(ld.Tag, k)
	}
	if k != DoorOpenWaitClose && k != DoorOpen {
		return 0
	}
	back := ld.Sidedefs[1]
	if back == bsp.NoSidedef {
		conlog.Printf("linedef %d: door without back side\n", l)
		return 0
	}
	if s.Activate(s.Map.Sidedefs[back].Sector, k) {
		return 1
	}
	return 0
}

// flipSwitch swaps SW1 and SW2 textures on the front side of linedef l.
// Returns false if the side shows no switch.
func (s *Specials) flipSwitch(l int) bool {
	front := s.Map.Linedefs[l].Sidedefs[0]
	for _, p := range []level.TexturePart{level.TextureTop, level.TextureMiddle, level.TextureBottom} {
		name := s.Dynamic.Texture(front, p)
		var to string
		switch {
		case strings.HasPrefix(name, "SW1"):
			to = "SW2" + name[3:]
		case strings.HasPrefix(name, "SW2"):
			to = "SW1" + name[3:]
		default:
			continue
		}
		s.Dynamic.SwapTexture(front, name, to)
		s.startSound("DSSWTCHN", s.SectorEntity(s.Map.Sidedefs[front].Sector))
		return true
	}
	return false
}

// SetLights sets the light level of every sector tagged tag. Tag 0 matches
// nothing.
func (s *Specials) SetLights(tag int, light float32) int {
	if tag == 0 {
		return 0
	}
	sectors := s.Map.SectorsWithTag(tag)
	for _, sector := range sectors {
		s.Dynamic.SetLightLevel(sector, light)
	}
	return len(sectors)
}

func (s *Specials) startSound(name string, e physics.Entity) {
	s.Driver.Sounds.StartSound(snd.Start{Cue: s.sounds.Cue(name), Entity: e})
}

// ActivateTag starts k on every idle sector tagged tag
func (s *Specials) ActivateTag(tag int, k Kind) int {
	n := 0
	for _, sector := range s.Map.SectorsWithTag(tag) {
		if s.Activate(sector, k) {
			n++
		}
	}
	return n
}

// Activate starts k on sector. It does nothing if the sector is busy.
func (s *Specials) Activate(sector int, k Kind) bool {
	if s.Active(sector) {
		return false
	}
	e := s.SectorEntity(sector)
	sp := &special{kind: k, sector: sector, entity: e}
	floor := s.Dynamic.Height(sector, 1)
	switch k {
	case DoorOpenWaitClose, DoorOpen:
		sp.low = floor
		sp.high = s.lowestNeighbourCeiling(sector) - DoorLip
		s.moveCeiling(sp, phaseUp)
	case PlatDownWaitUp:
		sp.low = math32.Min(floor, s.lowestNeighbourFloor(sector))
		sp.high = floor
		s.moveFloor(sp, phaseDown)
	case FloorRaiseToLowestCeiling:
		sp.high = math32.Min(s.lowestNeighbourCeiling(sector), s.Dynamic.Height(sector, -1))
		s.moveFloor(sp, phaseUp)
	case FloorLowerToLowest:
		sp.low = math32.Min(floor, s.lowestNeighbourFloor(sector))
		s.moveFloor(sp, phaseDown)
	case FloorLowerToHighest:
		sp.low = s.highestNeighbourFloor(sector)
		s.moveFloor(sp, phaseDown)
	default:
		return false
	}
	s.active[e] = sp
	conlog.DPrintf("sector %d: %s\n", sector, k)
	return true
}

func (s *Specials) moveCeiling(sp *special, p phase) {
	sp.phase = p
	m := sectormove.SectorMove{Velocity: DoorSpeed, Target: sp.high, Sound: s.sounds.Cue("DSDOROPN")}
	if p == phaseDown {
		m.Velocity = -DoorSpeed
		m.Target = sp.low
		m.Sound = s.sounds.Cue("DSDORCLS")
	}
	s.Driver.SetCeilingMove(sp.entity, sectormove.CeilingMove{SectorMove: m})
}

func (s *Specials) moveFloor(sp *special, p phase) {
	sp.phase = p
	speed := float32(FloorSpeed)
	cue := s.sounds.Cue("DSSTNMOV")
	if sp.kind == PlatDownWaitUp {
		speed = PlatSpeed
		cue = s.sounds.Cue("DSPSTART")
	}
	m := sectormove.SectorMove{Velocity: speed, Target: sp.high, Sound: cue}
	if p == phaseDown {
		m.Velocity = -speed
		m.Target = sp.low
	}
	s.Driver.SetFloorMove(sp.entity, sectormove.FloorMove{SectorMove: m})
}

func (s *Specials) wait(sp *special, d float32, next phase) {
	sp.phase = phaseWait
	sp.wait = d
	sp.next = next
	s.Driver.RemoveFloorMove(sp.entity)
	s.Driver.RemoveCeilingMove(sp.entity)
}

func (s *Specials) finish(sp *special) {
	s.Driver.RemoveFloorMove(sp.entity)
	s.Driver.RemoveCeilingMove(sp.entity)
	delete(s.active, sp.entity)
	conlog.DPrintf("sector %d: %s done\n", sp.sector, sp.kind)
}

// Handle reacts to the events of one driver tick
func (s *Specials) Handle(events []sectormove.SectorMoveEvent) {
	for _, ev := range events {
		sp, ok := s.active[ev.Entity]
		if !ok {
			continue
		}
		switch sp.kind {
		case DoorOpenWaitClose, DoorOpen:
			s.handleDoor(sp, ev)
		case PlatDownWaitUp:
			s.handlePlat(sp, ev)
		default:
			// plain floors keep pushing when blocked
			if ev.Type == sectormove.TargetReached {
				s.finish(sp)
			}
		}
	}
}

func (s *Specials) handleDoor(sp *special, ev sectormove.SectorMoveEvent) {
	switch {
	case sp.phase == phaseUp && ev.Type == sectormove.TargetReached:
		if sp.kind == DoorOpen {
			s.finish(sp)
			return
		}
		s.wait(sp, DoorWait, phaseDown)
	case sp.phase == phaseDown && ev.Type == sectormove.TargetReached:
		s.finish(sp)
	case sp.phase == phaseDown && ev.Type == sectormove.Collided:
		// something is in the way, go back up
		s.moveCeiling(sp, phaseUp)
	}
}

func (s *Specials) handlePlat(sp *special, ev sectormove.SectorMoveEvent) {
	if ev.Type == sectormove.TargetReached {
		s.startSound("DSPSTOP", sp.entity)
	}
	switch {
	case sp.phase == phaseDown && ev.Type == sectormove.TargetReached:
		s.wait(sp, PlatWait, phaseUp)
	case sp.phase == phaseUp && ev.Type == sectormove.TargetReached:
		s.finish(sp)
	case sp.phase == phaseUp && ev.Type == sectormove.Collided:
		s.moveFloor(sp, phaseDown)
	}
}

// Tick counts down waiting specials
func (s *Specials) Tick(dt float32) {
	for _, sp := range s.active {
		if sp.phase != phaseWait {
			continue
		}
		sp.wait -= dt
		if sp.wait > 0 {
			continue
		}
		switch sp.kind {
		case DoorOpenWaitClose, DoorOpen:
			s.moveCeiling(sp, sp.next)
		default:
			s.moveFloor(sp, sp.next)
		}
	}
}

func (s *Specials) lowestNeighbourFloor(sector int) float32 {
	h := s.Dynamic.Height(sector, 1)
	for _, n := range s.Map.SectorNeighbours(sector) {
		h = math32.Min(h, s.Dynamic.Height(n, 1))
	}
	return h
}

// highestNeighbourFloor ignores the sector itself. Without neighbours it is
// the own floor.
func (s *Specials) highestNeighbourFloor(sector int) float32 {
	ns := s.Map.SectorNeighbours(sector)
	if len(ns) == 0 {
		return s.Dynamic.Height(sector, 1)
	}
	h := math32.Inf(-1)
	for _, n := range ns {
		h = math32.Max(h, s.Dynamic.Height(n, 1))
	}
	return h
}

func (s *Specials) lowestNeighbourCeiling(sector int) float32 {
	ns := s.Map.SectorNeighbours(sector)
	if len(ns) == 0 {
		return s.Dynamic.Height(sector, -1)
	}
	h := math32.Inf(1)
	for _, n := range ns {
		h = math32.Min(h, s.Dynamic.Height(n, -1))
	}
	return h
}
