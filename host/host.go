// SPDX-License-Identifier: GPL-2.0-or-later

// Package host assembles a running level from a loaded map and steps it.
package host

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"godoom/bsp"
	"godoom/conlog"
	"godoom/cvar"
	"godoom/cvars"
	"godoom/level"
	"godoom/math/vec"
	"godoom/physics"
	"godoom/rand"
	"godoom/sectormove"
	"godoom/snd"
	"godoom/specials"
)

var sounds = []string{"DSDOROPN", "DSDORCLS", "DSPSTART", "DSPSTOP", "DSSTNMOV", "DSSWTCHN"}

// thingColliders lists the solid things by doomednum
var thingColliders = map[int]physics.Collider{
	1:    {Radius: 16, Height: 56, Solid: true}, // player starts
	2:    {Radius: 16, Height: 56, Solid: true},
	3:    {Radius: 16, Height: 56, Solid: true},
	4:    {Radius: 16, Height: 56, Solid: true},
	3004: {Radius: 20, Height: 56, Solid: true}, // zombieman
	9:    {Radius: 20, Height: 56, Solid: true}, // shotgun guy
	3001: {Radius: 20, Height: 56, Solid: true}, // imp
	3002: {Radius: 30, Height: 56, Solid: true}, // demon
	2035: {Radius: 10, Height: 42, Solid: true}, // barrel
	2028: {Radius: 16, Height: 16, Solid: true}, // lamp
}

type Host struct {
	Map      *bsp.Map
	Dynamic  *level.Dynamic
	World    *physics.World
	Driver   *sectormove.Driver
	Specials *specials.Specials
	Sounds   *snd.Queue
	Metrics  *sectormove.Metrics
	Registry *prometheus.Registry

	frameCount int
}

// New spawns the things of m into a fresh world
func New(m *bsp.Map) (*Host, error) {
	h := &Host{
		Map:      m,
		Dynamic:  level.New(m),
		Sounds:   snd.NewQueue(int(cvars.ServerSoundQueueSize.Value())),
		Registry: prometheus.NewRegistry(),
	}
	metrics, err := sectormove.RegisterMetrics(h.Registry)
	if err != nil {
		return nil, errors.Wrap(err, "metrics")
	}
	h.Metrics = metrics

	h.World = physics.NewWorld(m, h.Dynamic)
	h.World.Index.Observer = metrics

	h.Driver = sectormove.NewDriver(m, h.Dynamic, h.World.Index, h.World)
	h.Driver.Sounds = h.Sounds
	h.Driver.SetMetrics(metrics)
	h.Specials = specials.New(m, h.Dynamic, h.Driver, h.World, snd.NewPrecache(sounds...))

	h.applyCvars(nil)
	cvars.ServerPushEpsilon.SetCallback(h.applyCvars)
	cvars.ServerSectorSound.SetCallback(h.applyCvars)

	for _, t := range m.Things {
		c, ok := thingColliders[t.Type]
		if !ok {
			continue
		}
		h.World.Spawn(t.Position, c)
	}
	conlog.Printf("%s: %d sectors, %d colliders\n", m.Name, len(m.Sectors), len(h.World.Entities()))
	return h, nil
}

func (h *Host) applyCvars(_ *cvar.Cvar) {
	eps := cvars.ServerPushEpsilon.Value()
	h.World.Epsilon = eps
	h.Driver.SetEpsilon(eps)
	h.Driver.SoundInterval = cvars.ServerSectorSound.Value()
}

// SpawnCrowd adds n random colliders standing on the floor
func (h *Host) SpawnCrowd(n int, seed uint32) {
	g := rand.New(seed)
	box := h.Map.BBox()
	for i := 0; i < n; i++ {
		c := physics.Collider{Radius: g.Range(8, 24), Height: g.Range(16, 56), Solid: true}
		p := vec.Vec2{
			g.Range(box.Min[0]+c.Radius, box.Max[0]-c.Radius),
			g.Range(box.Min[1]+c.Radius, box.Max[1]-c.Radius),
		}
		h.World.Spawn(p, c)
	}
}

// Use triggers linedef l as if a player pressed it
func (h *Host) Use(l int) int {
	if l < 0 || l >= len(h.Map.Linedefs) {
		conlog.Printf("use: no linedef %d\n", l)
		return 0
	}
	return h.Specials.UseLinedef(l)
}

// Frame runs one tick of dt seconds
func (h *Host) Frame(dt float32) []sectormove.SectorMoveEvent {
	events := h.Driver.Tick(dt)
	h.Specials.Handle(events)
	h.Specials.Tick(dt)
	for _, s := range h.Sounds.Drain() {
		conlog.DPrintf("sound %s on %d\n", s.Cue.Name, s.Entity)
	}
	h.frameCount++
	return events
}

func (h *Host) FrameCount() int {
	return h.frameCount
}

// WriteMetrics writes all metrics in the text exposition format
func (h *Host) WriteMetrics(w io.Writer) error {
	mfs, err := h.Registry.Gather()
	if err != nil {
		return errors.Wrap(err, "metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "metrics")
		}
	}
	return nil
}
