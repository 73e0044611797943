// SPDX-License-Identifier: GPL-2.0-or-later

// Package level holds the mutable state of a loaded map. The bsp.Map stays
// untouched, everything movers, lights and switches change lives here.
package level

import (
	"godoom/bsp"
	"godoom/geom"
)

type SectorState struct {
	// Interval is the open space from floor (Min) to ceiling (Max)
	Interval   geom.Interval
	LightLevel float32
}

type SidedefState struct {
	TopTexture    string
	BottomTexture string
	MiddleTexture string
}

type TexturePart int

const (
	TextureTop TexturePart = iota
	TextureBottom
	TextureMiddle
)

// Dynamic is owned by the simulation, one per active map
type Dynamic struct {
	MapName  string
	Sectors  []SectorState
	Sidedefs []SidedefState
}

// New returns the initial dynamic state of m
func New(m *bsp.Map) *Dynamic {
	d := &Dynamic{
		MapName:  m.Name,
		Sectors:  make([]SectorState, len(m.Sectors)),
		Sidedefs: make([]SidedefState, len(m.Sidedefs)),
	}
	for i := range m.Sectors {
		s := &m.Sectors[i]
		d.Sectors[i] = SectorState{
			Interval:   s.Interval(),
			LightLevel: s.LightLevel,
		}
	}
	for i, s := range m.Sidedefs {
		d.Sidedefs[i] = SidedefState{
			TopTexture:    s.TopTexture,
			BottomTexture: s.BottomTexture,
			MiddleTexture: s.MiddleTexture,
		}
	}
	return d
}

func (d *Dynamic) Interval(sector int) geom.Interval {
	return d.Sectors[sector].Interval
}

// Height returns the floor height for normal > 0 and the ceiling height
// otherwise
func (d *Dynamic) Height(sector int, normal float32) float32 {
	if normal > 0 {
		return d.Sectors[sector].Interval.Min
	}
	return d.Sectors[sector].Interval.Max
}

// SetHeight is the counterpart of Height
func (d *Dynamic) SetHeight(sector int, normal, h float32) {
	if normal > 0 {
		d.Sectors[sector].Interval.Min = h
	} else {
		d.Sectors[sector].Interval.Max = h
	}
}

func (d *Dynamic) SetLightLevel(sector int, l float32) {
	d.Sectors[sector].LightLevel = l
}

func (d *Dynamic) Texture(sidedef int, p TexturePart) string {
	s := &d.Sidedefs[sidedef]
	switch p {
	case TextureTop:
		return s.TopTexture
	case TextureBottom:
		return s.BottomTexture
	default:
		return s.MiddleTexture
	}
}

func (d *Dynamic) SetTexture(sidedef int, p TexturePart, name string) {
	s := &d.Sidedefs[sidedef]
	switch p {
	case TextureTop:
		s.TopTexture = name
	case TextureBottom:
		s.BottomTexture = name
	default:
		s.MiddleTexture = name
	}
}

// SwapTexture replaces from by to on any part of the sidedef. Returns false
// if no part used from. This is how switches flip between their on and off
// textures.
func (d *Dynamic) SwapTexture(sidedef int, from, to string) bool {
	for _, p := range []TexturePart{TextureTop, TextureMiddle, TextureBottom} {
		if d.Texture(sidedef, p) == from {
			d.SetTexture(sidedef, p, to)
			return true
		}
	}
	return false
}
