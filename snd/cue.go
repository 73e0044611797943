// SPDX-License-Identifier: GPL-2.0-or-later

// Package snd carries sound start signals from the simulation to whatever
// plays them. Nothing here mixes or plays audio.
package snd

import (
	"sort"

	"github.com/google/uuid"
)

// Cue is a handle to a sound asset. The zero Cue means no sound.
type Cue struct {
	ID   uuid.UUID
	Name string
}

func NewCue(name string) Cue {
	return Cue{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
	}
}

func (c Cue) IsZero() bool {
	return c.ID == uuid.Nil
}

// Precache hands out one Cue per sound name
type Precache struct {
	byName map[string]Cue
}

func NewPrecache(names ...string) *Precache {
	p := &Precache{byName: make(map[string]Cue)}
	for _, n := range names {
		p.Cue(n)
	}
	return p
}

// Cue returns the cue of name, creating it on first use. The empty name is
// the zero Cue.
func (p *Precache) Cue(name string) Cue {
	if name == "" {
		return Cue{}
	}
	if c, ok := p.byName[name]; ok {
		return c
	}
	c := NewCue(name)
	p.byName[name] = c
	return c
}

func (p *Precache) Names() []string {
	r := make([]string, 0, len(p.byName))
	for n := range p.byName {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}
