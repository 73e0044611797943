// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import (
	"godoom/cvars"
	"godoom/math"
	"time"
)

// GameTime tracks simulation time. The clock is replaceable so ticks can be
// driven without waiting in real time.
type GameTime struct {
	time       float64
	oldTime    float64
	frameTime  float64
	frameCount int
	start      time.Time
	now        func() time.Time
}

func New() *GameTime {
	g := &GameTime{now: time.Now}
	g.start = g.now()
	g.Reset()
	return g
}

// NewFixed returns a GameTime whose clock advances by step on every
// UpdateTime call
func NewFixed(step time.Duration) *GameTime {
	var t time.Time
	g := &GameTime{now: func() time.Time {
		t = t.Add(step)
		return t
	}}
	g.Reset()
	return g
}

func (h *GameTime) Reset() {
	h.frameTime = 0.1
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) OldTime() float64   { return h.oldTime }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }
func (h *GameTime) FrameIncrease()     { h.frameCount++ }

// UpdateTime updates the host time.
// Returns false if it would exceed max fps
func (h *GameTime) UpdateTime(timedemo bool) bool {
	h.time = h.now().Sub(h.start).Seconds()
	maxFPS := math.Clamp(10.0, float64(cvars.HostMaxFps.Value()), 1000.0)
	if !timedemo && (h.time-h.oldTime < 1/maxFPS) {
		return false
	}
	h.frameTime = h.time - h.oldTime
	h.oldTime = h.time

	if cvars.HostTimeScale.Value() > 0 {
		h.frameTime *= float64(cvars.HostTimeScale.Value())
	} else if cvars.HostFrameRate.Value() > 0 {
		h.frameTime = float64(cvars.HostFrameRate.Value())
	} else {
		h.frameTime = math.Clamp(0.001, h.frameTime, 0.1)
	}
	return true
}
