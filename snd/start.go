// SPDX-License-Identifier: GPL-2.0-or-later

package snd

import (
	"godoom/conlog"
	"godoom/physics"
)

type Start struct {
	Cue    Cue
	Entity physics.Entity
}

// Sink receives start signals. Implementations must not block.
type Sink interface {
	StartSound(s Start)
}

// Discard drops every signal
type Discard struct{}

func (Discard) StartSound(Start) {}

// Queue buffers start signals until the audio side drains them. Signals that
// do not fit are dropped.
type Queue struct {
	start   chan Start
	dropped int
}

func NewQueue(size int) *Queue {
	return &Queue{start: make(chan Start, size)}
}

func (q *Queue) StartSound(s Start) {
	select {
	case q.start <- s:
	default:
		q.dropped++
		conlog.DPrintf("snd: queue full, dropped %s\n", s.Cue.Name)
	}
}

// Drain returns all queued signals in the order they were started
func (q *Queue) Drain() []Start {
	var r []Start
	for {
		select {
		case s := <-q.start:
			r = append(r, s)
		default:
			return r
		}
	}
}

// Chan exposes the queue to a consumer running its own loop
func (q *Queue) Chan() <-chan Start {
	return q.start
}

func (q *Queue) Dropped() int {
	return q.dropped
}
