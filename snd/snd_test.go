// SPDX-License-Identifier: GPL-2.0-or-later

package snd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecache(t *testing.T) {
	p := NewPrecache("DSSTNMOV", "DSPSTOP")
	a := p.Cue("DSSTNMOV")
	assert.False(t, a.IsZero())
	assert.Equal(t, a, p.Cue("DSSTNMOV"))
	assert.NotEqual(t, a.ID, p.Cue("DSPSTOP").ID)
	assert.True(t, p.Cue("").IsZero())
	assert.Equal(t, []string{"DSPSTOP", "DSSTNMOV"}, p.Names())
}

func TestQueue(t *testing.T) {
	q := NewQueue(2)
	c := NewCue("DSSTNMOV")
	q.StartSound(Start{Cue: c, Entity: 1})
	q.StartSound(Start{Cue: c, Entity: 2})
	q.StartSound(Start{Cue: c, Entity: 3})

	got := q.Drain()
	require.Len(t, got, 2)
	assert.EqualValues(t, 1, got[0].Entity)
	assert.EqualValues(t, 2, got[1].Entity)
	assert.Equal(t, 1, q.Dropped())
	assert.Empty(t, q.Drain())
}
