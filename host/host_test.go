// SPDX-License-Identifier: GPL-2.0-or-later

package host

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godoom/bsp/bsptest"
	"godoom/cvars"
	"godoom/level"
	"godoom/sectormove"
)

const tic = float32(1) / 35

func TestNewSpawnsThings(t *testing.T) {
	h, err := New(bsptest.TwoRooms())
	require.NoError(t, err)
	require.Len(t, h.World.Entities(), 1)
	tr, _ := h.World.Transform(h.World.Entities()[0])
	assert.Equal(t, float32(32), tr.Position[0])

	h.SpawnCrowd(20, 3)
	assert.Len(t, h.World.Entities(), 21)
	for _, e := range h.World.Entities() {
		assert.False(t, h.World.TestPosition(e))
	}
}

func TestLift(t *testing.T) {
	h, err := New(bsptest.TwoRooms())
	require.NoError(t, err)
	h.Dynamic.SetHeight(1, 1, 64)

	assert.Equal(t, 0, h.Use(0), "no special")
	assert.Equal(t, 0, h.Use(100))
	require.Equal(t, 1, h.Use(6))

	var events []sectormove.SectorMoveEvent
	for i := 0; i < 35*6; i++ {
		events = append(events, h.Frame(tic)...)
	}
	assert.Equal(t, 35*6, h.FrameCount())
	require.Len(t, events, 2)
	assert.Equal(t, sectormove.TargetReached, events[0].Type)
	assert.Equal(t, sectormove.TargetReached, events[1].Type)
	assert.Equal(t, float32(64), h.Dynamic.Height(1, 1))
	assert.False(t, h.Specials.Active(1))

	var sb strings.Builder
	require.NoError(t, h.WriteMetrics(&sb))
	assert.Contains(t, sb.String(), `godoom_sectormove_events_total{plane="floor",type="target_reached"} 2`)

	b, err := h.Dynamic.MarshalBinary()
	require.NoError(t, err)
	var d level.Dynamic
	require.NoError(t, d.UnmarshalBinary(b))
	assert.Equal(t, h.Dynamic, &d)
}

func TestCvarsApply(t *testing.T) {
	h, err := New(bsptest.TwoRooms())
	require.NoError(t, err)
	cvars.ServerPushEpsilon.SetByString("0.5")
	defer cvars.ServerPushEpsilon.Reset()
	assert.Equal(t, float32(0.5), h.World.Epsilon)
}
