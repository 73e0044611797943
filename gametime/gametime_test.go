// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"godoom/cvars"
)

func TestUpdateTime(t *testing.T) {
	tests := []struct {
		name      string
		step      time.Duration
		timescale string
		framerate string
		ok        bool
		want      float64
	}{
		{"normal", 20 * time.Millisecond, "0", "0", true, 0.02},
		{"too fast", time.Millisecond, "0", "0", false, 0.1},
		{"clamped", time.Second, "0", "0", true, 0.1},
		{"timescale", 20 * time.Millisecond, "0.5", "0", true, 0.01},
		{"framerate", 20 * time.Millisecond, "0", "0.05", true, 0.05},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cvars.HostTimeScale.SetByString(tc.timescale)
			cvars.HostFrameRate.SetByString(tc.framerate)
			defer cvars.HostTimeScale.Reset()
			defer cvars.HostFrameRate.Reset()

			g := NewFixed(tc.step)
			assert.Equal(t, tc.ok, g.UpdateTime(false))
			assert.InDelta(t, tc.want, g.FrameTime(), 1e-9)
		})
	}
}

func TestTimedemoIgnoresMaxFps(t *testing.T) {
	g := NewFixed(time.Millisecond)
	assert.True(t, g.UpdateTime(true))
	assert.InDelta(t, 0.001, g.FrameTime(), 1e-9)
	g.FrameIncrease()
	assert.Equal(t, 1, g.FrameCount())
}
