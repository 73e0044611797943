// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"godoom/bsp/bsptest"
	"godoom/geom"
)

func TestNewFromMap(t *testing.T) {
	d := New(bsptest.TwoRooms())
	require.Len(t, d.Sectors, 2)
	require.Len(t, d.Sidedefs, 8)
	assert.Equal(t, geom.Interval{Min: 0, Max: 128}, d.Interval(1))
	assert.Equal(t, float32(192), d.Sectors[1].LightLevel)
	assert.Equal(t, "SUPPORT2", d.Texture(6, TextureBottom))
}

func TestHeight(t *testing.T) {
	d := New(bsptest.TwoRooms())
	d.SetHeight(1, 1, 24)
	d.SetHeight(1, -1, 100)
	assert.Equal(t, float32(24), d.Height(1, 1))
	assert.Equal(t, float32(100), d.Height(1, -1))
	assert.Equal(t, geom.Interval{Min: 24, Max: 100}, d.Interval(1))
	// the other sector is untouched
	assert.Equal(t, geom.Interval{Min: 0, Max: 128}, d.Interval(0))
}

func TestSwapTexture(t *testing.T) {
	d := New(bsptest.TwoRooms())
	assert.True(t, d.SwapTexture(0, "STARTAN3", "SW2STARR"))
	assert.Equal(t, "SW2STARR", d.Texture(0, TextureMiddle))
	assert.False(t, d.SwapTexture(0, "STARTAN3", "SW2STARR"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	d := New(bsptest.TwoRooms())
	d.SetHeight(1, 1, 37.5)
	d.SetLightLevel(0, 12)
	d.SetTexture(3, TextureTop, "SW1COMP")

	b, err := d.MarshalBinary()
	require.NoError(t, err)

	var got Dynamic
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, d, &got)
}

func TestSnapshotGarbage(t *testing.T) {
	var d Dynamic
	assert.Error(t, d.UnmarshalBinary([]byte("not a snapshot")))
}

func TestConsumeFixed32(t *testing.T) {
	var b []byte
	b = appendFloat(b, fieldFloor, 1.5)
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 300)
	b = appendFloat(b, fieldLight, -2)

	var got []float32
	require.NoError(t, consumeMessage(b, func(f field) error {
		got = append(got, math.Float32frombits(f.fixed32))
		return nil
	}))
	assert.Equal(t, []float32{1.5, -2}, got, "varints are skipped")

	truncated := protowire.AppendTag(nil, fieldFloor, protowire.Fixed32Type)
	truncated = append(truncated, 0, 0)
	assert.Error(t, consumeMessage(truncated, func(field) error { return nil }))
}
