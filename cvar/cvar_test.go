// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	cv := MustRegister("test_register", "0.5", ARCHIVE)
	assert.Equal(t, float32(0.5), cv.Value())
	assert.True(t, cv.Bool())
	assert.True(t, cv.Archive())

	_, err := Register("test_register", "1", NONE)
	assert.Error(t, err)
	assert.Panics(t, func() { MustRegister("test_register", "1", NONE) })

	got, ok := Get("test_register")
	require.True(t, ok)
	assert.Same(t, cv, got)
	assert.Equal(t, "*  ", got.Flags().String())
}

func TestSetValue(t *testing.T) {
	cv := MustRegister("test_setvalue", "0", NONE)
	var calls int
	cv.SetCallback(func(*Cvar) { calls++ })

	cv.SetValue(3)
	assert.Equal(t, "3", cv.String())
	cv.SetValue(0.25)
	assert.Equal(t, "0.25", cv.String())
	cv.SetByString("on")
	assert.Equal(t, float32(0), cv.Value())
	assert.True(t, cv.Bool())
	cv.Reset()
	assert.False(t, cv.Bool())
	assert.Equal(t, 4, calls)
}

func TestBounds(t *testing.T) {
	cv := MustRegister("test_bounds", "5", NONE).SetBounds(0, 2)
	assert.Equal(t, float32(2), cv.Value())
	assert.Equal(t, "2", cv.String())
	cv.SetByString("-1")
	assert.Equal(t, "0", cv.String())
	cv.SetByString("0.5")
	assert.Equal(t, float32(0.5), cv.Value())
}

func TestAllSorted(t *testing.T) {
	MustRegister("test_zz", "0", NONE)
	MustRegister("test_aa", "0", NONE)
	all := All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name(), all[i].Name())
	}
}

func TestReadOnly(t *testing.T) {
	cv := MustRegister("test_rom", "7", ROM)
	cv.SetByString("8")
	assert.Equal(t, float32(7), cv.Value())
}

func TestLoadConfig(t *testing.T) {
	a := MustRegister("test_cfg_a", "1", ARCHIVE)
	b := MustRegister("test_cfg_b", "x", NONE)

	require.NoError(t, LoadConfig(strings.NewReader("test_cfg_a: 2.5\ntest_cfg_b: hello\n")))
	assert.Equal(t, float32(2.5), a.Value())
	assert.Equal(t, "hello", b.String())

	var sb strings.Builder
	require.NoError(t, WriteConfig(&sb))
	assert.Contains(t, sb.String(), "test_cfg_a: \"2.5\"")
	assert.NotContains(t, sb.String(), "test_cfg_b")

	err := LoadConfig(strings.NewReader("test_cfg_a: 3\nno_such_cvar: 1\n"))
	assert.Error(t, err)
	assert.Equal(t, float32(2.5), a.Value(), "bad configs change nothing")

	assert.Error(t, LoadConfig(strings.NewReader("test_cfg_a: [1, 2]\n")))
	assert.Error(t, LoadConfig(strings.NewReader("- a\n- b\n")))
	assert.NoError(t, LoadConfig(strings.NewReader("")))
}
