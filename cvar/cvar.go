// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvar is the registry of named tuning variables. Values are kept as
// strings, the float value is derived and optionally clamped to bounds.
package cvar

import (
	"log"
	"sort"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"godoom/conlog"
)

var registry = make(map[string]*Cvar)

type Flag uint8

const (
	NONE Flag = 0
	// ARCHIVE cvars are written by WriteConfig
	ARCHIVE Flag = 1 << iota
	// NOTIFY cvars print every change
	NOTIFY
	// ROM cvars keep their default
	ROM
)

func (f Flag) String() string {
	b := []byte("   ")
	if f&ARCHIVE != 0 {
		b[0] = '*'
	}
	if f&NOTIFY != 0 {
		b[1] = 's'
	}
	if f&ROM != 0 {
		b[2] = 'r'
	}
	return string(b)
}

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	name         string
	flags        Flag
	defaultValue string
	callback     CallbackFunc

	// stringValue is the truth, value the derived one
	stringValue string
	value       float32

	min, max float32
}

func (cv *Cvar) Name() string    { return cv.name }
func (cv *Cvar) Flags() Flag     { return cv.flags }
func (cv *Cvar) Default() string { return cv.defaultValue }
func (cv *Cvar) String() string  { return cv.stringValue }
func (cv *Cvar) Value() float32  { return cv.value }
func (cv *Cvar) Bool() bool      { return cv.stringValue != "0" }

func (cv *Cvar) Archive() bool {
	return cv.flags&ARCHIVE != 0
}

// SetCallback replaces the function run after every change
func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

// SetBounds clamps all future values to [min,max] and reapplies the current
// one.
func (cv *Cvar) SetBounds(min, max float32) *Cvar {
	cv.min, cv.max = min, max
	cv.set(cv.stringValue)
	return cv
}

func (cv *Cvar) SetByString(s string) {
	if cv.flags&ROM != 0 {
		return
	}
	cv.set(s)
}

func (cv *Cvar) set(s string) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		// non numeric values are legal, they just read as 0
		v = 0
	}
	cv.value = float32(v)
	cv.stringValue = s
	if cv.min < cv.max && (cv.value < cv.min || cv.value > cv.max) {
		cv.value = math32.Max(cv.min, math32.Min(cv.value, cv.max))
		cv.stringValue = format(cv.value)
	}
	if cv.flags&NOTIFY != 0 {
		conlog.Printf("\"%s\" changed to \"%s\"\n", cv.name, cv.stringValue)
	}
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func format(v float32) string {
	if float32(int(v)) == v {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func (cv *Cvar) SetValue(v float32) {
	cv.SetByString(format(v))
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func Get(name string) (*Cvar, bool) {
	cv, ok := registry[name]
	return cv, ok
}

// All returns the registered cvars sorted by name
func All() []*Cvar {
	r := make([]*Cvar, 0, len(registry))
	for _, cv := range registry {
		r = append(r, cv)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].name < r[j].name })
	return r
}

func Register(name, value string, flags Flag) (*Cvar, error) {
	if _, ok := registry[name]; ok {
		return nil, errors.Errorf("can't register cvar %s, already defined", name)
	}
	cv := &Cvar{name: name, flags: flags, defaultValue: value}
	cv.set(value)
	registry[name] = cv
	return cv, nil
}

func MustRegister(name, value string, flags Flag) *Cvar {
	cv, err := Register(name, value, flags)
	if err != nil {
		log.Panic(err)
	}
	return cv
}

func ResetAll() {
	for _, cv := range All() {
		cv.Reset()
	}
}

// List prints all cvars with their flags
func List() {
	all := All()
	for _, cv := range all {
		conlog.Printf("%s %s \"%s\"\n", cv.flags, cv.name, cv.stringValue)
	}
	conlog.Printf("%v cvars\n", len(all))
}
