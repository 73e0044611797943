// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	developer bool
	timedemo  bool

	metrics = boolInt{false, 0}

	ticks  int
	tickHz int
	use    intList
	crowd  int
	seed   int

	config   string
	mapFile  string
	snapshot string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

// intList collects "-flag 1 -flag 2" and "-flag 1,2"
type intList []int

func (l *intList) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func (l *intList) String() string {
	return fmt.Sprint([]int(*l))
}

func init() {
	flag.BoolVar(&developer, "developer", false, "Print debug messages")
	flag.BoolVar(&timedemo, "timedemo", false, "Run ticks as fast as possible")

	flag.Var(&metrics, "metrics", "Print metrics at exit, optional every n ticks")
	flag.Var(&use, "use", "Linedefs to use at the start, comma separated")

	flag.IntVar(&ticks, "ticks", 350, "Number of ticks to simulate")
	flag.IntVar(&tickHz, "tickrate", 35, "Ticks per second")
	flag.IntVar(&crowd, "crowd", 0, "Spawn this many extra colliders at random positions")
	flag.IntVar(&seed, "seed", 1, "Seed for the crowd positions")

	flag.StringVar(&config, "config", "", "YAML file with cvar values")
	flag.StringVar(&mapFile, "map", "", "JSON map to load")
	flag.StringVar(&snapshot, "snapshot", "", "Write the final sector state to this file")
}

func Developer() bool {
	return developer
}

func Timedemo() bool {
	return timedemo
}

func Metrics() bool {
	return metrics.set
}

// MetricsInterval is 0 if metrics are only printed at exit
func MetricsInterval() int {
	return metrics.num
}

func Ticks() int {
	return ticks
}

func TickRate() int {
	return tickHz
}

func Use() []int {
	return use
}

func Crowd() int {
	return crowd
}

func Seed() int {
	return seed
}

func Config() string {
	return config
}

func Map() string {
	return mapFile
}

func Snapshot() string {
	return snapshot
}
