// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	cmdl "godoom/commandline"
	"godoom/conlog"
	"godoom/cvar"
	"godoom/cvars"
	"godoom/gametime"
	"godoom/host"
	"godoom/mapfile"
)

func main() {
	flag.Parse()
	if cmdl.Developer() {
		cvars.Developer.SetByString("1")
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if c := cmdl.Config(); c != "" {
		if err := cvar.LoadConfigFile(c); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if cmdl.Map() == "" {
		log.Fatalf("no map, use -map")
	}
	m, err := mapfile.LoadFile(cmdl.Map())
	if err != nil {
		log.Fatalf("%v", err)
	}
	h, err := host.New(m)
	if err != nil {
		log.Fatalf("%v", err)
	}
	h.SpawnCrowd(cmdl.Crowd(), uint32(cmdl.Seed()))
	for _, l := range cmdl.Use() {
		conlog.Printf("use %d: %d specials\n", l, h.Use(l))
	}
	if cmdl.Developer() {
		cvar.List()
	}

	var gt *gametime.GameTime
	if cmdl.Timedemo() {
		gt = gametime.NewFixed(time.Second / time.Duration(max(cmdl.TickRate(), 1)))
	} else {
		gt = gametime.New()
	}
	for h.FrameCount() < cmdl.Ticks() {
		if !gt.UpdateTime(cmdl.Timedemo()) {
			time.Sleep(time.Millisecond)
			continue
		}
		gt.FrameIncrease()
		for _, ev := range h.Frame(float32(gt.FrameTime())) {
			sector, _ := h.Driver.Sector(ev.Entity)
			conlog.Printf("%8.3f sector %d %s, floor %v ceiling %v\n",
				gt.Time(), sector, ev.Type, h.Dynamic.Height(sector, 1), h.Dynamic.Height(sector, -1))
		}
		if n := cmdl.MetricsInterval(); cmdl.Metrics() && n > 0 && h.FrameCount()%n == 0 {
			writeMetrics(h)
		}
	}

	if cmdl.Metrics() {
		writeMetrics(h)
	}
	if p := cmdl.Snapshot(); p != "" {
		b, err := h.Dynamic.MarshalBinary()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := os.WriteFile(p, b, 0644); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func writeMetrics(h *host.Host) {
	if err := h.WriteMetrics(os.Stdout); err != nil {
		log.Printf("%v", err)
	}
}
