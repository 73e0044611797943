// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

var (
	p         = slogPrintf(slog.LevelInfo)
	dp        = slogPrintf(slog.LevelDebug)
	developer = func() bool { return false }
)

func slogPrintf(l slog.Level) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		slog.Log(context.Background(), l, strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
	}
}

func SetPrintf(f func(string, ...interface{})) {
	p = f
}

func SetDPrintf(f func(string, ...interface{})) {
	dp = f
}

// SetDeveloper installs the check deciding whether DPrintf prints
func SetDeveloper(f func() bool) {
	developer = f
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

// DPrintf only prints in developer mode
func DPrintf(format string, v ...interface{}) {
	if !developer() {
		return
	}
	dp(format, v...)
}
