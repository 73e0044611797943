// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"godoom/conlog"
	"godoom/cvar"
)

var (
	Developer            *cvar.Cvar
	HostFrameRate        *cvar.Cvar
	HostMaxFps           *cvar.Cvar
	HostTimeScale        *cvar.Cvar
	ServerPushEpsilon    *cvar.Cvar
	ServerSectorSound    *cvar.Cvar
	ServerSoundQueueSize *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	HostFrameRate = cvar.MustRegister("host_framerate", "0", cvar.NONE) // set for slow motion
	HostMaxFps = cvar.MustRegister("host_maxfps", "72", cvar.ARCHIVE).SetBounds(10, 1000)
	HostTimeScale = cvar.MustRegister("host_timescale", "0", cvar.NONE)
	ServerPushEpsilon = cvar.MustRegister("sv_pushepsilon", "0.03125", cvar.ARCHIVE).SetBounds(0, 8)
	ServerSectorSound = cvar.MustRegister("sv_sectorsoundinterval", "0.2286", cvar.ARCHIVE).SetBounds(0.02, 10) // 8 tics
	ServerSoundQueueSize = cvar.MustRegister("sv_soundqueue", "64", cvar.NONE).SetBounds(1, 4096)

	conlog.SetDeveloper(Developer.Bool)
}
