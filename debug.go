package tilekit

import "time"

// globalDebug enables extra layout logging and per-frame timing. tilekit is
// single-threaded, so it is a plain variable.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, grids log every
// layout pass and App logs per-frame timings, all at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func DebugMode() bool {
	return globalDebug
}

// frameStats holds per-frame timings. Only populated in debug mode.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	layers     int
	events     int
}

func (s frameStats) log() {
	if !globalDebug {
		return
	}
	logger.Debug("frame",
		"update", s.updateTime,
		"draw", s.drawTime,
		"layers", s.layers,
		"pointerEvents", s.events)
}
