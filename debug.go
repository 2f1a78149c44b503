package mochi

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugEnabled and debugOut are process-wide: mochi runs a single session per
// process, so there is no per-session debug flag.
var (
	debugEnabled bool
	debugOut     io.Writer = os.Stderr
)

// SetDebugMode enables or disables debug logging. When enabled, lifecycle
// transitions, viewport changes, config loads, script steps and per-frame
// update timing are written to the debug output.
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

// DebugMode reports whether debug logging is enabled.
func DebugMode() bool {
	return debugEnabled
}

// SetDebugOutput redirects debug lines. A nil writer restores stderr.
func SetDebugOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	debugOut = w
}

// debugf writes one "[mochi] ..." line when debug mode is on.
func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[mochi] "+format+"\n", args...)
}

// Debugf is debugf for host packages, so their lines share the prefix and the
// enable flag.
func Debugf(format string, args ...any) {
	debugf(format, args...)
}

// debugStats holds per-update timing. Only populated when debug mode is on.
type debugStats struct {
	updateTime    time.Duration
	composeTime   time.Duration
	confettiAlive int
}

// debugSlowUpdate is the update duration above which timing is logged.
const debugSlowUpdate = 4 * time.Millisecond

func (s debugStats) log() {
	total := s.updateTime + s.composeTime
	if total < debugSlowUpdate {
		return
	}
	debugf("slow update: update %v | compose %v | total %v | confetti %d",
		s.updateTime, s.composeTime, total, s.confettiAlive)
}
