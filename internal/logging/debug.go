package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	warnOutput  io.Writer = os.Stderr
	debugOutput io.Writer = os.Stderr
	verbose     atomic.Bool
)

// SetWarnOutput redirects Warnf and returns a function restoring the previous writer
func SetWarnOutput(w io.Writer) (restore func()) {
	previous := warnOutput
	warnOutput = w
	return func() { warnOutput = previous }
}

// SetDebugOutput redirects Debugf and Debugln and returns a function restoring the previous writer
func SetDebugOutput(w io.Writer) (restore func()) {
	previous := debugOutput
	debugOutput = w
	return func() { debugOutput = previous }
}

// SetVerbose turns debug output on regardless of MT_DEBUG.
func SetVerbose(on bool) {
	verbose.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via --verbose or the MT_DEBUG environment variable
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("MT_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOutput, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(debugOutput, args...)
	}
}

// Warnf reports a recovered failure on stderr. Used for collaborator errors
// that are swallowed after falling back.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(warnOutput, "warning: "+format+"\n", args...)
}
