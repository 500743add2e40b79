package sandbox

import (
	"math"
	"time"
)

// Fixed filenames inside the work area. The preamble saves the captured
// figure under plotFilename, so the promoter only ever has to look for one
// name.
const (
	scriptFilename = "script.py"
	plotFilename   = "plot.png"
)

// Config holds the process-wide sandbox settings. It is fixed at startup
// and never mutated per request.
type Config struct {
	// PythonBin is the interpreter binary invoked for each execution.
	PythonBin string
	// DefaultTimeout is used when a request supplies no timeout (or a
	// non-positive one).
	DefaultTimeout time.Duration
	// MaxTimeout is a hard ceiling; requested timeouts above it are clamped.
	MaxTimeout time.Duration
	// FetchTimeout bounds each input-file fetch, independent of the
	// execution timeout.
	FetchTimeout time.Duration
	// BaseOrigin resolves path-absolute input-file URLs ("/api/uploads/…").
	BaseOrigin string
}

// DefaultConfig provides the defaults for a Python sandbox.
func DefaultConfig() Config {
	return Config{
		PythonBin:      "python3",
		DefaultTimeout: 10 * time.Second,
		MaxTimeout:     60 * time.Second,
		FetchTimeout:   10 * time.Second,
		BaseOrigin:     "http://localhost:3000",
	}
}

// clampTimeout validates a requested timeout in seconds. Missing,
// non-finite, or non-positive values fall back to the default; values above
// the ceiling are clamped to it. Callers cannot obtain unbounded execution.
func (c Config) clampTimeout(seconds float64) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return c.DefaultTimeout
	}
	// Clamp while still in float seconds: converting a huge value to
	// Duration first would overflow int64 nanoseconds and go negative.
	if seconds >= c.MaxTimeout.Seconds() {
		return c.MaxTimeout
	}
	return time.Duration(seconds * float64(time.Second))
}
