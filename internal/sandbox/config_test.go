package sandbox

import (
	"math"
	"testing"
	"time"
)

func TestClampTimeout(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		seconds float64
		want    time.Duration
	}{
		{"missing (zero)", 0, cfg.DefaultTimeout},
		{"negative", -5, cfg.DefaultTimeout},
		{"NaN", math.NaN(), cfg.DefaultTimeout},
		{"positive infinity", math.Inf(1), cfg.DefaultTimeout},
		{"in range", 5, 5 * time.Second},
		{"fractional", 2.5, 2500 * time.Millisecond},
		{"at the ceiling", 60, cfg.MaxTimeout},
		{"above the ceiling", 3600, cfg.MaxTimeout},
		{"would overflow int64 nanoseconds", 1e10, cfg.MaxTimeout},
		{"extreme but finite", 1e18, cfg.MaxTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.clampTimeout(tt.seconds); got != tt.want {
				t.Errorf("clampTimeout(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}
