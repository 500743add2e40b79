package sandbox

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// WorkArea is the ephemeral, exclusively-owned directory for one execution.
// It is created at the start of a request and removed at its end; no two
// requests ever share one.
type WorkArea struct {
	path string
}

// OpenWorkArea creates a fresh uniquely-named directory under the system
// temp dir.
func OpenWorkArea() (*WorkArea, error) {
	dir, err := os.MkdirTemp("", "sandbox-")
	if err != nil {
		return nil, fmt.Errorf("sandbox: creating work area: %w", err)
	}
	return &WorkArea{path: dir}, nil
}

// Path returns the absolute path of the work area directory.
func (w *WorkArea) Path() string {
	return w.path
}

// Join resolves name to a destination path strictly inside the work area.
// Absolute names and names whose cleaned join escapes the work area (via
// ".." segments) are rejected, which defeats path traversal through
// attacker-controlled filenames.
func (w *WorkArea) Join(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path not allowed: %q", name)
	}
	dest := filepath.Join(w.path, name)
	if !strings.HasPrefix(dest, w.path+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes work area: %q", name)
	}
	return dest, nil
}

// Close removes the work area and everything in it. Removal failure is
// logged, not escalated: a leaked temp directory degrades quality of
// service but does not affect correctness.
func (w *WorkArea) Close(logger *slog.Logger) {
	if err := os.RemoveAll(w.path); err != nil {
		logger.Error("failed to remove work area",
			slog.String("path", w.path),
			slog.String("error", err.Error()),
		)
	}
}
