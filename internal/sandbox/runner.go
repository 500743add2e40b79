package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"
)

// rawOutcome is the unclassified result of one child-process run. Exactly
// one of the failure flags is set for a failed run; a zero exit code with
// no flags set is success.
type rawOutcome struct {
	stdout      string
	stderr      string
	exitCode    int
	timedOut    bool
	spawnFailed bool
	setupErr    error
}

// run writes the assembled script into the work area and executes it with a
// fresh interpreter process. The child's working directory is the work
// area, so relative reads hit staged inputs and the captured plot lands
// next to them. On timeout the whole process group is killed so any
// descendants the snippet spawned die with it; whatever the pipes held by
// then is kept as best-effort partial output.
func (s *Sandbox) run(ctx context.Context, wa *WorkArea, assembledCode string, timeout time.Duration) rawOutcome {
	scriptPath := filepath.Join(wa.Path(), scriptFilename)
	if err := os.WriteFile(scriptPath, []byte(assembledCode), 0o644); err != nil {
		return rawOutcome{setupErr: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.config.PythonBin, scriptFilename)
	cmd.Dir = wa.Path()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Own process group, so the cancel kill reaches descendants too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()

	out := rawOutcome{
		stdout: stdout.String(),
		stderr: stderr.String(),
	}

	switch {
	case err == nil:
		// Zero exit.
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.timedOut = true
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.exitCode = exitErr.ExitCode()
		} else {
			// The interpreter binary could not be located or started.
			out.spawnFailed = true
		}
	}

	return out
}
