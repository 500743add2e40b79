package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/python-sandbox/internal/observability"
)

// Sandbox implements Runner with one host child process per execution.
type Sandbox struct {
	config Config
	stager *Stager
	store  ArtifactStore
	logger *slog.Logger
}

// Compile-time check that *Sandbox satisfies the Runner interface.
var _ Runner = (*Sandbox)(nil)

// New creates a Sandbox backed by the given artifact store.
func New(cfg Config, store ArtifactStore, logger *slog.Logger) *Sandbox {
	return &Sandbox{
		config: cfg,
		stager: NewStager(cfg, logger),
		store:  store,
		logger: logger,
	}
}

// Execute runs one snippet through the full pipeline:
// stage inputs → assemble script → run child process → promote artifact →
// assemble result. The work area is torn down on every exit path via the
// deferred Close. Execute converts every fault into the result shape; it
// never panics past the work-area teardown and never returns an error.
func (s *Sandbox) Execute(ctx context.Context, req ExecutionRequest) *ExecutionResult {
	start := time.Now()
	defer func() {
		observability.ExecutionDuration.Observe(time.Since(start).Seconds())
	}()

	timeout := s.config.clampTimeout(req.TimeoutSeconds)
	result := &ExecutionResult{}

	wa, err := OpenWorkArea()
	if err != nil {
		s.logger.Error("failed to create work area", slog.String("error", err.Error()))
		result.Error = "failed to create execution work area"
		return result
	}
	defer wa.Close(s.logger)

	s.logger.Debug("work area opened",
		slog.String("path", wa.Path()),
		slog.Duration("timeout", timeout),
	)

	warnings := s.stager.Stage(ctx, wa, req.InputFiles)

	outcome := s.run(ctx, wa, Assemble(req.Code), timeout)
	result.Stdout = outcome.stdout
	result.Stderr = outcome.stderr

	switch {
	case outcome.setupErr != nil:
		s.logger.Error("failed to write execution script", slog.String("error", outcome.setupErr.Error()))
		result.Error = "failed to prepare execution script"
	case outcome.spawnFailed:
		result.Error = fmt.Sprintf("python interpreter not found at %s", s.config.PythonBin)
		result.Stdout, result.Stderr = "", ""
		observability.ExecutionsTotal.WithLabelValues(observability.StatusSpawnFailure).Inc()
	case outcome.timedOut:
		result.Error = fmt.Sprintf("code execution timed out after %g seconds", timeout.Seconds())
		s.logger.Warn("execution timed out",
			slog.String("sessionId", req.SessionID),
			slog.Duration("timeout", timeout),
		)
		observability.ExecutionsTotal.WithLabelValues(observability.StatusTimeout).Inc()
	case outcome.exitCode != 0:
		result.Error = userCodeError(outcome.exitCode, outcome.stderr)
		observability.ExecutionsTotal.WithLabelValues(observability.StatusUserError).Inc()
	default:
		result.Success = true
		observability.ExecutionsTotal.WithLabelValues(observability.StatusOK).Inc()
	}

	// The snippet may have saved a plot before failing, so only timeout,
	// spawn failure and setup failure skip promotion.
	if !outcome.timedOut && !outcome.spawnFailed && outcome.setupErr == nil {
		ref, promoWarnings := s.promote(wa, req.SessionID)
		result.ArtifactURL = ref
		warnings = append(warnings, promoWarnings...)
	}

	result.Stderr = appendWarnings(result.Stderr, warnings)
	return result
}

// userCodeError builds the error summary for a non-zero exit. The
// instrumentation's own "[Plot saved to …]" lines are stripped from the
// summary; the raw stderr in the result still carries them.
func userCodeError(exitCode int, stderr string) string {
	msg := fmt.Sprintf("code execution failed with exit code %d", exitCode)
	if filtered := filterInstrumentation(stderr); filtered != "" {
		msg += "\nStderr:\n" + filtered
	}
	return msg
}

func filterInstrumentation(stderr string) string {
	var kept []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.HasPrefix(line, plotSavedMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// appendWarnings attaches staging and promotion diagnostics to stderr, one
// bracketed line each.
func appendWarnings(stderr string, warnings []string) string {
	if len(warnings) == 0 {
		return stderr
	}
	var b strings.Builder
	b.WriteString(stderr)
	for _, w := range warnings {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		b.WriteString(w)
		b.WriteString("\n")
	}
	return b.String()
}
