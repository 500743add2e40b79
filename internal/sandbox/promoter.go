package sandbox

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/python-sandbox/internal/observability"
)

// promote looks for the fixed-name plot file in the work area and moves it
// into the durable store under the session's namespace. Absence is the
// normal case — most executions produce no plot. A promotion failure
// degrades to a warning line: the snippet itself may have succeeded, so it
// never flips the result to failed.
func (s *Sandbox) promote(wa *WorkArea, sessionID string) (string, []string) {
	src := filepath.Join(wa.Path(), plotFilename)
	if _, err := os.Stat(src); err != nil {
		return "", nil
	}

	ref, err := s.store.SaveArtifact(sessionID, src)
	if err != nil {
		s.logger.Error("failed to promote artifact",
			slog.String("sessionId", sessionID),
			slog.String("error", err.Error()),
		)
		return "", []string{fmt.Sprintf("[Error processing generated plot: %s]", err)}
	}

	observability.ArtifactsPromoted.Inc()
	s.logger.Info("artifact promoted",
		slog.String("sessionId", sessionID),
		slog.String("artifact", ref),
	)
	return ref, nil
}
