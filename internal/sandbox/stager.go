package sandbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sakif/python-sandbox/internal/observability"
)

// Stager fetches declared input files into a work area before execution.
// Every per-file failure — unsafe destination, transport error, non-2xx
// status, write error — degrades to a bracketed warning line; one bad input
// never aborts the batch.
type Stager struct {
	client     *http.Client
	baseOrigin string
	logger     *slog.Logger
}

// NewStager creates a Stager. Fetches are bounded by cfg.FetchTimeout and
// the client's built-in redirect limit (10 hops).
func NewStager(cfg Config, logger *slog.Logger) *Stager {
	return &Stager{
		client:     &http.Client{Timeout: cfg.FetchTimeout},
		baseOrigin: strings.TrimRight(cfg.BaseOrigin, "/"),
		logger:     logger,
	}
}

// Stage resolves and writes each spec into the work area, in input order.
// It returns the accumulated warning lines for the files that did not land;
// it never returns an error.
func (s *Stager) Stage(ctx context.Context, wa *WorkArea, specs []InputFileSpec) []string {
	var warnings []string

	for _, spec := range specs {
		dest, err := wa.Join(spec.Filename)
		if err != nil {
			s.logger.Warn("skipping input file with unsafe path",
				slog.String("filename", spec.Filename),
			)
			warnings = append(warnings,
				fmt.Sprintf("[Warning: Skipped input file with unsafe path: %s]", spec.Filename))
			observability.InputFetchWarnings.Inc()
			continue
		}

		body, err := s.fetch(ctx, spec.URL)
		if err != nil {
			s.logger.Warn("failed to fetch input file",
				slog.String("filename", spec.Filename),
				slog.String("url", spec.URL),
				slog.String("error", err.Error()),
			)
			warnings = append(warnings,
				fmt.Sprintf("[Error fetching input file '%s': %s]", spec.Filename, err))
			observability.InputFetchWarnings.Inc()
			continue
		}

		if err := writeVerbatim(dest, body); err != nil {
			s.logger.Warn("failed to write input file",
				slog.String("filename", spec.Filename),
				slog.String("dest", dest),
				slog.String("error", err.Error()),
			)
			warnings = append(warnings,
				fmt.Sprintf("[Error writing input file '%s': %s]", spec.Filename, err))
			observability.InputFetchWarnings.Inc()
			continue
		}

		s.logger.Debug("staged input file",
			slog.String("filename", spec.Filename),
			slog.String("dest", dest),
		)
	}

	return warnings
}

// fetch downloads rawURL and returns the body bytes.
func (s *Stager) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.resolveURL(rawURL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// writeVerbatim writes the fetched bytes to dest without transcoding.
// Input filenames may carry subdirectories ("data/input.csv").
func writeVerbatim(dest string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, body, 0o644)
}

// resolveURL joins path-absolute URLs ("/api/uploads/…") against the
// configured base origin; anything else is treated as already absolute.
func (s *Stager) resolveURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "/") {
		return s.baseOrigin + rawURL
	}
	return rawURL
}
