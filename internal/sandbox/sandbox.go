// Package sandbox executes untrusted Python snippets in per-request
// ephemeral work areas.
//
// Each execution gets a private directory (the work area), declared input
// files fetched into it, a fixed instrumentation preamble prepended to the
// user code, and a fresh child interpreter process whose working directory
// is the work area. Stdout, stderr and at most one generated plot image are
// captured; the plot is promoted into durable session-scoped storage. The
// work area is removed on every exit path.
package sandbox

import "context"

// ExecutionRequest describes one snippet to run.
type ExecutionRequest struct {
	Code           string          `json:"code"`
	SessionID      string          `json:"sessionId"`
	InputFiles     []InputFileSpec `json:"inputFiles,omitempty"`
	TimeoutSeconds float64         `json:"timeoutSeconds,omitempty"`
}

// InputFileSpec names a remote resource to stage into the work area before
// the snippet runs. Filename is the destination name inside the work area;
// URL is where to fetch it from (path-absolute URLs are resolved against
// the configured base origin).
type InputFileSpec struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ExecutionResult is the unified outcome of one execution. Success is true
// iff the child process exited with status zero; every other outcome
// (timeout, spawn failure, non-zero exit) sets Success false and Error to a
// kind-specific message. Stderr may carry synthesized bracketed diagnostic
// lines for staging and promotion warnings.
type ExecutionResult struct {
	Stdout      string `json:"stdout"`
	Stderr      string `json:"stderr"`
	Error       string `json:"error,omitempty"`
	Success     bool   `json:"success"`
	ArtifactURL string `json:"artifactUrl,omitempty"`
}

// Runner is the core interface for executing a snippet in isolation.
// Execute never fails past request validation: infrastructure and
// user-code faults are folded into the result.
type Runner interface {
	Execute(ctx context.Context, req ExecutionRequest) *ExecutionResult
}

// ArtifactStore is the durable, session-scoped storage the promoter moves
// generated plots into. SaveArtifact must be safe under concurrent calls
// for the same session and returns a caller-resolvable reference.
type ArtifactStore interface {
	SaveArtifact(sessionID, srcPath string) (string, error)
}
