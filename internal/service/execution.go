// Package service contains the business layer: request validation,
// execution orchestration, and history recording.
//
// The service receives the sandbox.Runner and repository interfaces, not
// concrete types, so tests swap in mocks and the HTTP layer never touches
// the sandbox or the database directly.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/python-sandbox/internal/apperror"
	"github.com/sakif/python-sandbox/internal/model"
	"github.com/sakif/python-sandbox/internal/repository"
	"github.com/sakif/python-sandbox/internal/sandbox"
)

// Validation constants.
const (
	MaxCodeLength      = 100000 // ~100KB of code
	MaxSessionIDLength = 128
	DefaultListLimit   = 20
	MaxListLimit       = 100
)

// ExecutionService validates requests, runs them through the sandbox, and
// records each outcome in the session's history.
type ExecutionService struct {
	runner sandbox.Runner
	repo   repository.ExecutionRepository
	logger *slog.Logger
}

// NewExecutionService creates an ExecutionService.
func NewExecutionService(runner sandbox.Runner, repo repository.ExecutionRepository, logger *slog.Logger) *ExecutionService {
	return &ExecutionService{
		runner: runner,
		repo:   repo,
		logger: logger,
	}
}

// Run validates the request and executes it. Validation failures return a
// ValidationFailed error before any work area is opened or any other side
// effect happens; once validation passes, every fault is expressed inside
// the returned result, never as an error.
func (s *ExecutionService) Run(ctx context.Context, req sandbox.ExecutionRequest) (*sandbox.ExecutionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	result := s.runner.Execute(ctx, req)
	elapsed := time.Since(start)

	// History is best-effort: a storage failure must not fail a request
	// whose execution already completed.
	record := &model.Execution{
		SessionID:   req.SessionID,
		Success:     result.Success,
		Error:       result.Error,
		ArtifactURL: result.ArtifactURL,
		DurationMs:  elapsed.Milliseconds(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to record execution",
			slog.String("sessionId", req.SessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("execution completed",
		slog.String("sessionId", req.SessionID),
		slog.Bool("success", result.Success),
		slog.Duration("duration", elapsed),
	)

	return result, nil
}

// History returns a session's past executions, newest first, with
// limit/offset clamped to sane bounds.
func (s *ExecutionService) History(ctx context.Context, sessionID string, limit, offset int) ([]model.Execution, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	executions, err := s.repo.ListBySession(ctx, sessionID, repository.ListOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.logger.Error("failed to list executions",
			slog.String("sessionId", sessionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing executions: %w", err)
	}

	return executions, nil
}

func validateRequest(req sandbox.ExecutionRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return apperror.ValidationFailed("code", "code is required")
	}
	if len(req.Code) > MaxCodeLength {
		return apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}
	if err := validateSessionID(req.SessionID); err != nil {
		return err
	}
	for i, spec := range req.InputFiles {
		if spec.Filename == "" || spec.URL == "" {
			return apperror.ValidationFailed("inputFiles",
				fmt.Sprintf("inputFiles[%d] must have both filename and url", i))
		}
	}
	return nil
}

// validateSessionID rejects session IDs that could not safely name a
// directory under the artifact store root.
func validateSessionID(id string) error {
	if id == "" {
		return apperror.ValidationFailed("sessionId", "sessionId is required")
	}
	if len(id) > MaxSessionIDLength {
		return apperror.ValidationFailed("sessionId",
			fmt.Sprintf("sessionId must be %d characters or less", MaxSessionIDLength))
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return apperror.ValidationFailed("sessionId", "sessionId must not contain path separators or '..'")
	}
	return nil
}
