package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/python-sandbox/internal/model"
	"github.com/sakif/python-sandbox/internal/repository"
)

// Compile-time check that *DB implements repository.ExecutionRepository.
var _ repository.ExecutionRepository = (*DB)(nil)

// Create inserts an execution record, assigning its ID and timestamp.
func (db *DB) Create(ctx context.Context, exec *model.Execution) error {
	exec.ID = xid.New().String()
	exec.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO executions (id, session_id, success, error, artifact_url, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exec.ID, exec.SessionID, exec.Success, exec.Error,
		exec.ArtifactURL, exec.DurationMs, exec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting execution: %w", err)
	}
	return nil
}

// ListBySession returns a session's executions, newest first.
func (db *DB) ListBySession(ctx context.Context, sessionID string, opts repository.ListOptions) ([]model.Execution, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, session_id, success, error, artifact_url, duration_ms, created_at
		FROM executions
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		sessionID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing executions: %w", err)
	}
	defer rows.Close()

	executions := []model.Execution{}
	for rows.Next() {
		var e model.Execution
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Success, &e.Error,
			&e.ArtifactURL, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning execution: %w", err)
		}
		executions = append(executions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating executions: %w", err)
	}

	return executions, nil
}
