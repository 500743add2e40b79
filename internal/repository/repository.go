// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/python-sandbox/internal/model"
)

// ListOptions carries pagination for history queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// ExecutionRepository persists and queries execution history records.
type ExecutionRepository interface {
	Create(ctx context.Context, exec *model.Execution) error
	ListBySession(ctx context.Context, sessionID string, opts ListOptions) ([]model.Execution, error)
}
