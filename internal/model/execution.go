// Package model defines the data structures persisted by the service.
package model

import "time"

// Execution is the stored record of one completed sandbox run. Output is
// not persisted — only the outcome summary a session's history needs.
type Execution struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ArtifactURL string    `json:"artifactUrl,omitempty"`
	DurationMs  int64     `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
