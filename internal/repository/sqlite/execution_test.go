package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/python-sandbox/internal/model"
	"github.com/sakif/python-sandbox/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedExecution inserts one record, pausing briefly so created_at ordering
// between consecutive seeds is unambiguous.
func seedExecution(t *testing.T, db *DB, sessionID string, success bool) *model.Execution {
	t.Helper()
	exec := &model.Execution{
		SessionID:  sessionID,
		Success:    success,
		DurationMs: 42,
	}
	require.NoError(t, db.Create(context.Background(), exec))
	time.Sleep(2 * time.Millisecond)
	return exec
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	db := newTestDB(t)

	exec := &model.Execution{
		SessionID:   "sess1",
		Success:     true,
		ArtifactURL: "/api/uploads/sess1/plot_abc.png",
		DurationMs:  120,
	}
	require.NoError(t, db.Create(context.Background(), exec))

	assert.NotEmpty(t, exec.ID)
	assert.False(t, exec.CreatedAt.IsZero())

	got, err := db.ListBySession(context.Background(), "sess1", repository.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, exec.ID, got[0].ID)
	assert.Equal(t, "/api/uploads/sess1/plot_abc.png", got[0].ArtifactURL)
	assert.Equal(t, int64(120), got[0].DurationMs)
	assert.True(t, got[0].Success)
}

func TestListBySession_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	oldest := seedExecution(t, db, "sess1", true)
	middle := seedExecution(t, db, "sess1", false)
	newest := seedExecution(t, db, "sess1", true)

	got, err := db.ListBySession(context.Background(), "sess1", repository.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, middle.ID, got[1].ID)
	assert.Equal(t, oldest.ID, got[2].ID)
}

func TestListBySession_LimitAndOffset(t *testing.T) {
	db := newTestDB(t)

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, seedExecution(t, db, "sess1", true).ID)
	}

	got, err := db.ListBySession(context.Background(), "sess1", repository.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first, skipping the most recent one.
	assert.Equal(t, ids[3], got[0].ID)
	assert.Equal(t, ids[2], got[1].ID)
}

func TestListBySession_FiltersBySession(t *testing.T) {
	db := newTestDB(t)

	seedExecution(t, db, "sess-a", true)
	seedExecution(t, db, "sess-b", true)
	seedExecution(t, db, "sess-a", false)

	got, err := db.ListBySession(context.Background(), "sess-a", repository.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, "sess-a", e.SessionID)
	}
}

func TestListBySession_EmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)

	got, err := db.ListBySession(context.Background(), "no-such-session", repository.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
