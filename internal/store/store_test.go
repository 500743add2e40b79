package store

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"), "/api/uploads")
	require.NoError(t, err)
	return s
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))
	return src
}

func TestNewFileStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "uploads")
	s, err := NewFileStore(root, "/api/uploads/")
	require.NoError(t, err)

	info, err := os.Stat(s.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, filepath.IsAbs(s.Root()))
}

func TestSaveArtifact_MovesFile(t *testing.T) {
	s := newTestStore(t)
	src := writeSource(t, "png bytes")

	ref, err := s.SaveArtifact("sess1", src)
	require.NoError(t, err)

	// The source is gone; the bytes live under the session directory.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should have been moved away")

	stored := filepath.Join(s.Root(), "sess1", filepath.Base(ref))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestSaveArtifact_ReferenceFormat(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.SaveArtifact("sess1", writeSource(t, "x"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^/api/uploads/sess1/plot_[0-9a-v]{20}\.png$`), ref)
}

func TestSaveArtifact_TrimsTrailingSlashOnPublicBase(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "/api/uploads/")
	require.NoError(t, err)

	ref, err := s.SaveArtifact("sess1", writeSource(t, "x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/api/uploads/sess1/"))
	assert.NotContains(t, ref, "//")
}

func TestSaveArtifact_NamesNeverCollide(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SaveArtifact("sess1", writeSource(t, "one"))
	require.NoError(t, err)
	second, err := s.SaveArtifact("sess1", writeSource(t, "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	one, err := os.ReadFile(filepath.Join(s.Root(), "sess1", filepath.Base(first)))
	require.NoError(t, err)
	two, err := os.ReadFile(filepath.Join(s.Root(), "sess1", filepath.Base(second)))
	require.NoError(t, err)
	assert.Equal(t, "one", string(one))
	assert.Equal(t, "two", string(two))
}

func TestSaveArtifact_SessionsStayApart(t *testing.T) {
	s := newTestStore(t)

	refA, err := s.SaveArtifact("session-a", writeSource(t, "a"))
	require.NoError(t, err)
	refB, err := s.SaveArtifact("session-b", writeSource(t, "b"))
	require.NoError(t, err)

	assert.Contains(t, refA, "/session-a/")
	assert.Contains(t, refB, "/session-b/")

	entries, err := os.ReadDir(filepath.Join(s.Root(), "session-a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveArtifact_MissingSource(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveArtifact("sess1", filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
