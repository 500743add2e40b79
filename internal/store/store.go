// Package store implements the durable, session-scoped artifact store on
// the local filesystem. Artifacts are grouped in one directory per session
// under the store root and served back under a fixed URL prefix.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// FileStore saves artifacts under root/{sessionID}/ and builds references
// under publicBase/{sessionID}/{name}.
type FileStore struct {
	root       string
	publicBase string
}

// NewFileStore creates the store root if needed and returns a FileStore.
func NewFileStore(root, publicBase string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolving root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating root: %w", err)
	}
	return &FileStore{
		root:       abs,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Root returns the absolute store root, for mounting a file server over it.
func (s *FileStore) Root() string {
	return s.root
}

// SaveArtifact moves src into the session's directory under a fresh
// collision-resistant name and returns the caller-resolvable reference.
// Session directory creation is idempotent, so concurrent promotions for
// the same session never race-fail; xid names keep them from overwriting
// each other.
func (s *FileStore) SaveArtifact(sessionID, src string) (string, error) {
	dir := filepath.Join(s.root, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: creating session directory: %w", err)
	}

	name := fmt.Sprintf("plot_%s.png", xid.New())
	if err := moveFile(src, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("store: moving artifact: %w", err)
	}

	return s.publicBase + "/" + sessionID + "/" + name, nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// two paths sit on different filesystems (work areas live under the system
// temp dir, which is often a separate mount).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
