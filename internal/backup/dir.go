package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore keeps backups on the local filesystem under Root.
type DirStore struct {
	Root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

func (s *DirStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("move backup into place: %w", err)
	}
	return path, nil
}
