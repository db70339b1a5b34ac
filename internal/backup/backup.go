// Package backup writes export snapshots to durable storage.
package backup

import (
	"context"
	"errors"
	"time"
)

var ErrNotConfigured = errors.New("backups not configured")

// Store saves one named blob and returns where it ended up.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// ObjectName is the object key for a backup taken at now.
func ObjectName(now time.Time) string {
	return "backups/pos-" + now.UTC().Format("20060102-150405") + ".json"
}

// FromConfig picks GCS when a bucket is set, else a local directory, else nil.
func FromConfig(ctx context.Context, bucket, dir string) (Store, error) {
	switch {
	case bucket != "":
		s, err := NewGCSStore(ctx, bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	case dir != "":
		return NewDirStore(dir), nil
	}
	return nil, nil
}
