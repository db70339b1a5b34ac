package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	if got, want := ObjectName(now), "backups/pos-20240309-140507.json"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDirStoreSave(t *testing.T) {
	root := t.TempDir()
	store := NewDirStore(root)

	loc, err := store.Save(context.Background(), "backups/pos-1.json", []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if loc != filepath.Join(root, "backups", "pos-1.json") {
		t.Errorf("unexpected location %s", loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content %s", data)
	}
	if _, err := os.Stat(loc + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestDirStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDirStore(t.TempDir()).Save(ctx, "x.json", nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFromConfigWithoutTargets(t *testing.T) {
	store, err := FromConfig(context.Background(), "", "")
	if err != nil || store != nil {
		t.Fatalf("got %v, %v", store, err)
	}
	store, err = FromConfig(context.Background(), "", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*DirStore); !ok {
		t.Fatalf("got %T", store)
	}
}
