package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteAndURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key, err := store.Write(context.Background(), "videos/u1/job.mp4", []byte("mp4"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "videos/u1/job.mp4" {
		t.Fatalf("key = %q", key)
	}
	data, err := os.ReadFile(filepath.Join(dir, "videos", "u1", "job.mp4"))
	if err != nil || string(data) != "mp4" {
		t.Fatalf("stored data = %q, %v", data, err)
	}
	if got := store.URL(key); got != "http://localhost:8080/static/videos/u1/job.mp4" {
		t.Fatalf("URL = %q", got)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "videos", "u1", ".upload-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	for _, key := range []string{"", "../etc/passwd", "a/../../b", ".."} {
		if _, err := sanitizeKey(key); err == nil {
			t.Fatalf("sanitizeKey(%q) accepted", key)
		}
	}
	got, err := sanitizeKey(`\videos\a.mp4`)
	if err != nil || got != "videos/a.mp4" {
		t.Fatalf("sanitizeKey = %q, %v", got, err)
	}
}

func TestMediaKey(t *testing.T) {
	if got := MediaKey("videos", "u1", "j1", "video/mp4"); got != "videos/u1/j1.mp4" {
		t.Fatalf("MediaKey = %q", got)
	}
	if got := MediaKey("videos", "u1", "j1", ""); got != "videos/u1/j1.bin" {
		t.Fatalf("MediaKey = %q", got)
	}
}
