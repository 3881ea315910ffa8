//go:build unix

package dirmeta

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

// TestWalkNamedPipe tests that a FIFO without a writer does not stall either walk
func TestWalkNamedPipe(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	pipe := filepath.Join(root, "pipe")
	if err := syscall.Mkfifo(pipe, 0644); err != nil {
		t.Skipf("mkfifo not supported: %v", err)
	}

	check := func(t *testing.T, meta *DirectoryMetadata) {
		t.Helper()
		if meta.FileCount() != 2 {
			t.Fatalf("Expected 2 files, got %+v", meta.Files)
		}
		p := meta.FindByPath(pipe)
		if p == nil {
			t.Fatal("Expected the pipe to be recorded as a file")
		}
		if !p.Format.IsUnknown() {
			t.Errorf("Expected unknown format for the pipe, got %s", p.Format)
		}
		if f := meta.FindByPath(filepath.Join(root, "a.txt")); f == nil || !f.Format.Is("text/plain") {
			t.Errorf("Expected text/plain for a.txt, got %+v", f)
		}
	}

	t.Run("Walk", func(t *testing.T) {
		type result struct {
			meta *DirectoryMetadata
			err  error
		}
		done := make(chan result, 1)
		go func() {
			meta, err := Walk(root, quietOptions())
			done <- result{meta, err}
		}()
		select {
		case r := <-done:
			if r.err != nil {
				t.Fatalf("Walk failed: %v", r.err)
			}
			check(t, r.meta)
		case <-time.After(5 * time.Second):
			t.Fatal("Walk did not return")
		}
	})

	t.Run("WalkContext", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		meta, err := WalkContext(ctx, root, quietOptions())
		if err != nil {
			t.Fatalf("WalkContext failed: %v", err)
		}
		check(t, meta)
	})
}
