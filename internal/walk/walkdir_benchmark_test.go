package dirmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func BenchmarkWalkDirComparison(b *testing.B) {
	// Create a temporary directory for testing
	tmpDir := b.TempDir()

	// Create a directory structure for testing
	createTestDirectoryStructure(b, tmpDir, 5, 10)

	b.ResetTimer()

	b.Run("filepath.WalkDir", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			count := 0
			err := filepath.WalkDir(tmpDir, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				count++
				return nil
			})
			if err != nil {
				b.Fatalf("Error walking directory: %v", err)
			}
			if count == 0 {
				b.Fatal("No files found")
			}
		}
	})

	benchOpts := []struct {
		name string
		opts Options
	}{
		{"Walk-names-only", Options{Logger: zap.NewNop()}},
		{"Walk-size-times", Options{TrackSize: true, TrackTimes: true, Logger: zap.NewNop()}},
		{"Walk-all", quietOptions()},
	}
	for _, bo := range benchOpts {
		b.Run(bo.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				meta, err := Walk(tmpDir, bo.opts)
				if err != nil {
					b.Fatalf("Error walking directory: %v", err)
				}
				if meta.FileCount() == 0 {
					b.Fatal("No files found")
				}
			}
		})
	}

	b.Run("WalkContext-all", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			meta, err := WalkContext(context.Background(), tmpDir, quietOptions())
			if err != nil {
				b.Fatalf("Error walking directory: %v", err)
			}
			if meta.FileCount() == 0 {
				b.Fatal("No files found")
			}
		}
	})
}

// createTestDirectoryStructure creates a test directory structure with the specified depth and files per directory
func createTestDirectoryStructure(tb testing.TB, root string, depth, filesPerDir int) {
	tb.Helper()
	if depth <= 0 {
		return
	}

	// Create files in the current directory
	for i := 0; i < filesPerDir; i++ {
		filename := filepath.Join(root, "file"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(filename, []byte("test"), 0644); err != nil {
			tb.Fatalf("Failed to create test file: %v", err)
		}
	}

	// Create subdirectories
	for i := 0; i < 3; i++ {
		subdir := filepath.Join(root, "dir"+string(rune('a'+i)))
		if err := os.Mkdir(subdir, 0755); err != nil {
			tb.Fatalf("Failed to create test directory: %v", err)
		}
		createTestDirectoryStructure(tb, subdir, depth-1, filesPerDir)
	}
}
