package dirmeta

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func benchmarkMetadata(fileCount int) *DirectoryMetadata {
	now := time.Now()
	meta := NewDirectoryMetadata("/bench")
	exts := []string{".go", ".txt", ".md", ".json", ".log"}
	for i := 0; i < fileCount; i++ {
		modified := now.Add(-time.Duration(i) * time.Hour)
		dir := fmt.Sprintf("/bench/dir%d", i%10)
		name := fmt.Sprintf("file%d%s", i, exts[i%len(exts)])
		meta.Files = append(meta.Files, FileMetadata{
			Name:   name,
			Path:   dir + "/" + name,
			Size:   uint64(i * 100),
			Format: Format{MIME: "text/plain"},
			Times:  &Timestamps{Modified: &modified},
		})
	}
	return meta
}

func BenchmarkFindWithNamePattern(b *testing.B) {
	meta := benchmarkMetadata(10000)
	opts := FindOptions{NamePattern: "*.go"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(Find(meta, opts)) == 0 {
			b.Fatalf("No files found")
		}
	}
}

func BenchmarkFindWithCombinedFilters(b *testing.B) {
	meta := benchmarkMetadata(10000)
	opts := FindOptions{
		NamePattern:  "*.txt",
		RegexPattern: regexp.MustCompile(`dir[1-5]`),
		LargerSize:   1000,
		NewerThan:    30 * 24 * time.Hour,
		MIME:         "text/",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(Find(meta, opts)) == 0 {
			b.Fatalf("No files found")
		}
	}
}

// BenchmarkPathMatch measures the performance of the pathMatch function
func BenchmarkPathMatch(b *testing.B) {
	paths := []string{
		"/home/user/documents/file.txt",
		"/home/user/downloads/archive.zip",
		"/var/log/system.log",
		"/etc/config/settings.json",
		"/usr/local/bin/executable",
	}

	patterns := []string{
		"*/documents/*",
		"*/log/*",
		"*/bin/*",
		"*.txt",
		"*.log",
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		// Test each path against each pattern
		for _, path := range paths {
			for _, pattern := range patterns {
				_ = pathMatch(pattern, path)
			}
		}
	}
}

// BenchmarkNameMatch measures the performance of the nameMatch function
func BenchmarkNameMatch(b *testing.B) {
	paths := []string{
		"/home/user/documents/file.txt",
		"/home/user/downloads/archive.zip",
		"/var/log/system.log",
		"/etc/config/settings.json",
		"/usr/local/bin/executable",
	}

	patterns := []string{
		"file.txt",
		"archive.zip",
		"system.log",
		"settings.json",
		"executable",
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		// Test each path against each pattern
		for _, path := range paths {
			for _, pattern := range patterns {
				_ = nameMatch(pattern, path)
			}
		}
	}
}
