package dirmeta

import (
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestPathMatch(t *testing.T) {
	testCases := []struct {
		pattern  string
		path     string
		expected bool
	}{
		// Basic matching
		{"*.go", "file.go", true},
		{"*.go", "path/to/file.go", true},
		{"file.*", "file.go", true},
		{"file.*", "path/to/file.go", false},

		// Directory matching
		{"path/to/*.go", "path/to/file.go", true},
		{"path/to/*.go", "other/path/file.go", false},

		// Exact matching
		{"file.go", "file.go", true},
		{"file.go", "other.go", false},

		// Multiple wildcards
		{"*.*", "file.go", true},
		{"*.*.go", "file.test.go", true},
		{"*/vendor/*", "src/vendor/lib.go", true},

		// Edge cases
		{"", "", true},
		{"*", "anything", true},
		{"*", "", true},
	}

	for _, tc := range testCases {
		if got := pathMatch(tc.pattern, tc.path); got != tc.expected {
			t.Errorf("Pattern %q on path %q: returned %v, expected %v", tc.pattern, tc.path, got, tc.expected)
		}
	}
}

func TestNameMatch(t *testing.T) {
	testCases := []struct {
		pattern  string
		path     string
		expected bool
	}{
		{"*.txt", "/data/a/notes.txt", true},
		{"notes.*", "/data/a/notes.txt", true},
		{"*.md", "/data/a/notes.txt", false},
		// A bare component name matches any directory on the way
		{"a", "/data/a/notes.txt", true},
		{"[", "/data/a/notes.txt", false},
	}

	for _, tc := range testCases {
		if got := nameMatch(tc.pattern, tc.path); got != tc.expected {
			t.Errorf("Pattern %q on path %q: returned %v, expected %v", tc.pattern, tc.path, got, tc.expected)
		}
	}
}

func findFixture() (*DirectoryMetadata, time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	day := func(n int) *time.Time {
		t := now.Add(-time.Duration(n) * 24 * time.Hour)
		return &t
	}

	meta := NewDirectoryMetadata("/src")
	meta.Directories = []string{"/src/pkg", "/src/vendor"}
	meta.Files = []FileMetadata{
		{Name: "main.go", Path: "/src/main.go", Size: 2048, Format: Format{MIME: "text/plain"}, Times: &Timestamps{Modified: day(1)}},
		{Name: "logo.png", Path: "/src/logo.png", Size: 5 << 20, Format: Format{MIME: "image/png"}, Times: &Timestamps{Modified: day(30)}},
		{Name: "util.go", Path: "/src/pkg/util.go", Size: 512, Format: Format{MIME: "text/plain"}, Times: &Timestamps{Modified: day(10)}},
		{Name: "lib.go", Path: "/src/vendor/lib.go", Size: 100, Format: Format{MIME: "text/plain"}},
		{Name: ".env", Path: "/src/.env", Size: 10, Format: Format{MIME: "text/plain"}, Times: &Timestamps{Modified: day(2)}},
	}
	return meta, now
}

func paths(files []*FileMetadata) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.ToSlash(f.Path)
	}
	return out
}

func TestFind(t *testing.T) {
	meta, now := findFixture()

	testCases := []struct {
		name string
		opts FindOptions
		want []string
	}{
		{
			name: "name pattern",
			opts: FindOptions{NamePattern: "*.go"},
			want: []string{"/src/main.go", "/src/pkg/util.go", "/src/vendor/lib.go"},
		},
		{
			name: "ignore vendor",
			opts: FindOptions{NamePattern: "*.go", IgnorePattern: "*/vendor/*"},
			want: []string{"/src/main.go", "/src/pkg/util.go"},
		},
		{
			name: "path pattern",
			opts: FindOptions{PathPattern: "/src/pkg/*"},
			want: []string{"/src/pkg/util.go"},
		},
		{
			name: "regex",
			opts: FindOptions{RegexPattern: regexp.MustCompile(`\.png$`)},
			want: []string{"/src/logo.png"},
		},
		{
			name: "larger than",
			opts: FindOptions{LargerSize: 1024},
			want: []string{"/src/main.go", "/src/logo.png"},
		},
		{
			name: "smaller than",
			opts: FindOptions{SmallerSize: 1024},
			want: []string{"/src/pkg/util.go", "/src/vendor/lib.go"},
		},
		{
			name: "older than skips files without times",
			opts: FindOptions{OlderThan: 7 * 24 * time.Hour},
			want: []string{"/src/logo.png", "/src/pkg/util.go"},
		},
		{
			name: "newer than",
			opts: FindOptions{NewerThan: 7 * 24 * time.Hour},
			want: []string{"/src/main.go"},
		},
		{
			name: "mime prefix",
			opts: FindOptions{MIME: "image/"},
			want: []string{"/src/logo.png"},
		},
		{
			name: "hidden files",
			opts: FindOptions{NewerThan: 7 * 24 * time.Hour, IncludeHidden: true},
			want: []string{"/src/main.go", "/src/.env"},
		},
		{
			name: "combined",
			opts: FindOptions{NamePattern: "*.go", LargerSize: 200, OlderThan: 5 * 24 * time.Hour},
			want: []string{"/src/pkg/util.go"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.Now = now
			got := paths(Find(meta, tc.opts))
			if len(got) != len(tc.want) {
				t.Fatalf("Expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Expected %v, got %v", tc.want, got)
					break
				}
			}
		})
	}
}

func TestFindNil(t *testing.T) {
	if got := Find(nil, FindOptions{}); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}
