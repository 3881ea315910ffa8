package dirmeta

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	meta, _ := findFixture()
	meta.TotalSize = 2048 + 5<<20 + 512 + 100 + 10
	meta.Options = Capabilities{TrackSize: true, TrackTimes: true, DetectFormat: true}
	meta.Files[2].ReadOnly = true
	meta.Files[3].Symlink = true
	meta.Errors = append(meta.Errors,
		TraversalError{Path: "/src/locked", Kind: KindPermissionDenied, Message: "Unable to open the directory `/src/locked`"},
		TraversalError{Path: "/src/gone", Kind: KindNotFound, Message: "Unable to open the directory `/src/gone`"},
		TraversalError{Path: "/src/gone2", Kind: KindNotFound, Message: "Unable to open the directory `/src/gone2`"},
	)

	r := Summarize(meta, 2)

	if r.Root != "/src" || r.FileCount != 5 || r.DirCount != 2 || r.TotalSize != meta.TotalSize {
		t.Errorf("Unexpected totals: %+v", r)
	}
	if r.ReadOnly != 1 || r.Symlinks != 1 {
		t.Errorf("Expected 1 read-only and 1 symlink, got %d and %d", r.ReadOnly, r.Symlinks)
	}

	if got := r.TypeStats["text/plain"]; got.Count != 4 || got.Size != 2048+512+100+10 {
		t.Errorf("Unexpected text/plain stats: %+v", got)
	}
	if got := r.TypeStats["image/png"]; got.Count != 1 {
		t.Errorf("Unexpected image/png stats: %+v", got)
	}

	if r.ErrorKinds["not-found"] != 2 || r.ErrorKinds["permission-denied"] != 1 {
		t.Errorf("Unexpected error kinds: %v", r.ErrorKinds)
	}

	if len(r.LargestFiles) != 2 || r.LargestFiles[0].Path != "/src/logo.png" || r.LargestFiles[1].Path != "/src/main.go" {
		t.Errorf("Unexpected largest files: %+v", r.LargestFiles)
	}
	if len(r.NewestFiles) != 2 || r.NewestFiles[0].Path != "/src/main.go" || r.NewestFiles[1].Path != "/src/.env" {
		t.Errorf("Unexpected newest files: %+v", r.NewestFiles)
	}
	if len(r.OldestFiles) != 2 || r.OldestFiles[0].Path != "/src/logo.png" || r.OldestFiles[1].Path != "/src/pkg/util.go" {
		t.Errorf("Unexpected oldest files: %+v", r.OldestFiles)
	}

	text := r.String()
	for _, want := range []string{"Storage Report:", "Files: 5", "image/png: 1 files", "permission-denied: 1", "Largest Files:", "/src/logo.png (5.2 MB)"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected report to contain %q\n%s", want, text)
		}
	}
}

func TestSummarizeWithoutCapabilities(t *testing.T) {
	meta, _ := findFixture()
	meta.Options = Capabilities{}

	r := Summarize(meta, 3)
	if len(r.TypeStats) != 0 {
		t.Errorf("Expected no type stats without format detection, got %v", r.TypeStats)
	}
	if len(r.LargestFiles) != 0 {
		t.Errorf("Expected no size ranking without size tracking, got %v", r.LargestFiles)
	}

	if r := Summarize(nil, 3); r.FileCount != 0 {
		t.Errorf("Expected an empty report for nil metadata")
	}
}

func TestReportSaveToFile(t *testing.T) {
	meta, _ := findFixture()
	r := Summarize(meta, 1)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "report.json")
	if err := r.SaveToFile(jsonPath); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if decoded.FileCount != 5 || decoded.Root != "/src" {
		t.Errorf("Unexpected decoded report: %+v", decoded)
	}

	textPath := filepath.Join(dir, "report.txt")
	if err := r.SaveToFile(textPath); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	data, err = os.ReadFile(textPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if string(data) != r.String() {
		t.Errorf("Expected the text file to hold the report text")
	}

	if err := r.SaveToFile(filepath.Join(dir, "missing", "report.txt")); err == nil {
		t.Errorf("Expected an error for a missing directory")
	}
}
