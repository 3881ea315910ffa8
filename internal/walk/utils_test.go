package dirmeta

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{15, "15 B"},
		{1000, "1.0 kB"},
		{4_200_000, "4.2 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDurationSince(t *testing.T) {
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(90 * time.Minute)

	d, ok := DurationSince(earlier, later)
	if !ok || d != 90*time.Minute {
		t.Errorf("Expected 90m, got %v (%v)", d, ok)
	}
	if _, ok := DurationSince(later, earlier); ok {
		t.Errorf("Expected false when earlier is after later")
	}
	if d, ok := DurationSince(earlier, earlier); !ok || d != 0 {
		t.Errorf("Expected zero duration for equal times, got %v (%v)", d, ok)
	}
}

func TestElapsedSinceEpoch(t *testing.T) {
	d, ok := ElapsedSinceEpoch(time.Unix(60, 0))
	if !ok || d != time.Minute {
		t.Errorf("Expected 1m, got %v (%v)", d, ok)
	}
	if _, ok := ElapsedSinceEpoch(time.Unix(-1, 0)); ok {
		t.Errorf("Expected false before the epoch")
	}
}

func TestHumanElapsed(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got, ok := humanElapsedAt(now.Add(-3*time.Minute), now)
	if !ok || got != "3 minutes ago" {
		t.Errorf("Expected %q, got %q (%v)", "3 minutes ago", got, ok)
	}
	if _, ok := humanElapsedAt(now.Add(time.Hour), now); ok {
		t.Errorf("Expected false for a future timestamp")
	}
}

func TestHumanBetween(t *testing.T) {
	earlier := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	got, ok := HumanBetween(earlier, earlier.Add(2*time.Hour))
	if !ok || got != "2 hours" {
		t.Errorf("Expected %q, got %q (%v)", "2 hours", got, ok)
	}
	if _, ok := HumanBetween(earlier.Add(time.Hour), earlier); ok {
		t.Errorf("Expected false for reversed arguments")
	}
}

func TestDateTimeString(t *testing.T) {
	ts := time.Date(2023, 12, 25, 9, 5, 0, 0, time.Local)
	if got := Local24h(ts).String(); got != "Monday, 25 December, 2023 09:05:00" {
		t.Errorf("Unexpected 24h string: %s", got)
	}
	if got := LocalAmPm(ts).String(); got != "Monday, 25 December, 2023 9:05 AM" {
		t.Errorf("Unexpected AM/PM string: %s", got)
	}
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "plain.txt")
	writeFile(t, text, "just some text\n")
	png := filepath.Join(dir, "image.bin")
	writeFile(t, png, "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	if got := DetectFormat(text); got.MIME != "text/plain" {
		t.Errorf("Expected text/plain, got %s", got)
	}
	if got := DetectFormat(png); got.MIME != "image/png" || got.Extension != ".png" {
		t.Errorf("Expected image/png, got %+v", got)
	}
	if got := DetectFormat(filepath.Join(dir, "missing")); got != UnknownFormat {
		t.Errorf("Expected unknown format, got %+v", got)
	}
}

func TestFormatIs(t *testing.T) {
	f := Format{MIME: "text/x-go"}
	if !f.Is("text/") {
		t.Errorf("Expected prefix match")
	}
	if !f.Is("text/x-go") {
		t.Errorf("Expected exact match")
	}
	if f.Is("image/") {
		t.Errorf("Expected no match")
	}
	if !(Format{}).IsUnknown() || (Format{}).String() != "application/octet-stream" {
		t.Errorf("Expected zero format to be unknown")
	}
}
