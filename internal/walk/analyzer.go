package dirmeta

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Report summarizes a completed walk.
type Report struct {
	Root       string               `json:"root"`
	TotalSize  uint64               `json:"total_size"`
	FileCount  int                  `json:"file_count"`
	DirCount   int                  `json:"dir_count"`
	ReadOnly   int                  `json:"read_only"`
	Symlinks   int                  `json:"symlinks"`
	TypeStats  map[string]TypeStats `json:"type_stats,omitempty"` // Statistics by MIME type
	ErrorKinds map[string]int       `json:"error_kinds,omitempty"`

	LargestFiles []FileInfo `json:"largest_files,omitempty"`
	NewestFiles  []FileInfo `json:"newest_files,omitempty"`
	OldestFiles  []FileInfo `json:"oldest_files,omitempty"`
}

// TypeStats holds statistics for a file type
type TypeStats struct {
	Count int    `json:"count"`
	Size  uint64 `json:"size"`
}

// FileInfo holds information about a file
type FileInfo struct {
	Path     string    `json:"path"`
	Size     uint64    `json:"size"`
	Modified time.Time `json:"modified"`
	Format   string    `json:"format,omitempty"`
}

// Summarize builds a Report from meta, listing up to top entries in each of
// the largest, newest and oldest file rankings. Type statistics are only
// collected when the walk detected formats, and the age rankings only when it
// tracked times.
func Summarize(meta *DirectoryMetadata, top int) *Report {
	r := &Report{
		TypeStats:  make(map[string]TypeStats),
		ErrorKinds: make(map[string]int),
	}
	if meta == nil {
		return r
	}
	r.Root = meta.Path
	r.TotalSize = meta.TotalSize
	r.FileCount = meta.FileCount()
	r.DirCount = meta.DirCount()

	infos := make([]FileInfo, 0, len(meta.Files))
	var timed []FileInfo
	for i := range meta.Files {
		f := &meta.Files[i]
		if f.ReadOnly {
			r.ReadOnly++
		}
		if f.Symlink {
			r.Symlinks++
		}
		if meta.Options.DetectFormat {
			stats := r.TypeStats[f.Format.MIME]
			stats.Count++
			stats.Size += f.Size
			r.TypeStats[f.Format.MIME] = stats
		}

		info := FileInfo{Path: f.Path, Size: f.Size, Format: f.Format.MIME}
		if modified, ok := f.Time(Modified); ok {
			info.Modified = modified
			timed = append(timed, info)
		}
		infos = append(infos, info)
	}

	for _, e := range meta.Errors {
		r.ErrorKinds[e.Kind.String()]++
	}

	if top <= 0 {
		return r
	}

	if meta.Options.TrackSize {
		sort.SliceStable(infos, func(i, j int) bool { return infos[i].Size > infos[j].Size })
		r.LargestFiles = head(infos, top)
	}

	sort.SliceStable(timed, func(i, j int) bool { return timed[i].Modified.After(timed[j].Modified) })
	r.NewestFiles = head(timed, top)

	oldest := make([]FileInfo, len(timed))
	copy(oldest, timed)
	sort.SliceStable(oldest, func(i, j int) bool { return oldest[i].Modified.Before(oldest[j].Modified) })
	r.OldestFiles = head(oldest, top)

	return r
}

func head(infos []FileInfo, n int) []FileInfo {
	if len(infos) > n {
		infos = infos[:n]
	}
	out := make([]FileInfo, len(infos))
	copy(out, infos)
	return out
}

// SaveToFile writes the report to path, as JSON when the name ends in .json
// and as text otherwise.
func (r *Report) SaveToFile(path string) error {
	var data []byte
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		var err error
		data, err = json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		data = append(data, '\n')
	} else {
		data = []byte(r.String())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// String returns a string representation of the report
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Storage Report:\n")
	sb.WriteString(fmt.Sprintf("Root: %s\n", r.Root))
	sb.WriteString(fmt.Sprintf("Total Size: %s (%d bytes)\n", humanize.Bytes(r.TotalSize), r.TotalSize))
	sb.WriteString(fmt.Sprintf("Files: %d\n", r.FileCount))
	sb.WriteString(fmt.Sprintf("Directories: %d\n", r.DirCount))
	sb.WriteString(fmt.Sprintf("Read-only: %d\n", r.ReadOnly))
	sb.WriteString(fmt.Sprintf("Symlinks: %d\n", r.Symlinks))

	if len(r.TypeStats) > 0 {
		sb.WriteString("\nFile Types:\n")
		for _, mime := range sortedKeys(r.TypeStats) {
			stats := r.TypeStats[mime]
			sb.WriteString(fmt.Sprintf("  %s: %d files, %s\n", mime, stats.Count, humanize.Bytes(stats.Size)))
		}
	}

	if len(r.ErrorKinds) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, kind := range sortedKeys(r.ErrorKinds) {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", kind, r.ErrorKinds[kind]))
		}
	}

	writeFiles := func(title string, files []FileInfo, withTime bool) {
		if len(files) == 0 {
			return
		}
		sb.WriteString("\n" + title + ":\n")
		for _, f := range files {
			if withTime {
				sb.WriteString(fmt.Sprintf("  %s (%s)\n", f.Path, humanize.Time(f.Modified)))
			} else {
				sb.WriteString(fmt.Sprintf("  %s (%s)\n", f.Path, humanize.Bytes(f.Size)))
			}
		}
	}
	writeFiles("Largest Files", r.LargestFiles, false)
	writeFiles("Newest Files", r.NewestFiles, true)
	writeFiles("Oldest Files", r.OldestFiles, true)

	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
