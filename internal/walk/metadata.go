package dirmeta

import (
	"errors"
	"path/filepath"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DirectoryMetadata is one directory plus the flattened result of its whole subtree.
type DirectoryMetadata struct {
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	Directories []string         `json:"directories"`
	Files       []FileMetadata   `json:"files"`
	TotalSize   uint64           `json:"total_size"`
	Errors      []TraversalError `json:"errors"`

	// Options records which capabilities were enabled for the walk.
	Options Capabilities `json:"options"`
}

// Capabilities are the independently toggleable parts of metadata collection.
type Capabilities struct {
	TrackSize    bool `json:"track_size"`
	TrackTimes   bool `json:"track_times"`
	DetectFormat bool `json:"detect_format"`
}

// NewDirectoryMetadata returns an empty result rooted at path.
func NewDirectoryMetadata(path string) *DirectoryMetadata {
	return &DirectoryMetadata{
		Name:        filepath.Base(path),
		Path:        path,
		Directories: []string{},
		Files:       []FileMetadata{},
		Errors:      []TraversalError{},
	}
}

// FileCount returns the number of files discovered in the subtree.
func (d *DirectoryMetadata) FileCount() int {
	return len(d.Files)
}

// DirCount returns the number of directories discovered below the root.
func (d *DirectoryMetadata) DirCount() int {
	return len(d.Directories)
}

// FindByName returns every file whose base name equals name. Several files can
// share a name when they live in different directories.
func (d *DirectoryMetadata) FindByName(name string) []*FileMetadata {
	want := norm.NFC.String(name)
	var matches []*FileMetadata
	for i := range d.Files {
		if norm.NFC.String(d.Files[i].Name) == want {
			matches = append(matches, &d.Files[i])
		}
	}
	return matches
}

// FindByPath returns the file whose path equals path, or nil.
func (d *DirectoryMetadata) FindByPath(path string) *FileMetadata {
	want := filepath.Clean(path)
	for i := range d.Files {
		if filepath.Clean(d.Files[i].Path) == want {
			return &d.Files[i]
		}
	}
	return nil
}

// HumanSize formats TotalSize.
func (d *DirectoryMetadata) HumanSize() string {
	return FormatBytes(d.TotalSize)
}

// Err joins every recorded traversal error, or returns nil when there are none.
func (d *DirectoryMetadata) Err() error {
	if len(d.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(d.Errors))
	for i, e := range d.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// FileMetadata describes one non-directory entry.
type FileMetadata struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Size     uint64      `json:"size"`
	ReadOnly bool        `json:"read_only"`
	Symlink  bool        `json:"symlink"`
	Format   Format      `json:"format"`
	Times    *Timestamps `json:"times,omitempty"`
}

// Timestamps holds the optional times of a file. A nil field means the
// platform does not support the query or the query failed.
type Timestamps struct {
	Created  *time.Time `json:"created,omitempty"`
	Accessed *time.Time `json:"accessed,omitempty"`
	Modified *time.Time `json:"modified,omitempty"`
}

// TimeKind selects one of the file timestamps.
type TimeKind int

const (
	Created TimeKind = iota
	Accessed
	Modified
)

func (k TimeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Accessed:
		return "accessed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// HumanSize formats Size.
func (f *FileMetadata) HumanSize() string {
	return FormatBytes(f.Size)
}

// Time returns the requested timestamp, if it was collected.
func (f *FileMetadata) Time(kind TimeKind) (time.Time, bool) {
	if f.Times == nil {
		return time.Time{}, false
	}
	var t *time.Time
	switch kind {
	case Created:
		t = f.Times.Created
	case Accessed:
		t = f.Times.Accessed
	case Modified:
		t = f.Times.Modified
	}
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// Local24h formats the requested timestamp in local time with a 24 hour clock.
func (f *FileMetadata) Local24h(kind TimeKind) (DateTimeString, bool) {
	t, ok := f.Time(kind)
	if !ok {
		return DateTimeString{}, false
	}
	return Local24h(t), true
}

// LocalAmPm formats the requested timestamp in local time with a 12 hour clock.
func (f *FileMetadata) LocalAmPm(kind TimeKind) (DateTimeString, bool) {
	t, ok := f.Time(kind)
	if !ok {
		return DateTimeString{}, false
	}
	return LocalAmPm(t), true
}

// Elapsed describes how long ago the requested timestamp was.
func (f *FileMetadata) Elapsed(kind TimeKind) (string, bool) {
	t, ok := f.Time(kind)
	if !ok {
		return "", false
	}
	return HumanElapsed(t)
}

func (f *FileMetadata) Created24h() (DateTimeString, bool)   { return f.Local24h(Created) }
func (f *FileMetadata) CreatedAmPm() (DateTimeString, bool)  { return f.LocalAmPm(Created) }
func (f *FileMetadata) CreatedElapsed() (string, bool)       { return f.Elapsed(Created) }
func (f *FileMetadata) Accessed24h() (DateTimeString, bool)  { return f.Local24h(Accessed) }
func (f *FileMetadata) AccessedAmPm() (DateTimeString, bool) { return f.LocalAmPm(Accessed) }
func (f *FileMetadata) AccessedElapsed() (string, bool)      { return f.Elapsed(Accessed) }
func (f *FileMetadata) Modified24h() (DateTimeString, bool)  { return f.Local24h(Modified) }
func (f *FileMetadata) ModifiedAmPm() (DateTimeString, bool) { return f.LocalAmPm(Modified) }
func (f *FileMetadata) ModifiedElapsed() (string, bool)      { return f.Elapsed(Modified) }
