package dirmeta

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/karrick/godirwalk"
)

// FileSystem is the set of primitives the walk needs. The traversal algorithm
// is written once against it; implementations decide whether a call blocks the
// caller or can be abandoned when the context is cancelled.
type FileSystem interface {
	// ListDir opens and enumerates a directory. A non-nil error means the
	// directory could not be opened at all; a failure after some entries were
	// read is reported in Listing.Err instead.
	ListDir(ctx context.Context, path string) (Listing, error)

	// Stat returns metadata for path without following a final symlink.
	Stat(ctx context.Context, path string) (FileStat, error)

	// DetectFormats sniffs the content format of each path. The result has
	// one element per path, in the same order.
	DetectFormats(ctx context.Context, paths []string) []Format
}

// Listing is the enumerated content of one directory.
type Listing struct {
	Entries []DirEntry
	Err     error
}

// DirEntry is one child of a listed directory. Err is set when the entry's
// type could not be determined, in which case Mode is meaningless.
type DirEntry struct {
	Name string
	Mode fs.FileMode
	Err  error
}

// FileStat is the subset of stat information collected per file.
type FileStat struct {
	Size     uint64
	Mode     fs.FileMode
	Accessed *time.Time
	Modified *time.Time
	Created  *time.Time
}

type blockingFS struct{}

// BlockingFS returns a FileSystem whose calls block the calling goroutine.
func BlockingFS() FileSystem {
	return blockingFS{}
}

func (blockingFS) ListDir(_ context.Context, path string) (Listing, error) {
	return listDir(path)
}

func (blockingFS) Stat(_ context.Context, path string) (FileStat, error) {
	return statFile(path)
}

func (blockingFS) DetectFormats(_ context.Context, paths []string) []Format {
	formats := make([]Format, len(paths))
	for i, p := range paths {
		formats[i] = DetectFormat(p)
	}
	return formats
}

// listDir enumerates path with a godirwalk scanner, which reports the type
// hint of every entry and falls back to lstat when the hint is missing.
func listDir(path string) (Listing, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Listing{}, err
	}
	if !info.IsDir() {
		return Listing{}, &fs.PathError{Op: "open", Path: path, Err: ErrNotDirectory}
	}

	scanner, err := godirwalk.NewScanner(path)
	if err != nil {
		return Listing{}, err
	}

	var listing Listing
	for scanner.Scan() {
		de, err := scanner.Dirent()
		if err != nil {
			listing.Entries = append(listing.Entries, DirEntry{
				Name: scanner.Name(),
				Err:  err,
			})
			continue
		}
		listing.Entries = append(listing.Entries, DirEntry{
			Name: de.Name(),
			Mode: de.ModeType(),
		})
	}
	if err := scanner.Err(); err != nil {
		listing.Err = fmt.Errorf("read %s: %w", path, err)
	}
	return listing, nil
}
