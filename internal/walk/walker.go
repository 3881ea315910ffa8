// Package dirmeta collects file and directory metadata for a whole directory
// tree and watches paths for filesystem changes.
package dirmeta

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Options configures a walk. The three capabilities are independent: turning
// one off never changes which entries are visited or which errors are recorded.
type Options struct {
	TrackSize    bool // Record file sizes and the aggregate TotalSize
	TrackTimes   bool // Record created/accessed/modified timestamps
	DetectFormat bool // Sniff file contents for a format tag

	// FormatWorkers bounds the goroutines used for format detection by the
	// context-aware walk. Zero means runtime.NumCPU().
	FormatWorkers int

	Logger   *zap.Logger
	LogLevel LogLevel
}

// DefaultOptions enables every capability.
func DefaultOptions() Options {
	return Options{
		TrackSize:     true,
		TrackTimes:    true,
		DetectFormat:  true,
		FormatWorkers: runtime.NumCPU(),
		LogLevel:      LogLevelInfo,
	}
}

func (o Options) capabilities() Capabilities {
	return Capabilities{
		TrackSize:    o.TrackSize,
		TrackTimes:   o.TrackTimes,
		DetectFormat: o.DetectFormat,
	}
}

// Walk collects metadata for the tree rooted at root, blocking the calling
// goroutine on every filesystem call. It fails only when root itself cannot be
// opened as a directory; every failure below root is recorded in the result.
func Walk(root string, opts Options) (*DirectoryMetadata, error) {
	return WalkWith(context.Background(), BlockingFS(), root, opts)
}

// WalkContext is the context-aware variant of Walk. Each filesystem call can be
// abandoned when ctx is cancelled, in which case ctx.Err() is returned and no
// partial result is kept. Sibling directories are still visited one at a time.
func WalkContext(ctx context.Context, root string, opts Options) (*DirectoryMetadata, error) {
	return WalkWith(ctx, SuspendingFS(opts.FormatWorkers), root, opts)
}

// WalkWith runs the traversal against a caller supplied FileSystem.
func WalkWith(ctx context.Context, fsys FileSystem, root string, opts Options) (*DirectoryMetadata, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel)
		defer logger.Sync()
	}

	logger.Debug("starting walk",
		zap.String("root", root),
		zap.Bool("track_size", opts.TrackSize),
		zap.Bool("track_times", opts.TrackTimes),
		zap.Bool("detect_format", opts.DetectFormat),
	)
	start := time.Now()

	listing, err := fsys.ListDir(ctx, root)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, fmt.Errorf("dirmeta: open root %s: %w", root, err)
	}

	w := &walker{
		fs:     fsys,
		opts:   opts,
		logger: logger,
		result: NewDirectoryMetadata(root),
	}
	w.result.Options = opts.capabilities()

	if err := w.walkListing(ctx, root, listing); err != nil {
		logger.Debug("walk canceled", zap.String("root", root), zap.Error(err))
		return nil, err
	}

	logger.Debug("walk finished",
		zap.String("root", root),
		zap.Int("files", w.result.FileCount()),
		zap.Int("dirs", w.result.DirCount()),
		zap.Int("errors", len(w.result.Errors)),
		zap.Uint64("bytes", w.result.TotalSize),
		zap.Duration("elapsed", time.Since(start)),
	)
	return w.result, nil
}

// walker owns the accumulating result for the duration of one walk. All
// mutation happens on the goroutine running walkListing.
type walker struct {
	fs     FileSystem
	opts   Options
	logger *zap.Logger
	result *DirectoryMetadata
}

// walkListing records one directory level, then descends into each
// subdirectory found at that level in enumeration order.
func (w *walker) walkListing(ctx context.Context, dir string, listing Listing) error {
	var (
		subdirs []string
		files   []FileMetadata
		sniff   []int
	)

	for _, entry := range listing.Entries {
		path := filepath.Join(dir, entry.Name)

		if entry.Err != nil {
			w.record(newTraversalError(path, entry.Err, "Unable to check if `%s` is a directory", path))
			continue
		}
		if entry.Mode.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}

		file, regular, err := w.fileMetadata(ctx, path, entry)
		if err != nil {
			return err
		}
		if regular {
			sniff = append(sniff, len(files))
		}
		files = append(files, file)
	}

	if listing.Err != nil {
		w.record(newTraversalError(dir, listing.Err, "Unable to read the entries of `%s`", dir))
	}

	// Only regular files are opened for detection; opening a FIFO blocks.
	if w.opts.DetectFormat && len(sniff) > 0 {
		paths := make([]string, len(sniff))
		for i, idx := range sniff {
			paths[i] = files[idx].Path
		}
		formats := w.fs.DetectFormats(ctx, paths)
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, idx := range sniff {
			if i < len(formats) {
				files[idx].Format = formats[i]
			}
		}
	}

	for _, f := range files {
		w.result.Files = append(w.result.Files, f)
		w.result.TotalSize += f.Size
	}
	w.result.Directories = append(w.result.Directories, subdirs...)

	for _, sub := range subdirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		child, err := w.fs.ListDir(ctx, sub)
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			w.record(newTraversalError(sub, err, "Unable to open the directory `%s`", sub))
			continue
		}
		if err := w.walkListing(ctx, sub, child); err != nil {
			return err
		}
	}
	return nil
}

// fileMetadata fetches best-effort metadata for one non-directory entry and
// reports whether it is a regular file. A failed stat leaves the optional
// fields empty; only cancellation is an error.
func (w *walker) fileMetadata(ctx context.Context, path string, entry DirEntry) (FileMetadata, bool, error) {
	file := FileMetadata{
		Name:    entry.Name,
		Path:    path,
		Symlink: entry.Mode&fs.ModeSymlink != 0,
		Format:  UnknownFormat,
	}

	st, err := w.fs.Stat(ctx, path)
	if cerr := ctx.Err(); cerr != nil {
		return FileMetadata{}, false, cerr
	}
	if err != nil {
		w.logger.Debug("stat failed, metadata left empty", zap.String("path", path), zap.Error(err))
		return file, false, nil
	}

	file.ReadOnly = st.Mode.Perm()&0o222 == 0
	if st.Mode&fs.ModeSymlink != 0 {
		file.Symlink = true
	}
	if w.opts.TrackSize {
		file.Size = st.Size
	}
	if w.opts.TrackTimes {
		file.Times = &Timestamps{
			Created:  st.Created,
			Accessed: st.Accessed,
			Modified: st.Modified,
		}
	}
	return file, st.Mode.IsRegular(), nil
}

func (w *walker) record(err TraversalError) {
	w.logger.Debug("recorded traversal error",
		zap.String("path", err.Path),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	)
	w.result.Errors = append(w.result.Errors, err)
}

// createLogger creates a zap logger with the specified log level.
func createLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
