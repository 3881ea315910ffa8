package walk

import (
	"context"

	internal "github.com/TFMV/dirmeta/internal/walk"
	"go.uber.org/zap"
)

// Re-export all the types and constants from the internal package
type (
	// DirectoryMetadata is one directory plus the flattened result of its subtree.
	DirectoryMetadata = internal.DirectoryMetadata

	// FileMetadata describes one non-directory entry.
	FileMetadata = internal.FileMetadata

	// Timestamps holds the optional times of a file.
	Timestamps = internal.Timestamps

	// TimeKind selects one of the file timestamps.
	TimeKind = internal.TimeKind

	// Capabilities records which parts of metadata collection were enabled.
	Capabilities = internal.Capabilities

	// Format is the detected content format of a file.
	Format = internal.Format

	// DateTimeString is a timestamp split into a date and a time of day.
	DateTimeString = internal.DateTimeString

	// TraversalError is one failure recorded while walking.
	TraversalError = internal.TraversalError

	// ErrorKind categorizes an I/O failure.
	ErrorKind = internal.ErrorKind

	// Options configures a walk.
	Options = internal.Options

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// FileSystem is the set of primitives the walk needs.
	FileSystem = internal.FileSystem

	// Listing is the enumerated content of one directory.
	Listing = internal.Listing

	// DirEntry is one child of a listed directory.
	DirEntry = internal.DirEntry

	// FileStat is the subset of stat information collected per file.
	FileStat = internal.FileStat
)

// Re-export all the constants
const (
	// Log levels
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	// Timestamp kinds
	Created  = internal.Created
	Accessed = internal.Accessed
	Modified = internal.Modified

	// Error kinds
	KindOther            = internal.KindOther
	KindNotFound         = internal.KindNotFound
	KindPermissionDenied = internal.KindPermissionDenied
	KindNotADirectory    = internal.KindNotADirectory
	KindInterrupted      = internal.KindInterrupted
)

// Sentinel errors
var (
	ErrNotDirectory  = internal.ErrNotDirectory
	ErrPathNotSet    = internal.ErrPathNotSet
	ErrChannelClosed = internal.ErrChannelClosed

	// UnknownFormat is used when detection was disabled or failed.
	UnknownFormat = internal.UnknownFormat
)

// DefaultOptions enables every capability.
func DefaultOptions() Options {
	return internal.DefaultOptions()
}

// Walk collects metadata for the tree rooted at root, blocking on every
// filesystem call.
func Walk(root string, opts Options) (*DirectoryMetadata, error) {
	return internal.Walk(root, opts)
}

// WalkContext collects metadata for the tree rooted at root and stops as soon
// as ctx is cancelled.
func WalkContext(ctx context.Context, root string, opts Options) (*DirectoryMetadata, error) {
	return internal.WalkContext(ctx, root, opts)
}

// WalkWith runs the traversal against a caller supplied FileSystem.
func WalkWith(ctx context.Context, fsys FileSystem, root string, opts Options) (*DirectoryMetadata, error) {
	return internal.WalkWith(ctx, fsys, root, opts)
}

// BlockingFS returns the FileSystem used by Walk.
func BlockingFS() FileSystem {
	return internal.BlockingFS()
}

// SuspendingFS returns the FileSystem used by WalkContext.
func SuspendingFS(workers int) FileSystem {
	return internal.SuspendingFS(workers)
}

// KindOf maps err onto an ErrorKind.
func KindOf(err error) ErrorKind {
	return internal.KindOf(err)
}

// DetectFormat sniffs the content of the file at path.
func DetectFormat(path string) Format {
	return internal.DetectFormat(path)
}

// LoggingFS wraps fsys so every primitive call is logged at debug level.
func LoggingFS(fsys FileSystem, logger *zap.Logger) FileSystem {
	return loggingFS{next: fsys, logger: logger}
}

type loggingFS struct {
	next   FileSystem
	logger *zap.Logger
}

func (l loggingFS) ListDir(ctx context.Context, path string) (Listing, error) {
	listing, err := l.next.ListDir(ctx, path)
	if err != nil {
		l.logger.Debug("list directory failed", zap.String("path", path), zap.Error(err))
		return listing, err
	}
	l.logger.Debug("listed directory",
		zap.String("path", path),
		zap.Int("entries", len(listing.Entries)),
		zap.NamedError("read_error", listing.Err),
	)
	return listing, nil
}

func (l loggingFS) Stat(ctx context.Context, path string) (FileStat, error) {
	st, err := l.next.Stat(ctx, path)
	if err != nil {
		l.logger.Debug("stat failed", zap.String("path", path), zap.Error(err))
		return st, err
	}
	l.logger.Debug("stat", zap.String("path", path), zap.Uint64("size", st.Size), zap.Stringer("mode", st.Mode))
	return st, nil
}

func (l loggingFS) DetectFormats(ctx context.Context, paths []string) []Format {
	formats := l.next.DetectFormats(ctx, paths)
	l.logger.Debug("detected formats", zap.Int("files", len(paths)))
	return formats
}

// Utilities
var (
	FormatBytes       = internal.FormatBytes
	Local24h          = internal.Local24h
	LocalAmPm         = internal.LocalAmPm
	HumanElapsed      = internal.HumanElapsed
	HumanBetween      = internal.HumanBetween
	DurationSince     = internal.DurationSince
	ElapsedSinceEpoch = internal.ElapsedSinceEpoch
)
