package dirmeta

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// FindOptions defines the criteria for selecting files from a walk result.
// Zero values disable the corresponding check.
type FindOptions struct {
	// Pattern matching options
	NamePattern   string         // Match by file name (supports wildcards)
	PathPattern   string         // Match by path (supports wildcards)
	IgnorePattern string         // Skip paths matching this pattern
	RegexPattern  *regexp.Regexp // Match the path by regular expression

	// Time-based filtering on the modification time
	OlderThan time.Duration
	NewerThan time.Duration

	// Size-based filtering
	LargerSize  uint64 // Files larger than this size (bytes)
	SmallerSize uint64 // Files smaller than this size (bytes)

	// MIME restricts matches to formats equal to or below this type, e.g. "text/".
	MIME string

	// IncludeHidden keeps files whose name starts with a dot.
	IncludeHidden bool

	// Now is the reference time for age checks. Zero means time.Now().
	Now time.Time
}

// Find returns the files of meta matching opts, in result order.
func Find(meta *DirectoryMetadata, opts FindOptions) []*FileMetadata {
	if meta == nil {
		return nil
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var matches []*FileMetadata
	for i := range meta.Files {
		f := &meta.Files[i]
		if !opts.IncludeHidden && isHidden(f.Path) {
			continue
		}
		if matchFind(opts, f) {
			matches = append(matches, f)
		}
	}
	return matches
}

// matchFind checks if a file matches the find criteria
func matchFind(opts FindOptions, f *FileMetadata) bool {
	match := true

	// Check name pattern
	if match && opts.NamePattern != "" {
		match = nameMatch(opts.NamePattern, f.Path)
	}

	// Check path pattern
	if match && opts.PathPattern != "" {
		match = pathMatch(opts.PathPattern, f.Path)
	}

	// Check ignore pattern
	if match && opts.IgnorePattern != "" {
		match = !pathMatch(opts.IgnorePattern, f.Path)
	}

	// Check regex pattern
	if match && opts.RegexPattern != nil {
		match = opts.RegexPattern.MatchString(norm.NFC.String(f.Path))
	}

	// Check time constraints; files without a modification time never match.
	if match && (opts.OlderThan > 0 || opts.NewerThan > 0) {
		modified, ok := f.Time(Modified)
		if !ok {
			return false
		}
		age := opts.Now.Sub(modified)
		if opts.OlderThan > 0 {
			match = age > opts.OlderThan
		}
		if match && opts.NewerThan > 0 {
			match = age < opts.NewerThan
		}
	}

	// Check size constraints
	if match && opts.LargerSize > 0 {
		match = f.Size > opts.LargerSize
	}

	if match && opts.SmallerSize > 0 {
		match = f.Size < opts.SmallerSize
	}

	if match && opts.MIME != "" {
		match = f.Format.Is(opts.MIME)
	}

	return match
}

// nameMatch checks if a file name matches the given pattern
func nameMatch(pattern, path string) bool {
	pattern = norm.NFC.String(pattern)
	path = norm.NFC.String(path)

	matched, err := filepath.Match(pattern, filepath.Base(path))
	if err != nil {
		return false
	}
	if !matched {
		// Try matching against each path component
		for _, pathComponent := range strings.Split(path, string(os.PathSeparator)) {
			matched = pathComponent == pattern
			if matched {
				break
			}
		}
	}
	return matched
}

// pathMatch checks if a path matches the given pattern
func pathMatch(pattern, path string) bool {
	pattern = norm.NFC.String(pattern)
	path = norm.NFC.String(path)

	// Simple wildcard matching
	patternParts := strings.Split(pattern, "*")
	if len(patternParts) == 1 {
		return pattern == path
	}

	if !strings.HasPrefix(path, patternParts[0]) {
		return false
	}

	path = path[len(patternParts[0]):]
	for i := 1; i < len(patternParts)-1; i++ {
		idx := strings.Index(path, patternParts[i])
		if idx == -1 {
			return false
		}
		path = path[idx+len(patternParts[i]):]
	}

	return strings.HasSuffix(path, patternParts[len(patternParts)-1])
}

// isHidden checks if a file is hidden
func isHidden(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
