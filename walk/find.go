package walk

import (
	internal "github.com/TFMV/dirmeta/internal/walk"
)

type (
	// FindOptions defines the criteria for selecting files from a walk result.
	FindOptions = internal.FindOptions

	// Report summarizes a completed walk.
	Report = internal.Report

	// TypeStats holds statistics for a file type.
	TypeStats = internal.TypeStats

	// FileInfo is one entry of a Report ranking.
	FileInfo = internal.FileInfo
)

// Find returns the files of meta matching opts, in result order.
func Find(meta *DirectoryMetadata, opts FindOptions) []*FileMetadata {
	return internal.Find(meta, opts)
}

// Summarize builds a Report listing up to top files per ranking.
func Summarize(meta *DirectoryMetadata, top int) *Report {
	return internal.Summarize(meta, top)
}
