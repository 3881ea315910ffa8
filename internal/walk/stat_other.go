//go:build !linux

package dirmeta

import "os"

// statFile falls back to Lstat; only the modification time is portable.
func statFile(path string) (FileStat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FileStat{}, err
	}
	mod := info.ModTime()
	return FileStat{
		Size:     uint64(info.Size()),
		Mode:     info.Mode(),
		Modified: &mod,
	}, nil
}
