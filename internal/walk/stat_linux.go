//go:build linux

package dirmeta

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// statFile uses statx so the birth time is available where the filesystem records it.
func statFile(path string) (FileStat, error) {
	var stx unix.Statx_t
	mask := unix.STATX_BASIC_STATS | unix.STATX_BTIME
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, mask, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return lstatFile(path)
	}
	if err != nil {
		return FileStat{}, &fs.PathError{Op: "statx", Path: path, Err: err}
	}

	st := FileStat{
		Size: stx.Size,
		Mode: statxMode(stx.Mode),
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		st.Accessed = statxTime(stx.Atime)
	}
	if stx.Mask&unix.STATX_MTIME != 0 {
		st.Modified = statxTime(stx.Mtime)
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		st.Created = statxTime(stx.Btime)
	}
	return st, nil
}

func statxTime(ts unix.StatxTimestamp) *time.Time {
	t := time.Unix(ts.Sec, int64(ts.Nsec))
	return &t
}

func statxMode(mode uint16) fs.FileMode {
	m := fs.FileMode(mode & 0o777)
	switch uint32(mode) & unix.S_IFMT {
	case unix.S_IFDIR:
		m |= fs.ModeDir
	case unix.S_IFLNK:
		m |= fs.ModeSymlink
	case unix.S_IFIFO:
		m |= fs.ModeNamedPipe
	case unix.S_IFSOCK:
		m |= fs.ModeSocket
	case unix.S_IFCHR:
		m |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFBLK:
		m |= fs.ModeDevice
	}
	return m
}

func lstatFile(path string) (FileStat, error) {
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
