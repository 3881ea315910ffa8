//go:build linux

package dirmeta

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

func newNotifier(b Backend) (Notifier, error) {
	if b == BackendFsnotify {
		return newFsnotifyNotifier()
	}
	return newInotifyNotifier()
}

// inotifyNotifier reads events straight from an inotify descriptor. Reads
// block the calling thread until the kernel has at least one event.
type inotifyNotifier struct {
	fd  int
	buf []byte
}

func newInotifyNotifier() (*inotifyNotifier, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("inotify_init1", err)
	}
	return &inotifyNotifier{
		fd:  fd,
		buf: make([]byte, 64*(unix.SizeofInotifyEvent+unix.NAME_MAX+1)),
	}, nil
}

func (n *inotifyNotifier) Add(path string, mask EventMask) (int, error) {
	wd, err := unix.InotifyAddWatch(n.fd, path, uint32(mask))
	if err != nil {
		return 0, &fs.PathError{Op: "inotify_add_watch", Path: path, Err: err}
	}
	return wd, nil
}

func (n *inotifyNotifier) ReadEvents() ([]RawEvent, error) {
	for {
		nr, err := unix.Read(n.fd, n.buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, os.NewSyscallError("read", err)
		}
		if nr < inotifyHeaderSize {
			return nil, errors.New("short read from inotify")
		}
		return decodeInotify(n.buf[:nr]), nil
	}
}

func (n *inotifyNotifier) Close() error {
	return unix.Close(n.fd)
}
