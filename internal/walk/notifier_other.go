//go:build !linux

package dirmeta

import "errors"

func newNotifier(b Backend) (Notifier, error) {
	if b == BackendInotify {
		return nil, errors.New("the inotify backend is only available on linux")
	}
	return newFsnotifyNotifier()
}
