package dirmeta

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fsnotifyWatchID is the id reported for the single fsnotify watch.
const fsnotifyWatchID = 1

var errNotifierClosed = errors.New("fsnotify watcher closed")

// fsnotifyNotifier adapts fsnotify to the Notifier contract by synthesizing
// inotify masks for the operations fsnotify reports.
type fsnotifyNotifier struct {
	watcher *fsnotify.Watcher
	root    string
	mask    EventMask
}

func newFsnotifyNotifier() (*fsnotifyNotifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &fsnotifyNotifier{watcher: w}, nil
}

func (n *fsnotifyNotifier) Add(path string, mask EventMask) (int, error) {
	if err := n.watcher.Add(path); err != nil {
		return 0, err
	}
	n.root = filepath.Clean(path)
	n.mask = mask
	return fsnotifyWatchID, nil
}

func (n *fsnotifyNotifier) ReadEvents() ([]RawEvent, error) {
	for {
		select {
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return nil, errNotifierClosed
			}
			batch := n.translate(ev)
			batch = append(batch, n.drain()...)
			if len(batch) > 0 {
				return batch, nil
			}
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil, errNotifierClosed
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				return []RawEvent{{WatchID: -1, Mask: uint32(MaskQOverflow)}}, nil
			}
			return nil, err
		}
	}
}

// drain collects events that are already queued without blocking.
func (n *fsnotifyNotifier) drain() []RawEvent {
	var batch []RawEvent
	for {
		select {
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return batch
			}
			batch = append(batch, n.translate(ev)...)
		default:
			return batch
		}
	}
}

func (n *fsnotifyNotifier) translate(ev fsnotify.Event) []RawEvent {
	var name string
	if filepath.Clean(ev.Name) != n.root {
		name = filepath.Base(ev.Name)
	}
	self := name == ""

	var out []RawEvent
	add := func(m EventMask) {
		if n.mask&m != 0 {
			out = append(out, RawEvent{WatchID: fsnotifyWatchID, Mask: uint32(m), Name: name})
		}
	}
	if ev.Has(fsnotify.Create) {
		add(MaskCreate)
	}
	if ev.Has(fsnotify.Write) {
		add(MaskModify)
	}
	if ev.Has(fsnotify.Remove) {
		if self {
			add(MaskDeleteSelf)
		} else {
			add(MaskDelete)
		}
	}
	if ev.Has(fsnotify.Rename) {
		if self {
			add(MaskMoveSelf)
		} else {
			add(MaskMovedFrom)
		}
	}
	if ev.Has(fsnotify.Chmod) {
		add(MaskAttrib)
	}
	return out
}

func (n *fsnotifyNotifier) Close() error {
	return n.watcher.Close()
}
