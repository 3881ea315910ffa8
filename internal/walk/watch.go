package dirmeta

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Backend selects the notification subsystem used by a Watcher.
type Backend int

const (
	// BackendDefault is inotify on Linux and fsnotify elsewhere.
	BackendDefault Backend = iota
	// BackendInotify talks to inotify directly and reports every event kind.
	BackendInotify
	// BackendFsnotify uses fsnotify. It only observes create, modify, delete,
	// rename and attribute changes.
	BackendFsnotify
)

func (b Backend) String() string {
	switch b {
	case BackendInotify:
		return "inotify"
	case BackendFsnotify:
		return "fsnotify"
	default:
		return "default"
	}
}

// ParseBackend maps a CLI or config value onto a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "default":
		return BackendDefault, nil
	case "inotify":
		return BackendInotify, nil
	case "fsnotify":
		return BackendFsnotify, nil
	default:
		return BackendDefault, fmt.Errorf("unknown watch backend %q", s)
	}
}

// RawEvent is one event record as reported by the notification subsystem.
type RawEvent struct {
	WatchID int
	Mask    uint32
	Cookie  uint32
	Name    string
}

// Outcome normalizes the raw record.
func (e RawEvent) Outcome() WatcherOutcome {
	kind, isDir := Translate(e.Mask)
	return WatcherOutcome{
		WatchID: e.WatchID,
		Kind:    kind,
		Cookie:  e.Cookie,
		Name:    e.Name,
		IsDir:   isDir,
	}
}

// Notifier is the OS change-notification capability: register a watch, then
// block for the next batch of events.
type Notifier interface {
	Add(path string, mask EventMask) (int, error)
	ReadEvents() ([]RawEvent, error)
	Close() error
}

// WatcherOutcome is one normalized filesystem change event.
type WatcherOutcome struct {
	WatchID int       `json:"watch_id"`
	Kind    EventKind `json:"event_kind"`
	// Cookie links the MovedFrom and MovedTo halves of one rename.
	Cookie uint32 `json:"cookie"`
	// Name is the child the event concerns. It is empty when the event
	// concerns the watched object itself.
	Name string `json:"name,omitempty"`
	// IsDir is set when the subject of the event is a directory.
	IsDir bool `json:"is_dir"`
}

// HasName reports whether the event concerns a child of the watched directory.
func (o WatcherOutcome) HasName() bool {
	return o.Name != ""
}

// Channel carries outcomes from a watcher to a consumer. The consumer ends the
// exchange with Close; every later Send fails with ErrChannelClosed.
type Channel struct {
	outcomes chan WatcherOutcome
	closed   chan struct{}
	once     sync.Once
}

// NewChannel returns a Channel buffering up to buffer outcomes.
func NewChannel(buffer int) *Channel {
	if buffer < 0 {
		buffer = 0
	}
	return &Channel{
		outcomes: make(chan WatcherOutcome, buffer),
		closed:   make(chan struct{}),
	}
}

// Outcomes is the receiving side. It is never closed; select on Done as well.
func (c *Channel) Outcomes() <-chan WatcherOutcome {
	return c.outcomes
}

// Done is closed once the consumer has called Close.
func (c *Channel) Done() <-chan struct{} {
	return c.closed
}

// Close marks the receiving side as gone. It is safe to call more than once.
func (c *Channel) Close() {
	c.once.Do(func() { close(c.closed) })
}

// Send delivers o, blocking while the buffer is full.
func (c *Channel) Send(o WatcherOutcome) error {
	select {
	case <-c.closed:
		return ErrChannelClosed
	default:
	}
	select {
	case c.outcomes <- o:
		return nil
	case <-c.closed:
		return ErrChannelClosed
	}
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	Backend  Backend
	Logger   *zap.Logger
	LogLevel LogLevel

	// OnWatch, if set, is called once the watch is registered.
	OnWatch func(watchID int)
}

// Watcher forwards change events for one path to a Channel.
type Watcher struct {
	path     string
	channel  *Channel
	opts     WatchOptions
	notifier Notifier
}

// NewWatcher returns a Watcher bound to channel.
func NewWatcher(channel *Channel) *Watcher {
	return &Watcher{channel: channel}
}

// Path sets the file or directory to watch.
func (w *Watcher) Path(path string) *Watcher {
	w.path = path
	return w
}

// WithOptions replaces the watcher options.
func (w *Watcher) WithOptions(opts WatchOptions) *Watcher {
	w.opts = opts
	return w
}

// WithNotifier makes the watcher use n instead of opening a backend. The
// watcher closes n when Watch returns.
func (w *Watcher) WithNotifier(n Notifier) *Watcher {
	w.notifier = n
	return w
}

// Watch registers mask for the configured path and forwards every event to
// the channel until the consumer closes it or the notification subsystem
// fails. It never returns nil: ErrChannelClosed is the clean way to stop.
func (w *Watcher) Watch(mask EventMask) error {
	if w.path == "" {
		return ErrPathNotSet
	}
	if w.channel == nil {
		return errors.New("dirmeta: watcher has no channel")
	}

	logger := w.opts.Logger
	if logger == nil {
		logger = createLogger(w.opts.LogLevel)
		defer logger.Sync()
	}

	n := w.notifier
	if n == nil {
		var err error
		n, err = newNotifier(w.opts.Backend)
		if err != nil {
			return fmt.Errorf("dirmeta: init %s watcher: %w", w.opts.Backend, err)
		}
	}
	defer n.Close()

	id, err := n.Add(w.path, mask)
	if err != nil {
		return fmt.Errorf("dirmeta: watch %s: %w", w.path, err)
	}
	logger.Info("watching path for activity",
		zap.String("path", w.path),
		zap.Int("watch_id", id),
		zap.Stringer("mask", mask),
	)
	if w.opts.OnWatch != nil {
		w.opts.OnWatch(id)
	}

	for {
		events, err := n.ReadEvents()
		if err != nil {
			logger.Debug("notification read failed", zap.String("path", w.path), zap.Error(err))
			return fmt.Errorf("dirmeta: read events for %s: %w", w.path, err)
		}
		for _, ev := range events {
			if err := w.channel.Send(ev.Outcome()); err != nil {
				logger.Debug("channel closed, stopping watch", zap.String("path", w.path))
				return err
			}
		}
	}
}

// Spawn runs Watch on a goroutine locked to its own OS thread, so the blocking
// read never holds up other goroutines' threads. The returned channel yields
// Watch's error and is then closed.
func (w *Watcher) Spawn(mask EventMask) <-chan error {
	errc := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		errc <- w.Watch(mask)
		close(errc)
	}()
	return errc
}
