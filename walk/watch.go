package walk

import (
	internal "github.com/TFMV/dirmeta/internal/walk"
)

// Re-export watch types and functions
type (
	Watcher        = internal.Watcher
	WatchOptions   = internal.WatchOptions
	WatcherOutcome = internal.WatcherOutcome
	Channel        = internal.Channel
	Notifier       = internal.Notifier
	RawEvent       = internal.RawEvent
	Backend        = internal.Backend
	EventMask      = internal.EventMask
	EventKind      = internal.EventKind
)

const (
	BackendDefault  = internal.BackendDefault
	BackendInotify  = internal.BackendInotify
	BackendFsnotify = internal.BackendFsnotify

	MaskAccess       = internal.MaskAccess
	MaskModify       = internal.MaskModify
	MaskAttrib       = internal.MaskAttrib
	MaskCloseWrite   = internal.MaskCloseWrite
	MaskCloseNoWrite = internal.MaskCloseNoWrite
	MaskOpen         = internal.MaskOpen
	MaskMovedFrom    = internal.MaskMovedFrom
	MaskMovedTo      = internal.MaskMovedTo
	MaskCreate       = internal.MaskCreate
	MaskDelete       = internal.MaskDelete
	MaskDeleteSelf   = internal.MaskDeleteSelf
	MaskMoveSelf     = internal.MaskMoveSelf
	MaskOnlyDir      = internal.MaskOnlyDir
	MaskDontFollow   = internal.MaskDontFollow
	MaskExclUnlink   = internal.MaskExclUnlink
	MaskMaskAdd      = internal.MaskMaskAdd
	MaskOneShot      = internal.MaskOneShot
	MaskClose        = internal.MaskClose
	MaskMove         = internal.MaskMove
	MaskAllEvents    = internal.MaskAllEvents

	EventUnsupported     = internal.EventUnsupported
	EventAccess          = internal.EventAccess
	EventAttributeChange = internal.EventAttributeChange
	EventCloseWrite      = internal.EventCloseWrite
	EventCloseNoWrite    = internal.EventCloseNoWrite
	EventCreate          = internal.EventCreate
	EventDelete          = internal.EventDelete
	EventDeleteSelf      = internal.EventDeleteSelf
	EventModify          = internal.EventModify
	EventMoveSelf        = internal.EventMoveSelf
	EventMovedFrom       = internal.EventMovedFrom
	EventMovedTo         = internal.EventMovedTo
	EventOpen            = internal.EventOpen
	EventWatchRemoved    = internal.EventWatchRemoved
	EventIsDirectory     = internal.EventIsDirectory
	EventQueueOverflow   = internal.EventQueueOverflow
	EventUnmounted       = internal.EventUnmounted
)

// NewChannel returns a Channel buffering up to buffer outcomes.
func NewChannel(buffer int) *Channel {
	return internal.NewChannel(buffer)
}

// NewWatcher returns a Watcher bound to channel.
func NewWatcher(channel *Channel) *Watcher {
	return internal.NewWatcher(channel)
}

// Translate maps a raw event mask onto an EventKind and the directory flag.
func Translate(mask uint32) (EventKind, bool) {
	return internal.Translate(mask)
}

// ParseEventMask builds a mask from event names such as "create" or "delete".
func ParseEventMask(names []string) (EventMask, error) {
	return internal.ParseEventMask(names)
}

// ParseBackend maps a CLI or config value onto a Backend.
func ParseBackend(s string) (Backend, error) {
	return internal.ParseBackend(s)
}
