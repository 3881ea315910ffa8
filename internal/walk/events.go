package dirmeta

import (
	"fmt"
	"strings"
)

// EventMask is a bitset of event categories. The values are those of the
// Linux inotify ABI, so a mask is passed to the kernel unchanged.
type EventMask uint32

const (
	MaskAccess       EventMask = 0x00000001
	MaskModify       EventMask = 0x00000002
	MaskAttrib       EventMask = 0x00000004
	MaskCloseWrite   EventMask = 0x00000008
	MaskCloseNoWrite EventMask = 0x00000010
	MaskOpen         EventMask = 0x00000020
	MaskMovedFrom    EventMask = 0x00000040
	MaskMovedTo      EventMask = 0x00000080
	MaskCreate       EventMask = 0x00000100
	MaskDelete       EventMask = 0x00000200
	MaskDeleteSelf   EventMask = 0x00000400
	MaskMoveSelf     EventMask = 0x00000800

	// Reported by the kernel only; they cannot be requested.
	MaskUnmount   EventMask = 0x00002000
	MaskQOverflow EventMask = 0x00004000
	MaskIgnored   EventMask = 0x00008000
	MaskIsDir     EventMask = 0x40000000

	// Watch flags.
	MaskOnlyDir    EventMask = 0x01000000
	MaskDontFollow EventMask = 0x02000000
	MaskExclUnlink EventMask = 0x04000000
	MaskMaskAdd    EventMask = 0x20000000
	MaskOneShot    EventMask = 0x80000000

	MaskClose     = MaskCloseWrite | MaskCloseNoWrite
	MaskMove      = MaskMovedFrom | MaskMovedTo
	MaskAllEvents = MaskAccess | MaskModify | MaskAttrib | MaskClose | MaskOpen |
		MaskMove | MaskCreate | MaskDelete | MaskDeleteSelf | MaskMoveSelf
)

// requestable is what ParseEventMask may produce. Flags that end or merge
// the watch (oneshot, mask-add, excl-unlink) are left out.
const requestable = MaskAllEvents | MaskOnlyDir | MaskDontFollow

var maskNames = []struct {
	mask EventMask
	name string
}{
	{MaskAccess, "access"},
	{MaskModify, "modify"},
	{MaskAttrib, "attrib"},
	{MaskCloseWrite, "close-write"},
	{MaskCloseNoWrite, "close-nowrite"},
	{MaskOpen, "open"},
	{MaskMovedFrom, "moved-from"},
	{MaskMovedTo, "moved-to"},
	{MaskCreate, "create"},
	{MaskDelete, "delete"},
	{MaskDeleteSelf, "delete-self"},
	{MaskMoveSelf, "move-self"},
	{MaskUnmount, "unmount"},
	{MaskQOverflow, "queue-overflow"},
	{MaskIgnored, "ignored"},
	{MaskIsDir, "isdir"},
	{MaskOnlyDir, "onlydir"},
	{MaskDontFollow, "dont-follow"},
	{MaskExclUnlink, "excl-unlink"},
	{MaskMaskAdd, "mask-add"},
	{MaskOneShot, "oneshot"},
}

// String lists the set bits, e.g. "create|delete".
func (m EventMask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	rest := m
	for _, mn := range maskNames {
		if m&mn.mask != 0 {
			parts = append(parts, mn.name)
			rest &^= mn.mask
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseEventMask builds a mask from event names. It accepts the event names
// printed by EventMask.String, the flags "onlydir" and "dont-follow", the
// groups "close", "move" and "all" and the aliases "write" (modify), "remove"
// (delete), "rename" (move) and "chmod" (attrib). Bits the kernel only
// reports, such as "isdir", are rejected.
func ParseEventMask(names []string) (EventMask, error) {
	var mask EventMask
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
			continue
		case "all":
			mask |= MaskAllEvents
			continue
		case "close":
			mask |= MaskClose
			continue
		case "move", "rename":
			mask |= MaskMove
			continue
		case "write":
			name = "modify"
		case "remove":
			name = "delete"
		case "chmod":
			name = "attrib"
		}
		found := false
		for _, mn := range maskNames {
			if mn.name == name {
				if mn.mask&requestable == 0 {
					return 0, fmt.Errorf("event type %q cannot be requested", raw)
				}
				mask |= mn.mask
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown event type %q", raw)
		}
	}
	if mask == 0 {
		return 0, fmt.Errorf("no events selected")
	}
	return mask, nil
}

// EventKind is the normalized category of a change event.
type EventKind int

const (
	EventUnsupported EventKind = iota
	EventAccess
	EventAttributeChange
	EventCloseWrite
	EventCloseNoWrite
	EventCreate
	EventDelete
	EventDeleteSelf
	EventModify
	EventMoveSelf
	EventMovedFrom
	EventMovedTo
	EventOpen
	EventWatchRemoved
	EventIsDirectory
	EventQueueOverflow
	EventUnmounted
)

var eventKindNames = map[EventKind]string{
	EventUnsupported:     "Unsupported",
	EventAccess:          "Access",
	EventAttributeChange: "AttributeChange",
	EventCloseWrite:      "CloseWrite",
	EventCloseNoWrite:    "CloseNoWrite",
	EventCreate:          "Create",
	EventDelete:          "Delete",
	EventDeleteSelf:      "DeleteSelf",
	EventModify:          "Modify",
	EventMoveSelf:        "MoveSelf",
	EventMovedFrom:       "MovedFrom",
	EventMovedTo:         "MovedTo",
	EventOpen:            "Open",
	EventWatchRemoved:    "WatchRemoved",
	EventIsDirectory:     "IsDirectory",
	EventQueueOverflow:   "QueueOverflow",
	EventUnmounted:       "Unmounted",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return eventKindNames[EventUnsupported]
}

// MarshalText lets the kind appear by name in JSON output.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var kindByMask = map[EventMask]EventKind{
	MaskAccess:       EventAccess,
	MaskAttrib:       EventAttributeChange,
	MaskCloseWrite:   EventCloseWrite,
	MaskCloseNoWrite: EventCloseNoWrite,
	MaskCreate:       EventCreate,
	MaskDelete:       EventDelete,
	MaskDeleteSelf:   EventDeleteSelf,
	MaskModify:       EventModify,
	MaskMoveSelf:     EventMoveSelf,
	MaskMovedFrom:    EventMovedFrom,
	MaskMovedTo:      EventMovedTo,
	MaskOpen:         EventOpen,
	MaskIgnored:      EventWatchRemoved,
	MaskIsDir:        EventIsDirectory,
	MaskQOverflow:    EventQueueOverflow,
	MaskUnmount:      EventUnmounted,
}

// Translate maps a raw event mask onto an EventKind. It never fails: a mask
// that is not exactly one known bit yields EventUnsupported. The kernel sets
// the isdir bit alongside the real event for directory subjects, so that bit
// is reported separately and the remaining bit is translated.
func Translate(mask uint32) (kind EventKind, isDir bool) {
	m := EventMask(mask)
	if k, ok := kindByMask[m]; ok {
		return k, m == MaskIsDir
	}
	if m&MaskIsDir != 0 {
		if k, ok := kindByMask[m&^MaskIsDir]; ok {
			return k, true
		}
		return EventUnsupported, true
	}
	return EventUnsupported, false
}
