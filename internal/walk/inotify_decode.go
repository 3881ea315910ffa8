package dirmeta

import (
	"encoding/binary"
	"strings"
)

// inotifyHeaderSize is sizeof(struct inotify_event) without the name.
const inotifyHeaderSize = 16

// decodeInotify splits one read(2) result into events, in kernel order. The
// name field is NUL padded; a truncated trailing record is dropped.
func decodeInotify(buf []byte) []RawEvent {
	var events []RawEvent
	for off := 0; off+inotifyHeaderSize <= len(buf); {
		wd := int32(binary.NativeEndian.Uint32(buf[off:]))
		mask := binary.NativeEndian.Uint32(buf[off+4:])
		cookie := binary.NativeEndian.Uint32(buf[off+8:])
		nameLen := int(binary.NativeEndian.Uint32(buf[off+12:]))
		off += inotifyHeaderSize

		if nameLen < 0 || off+nameLen > len(buf) {
			break
		}
		name := strings.TrimRight(string(buf[off:off+nameLen]), "\x00")
		off += nameLen

		events = append(events, RawEvent{
			WatchID: int(wd),
			Mask:    mask,
			Cookie:  cookie,
			Name:    name,
		})
	}
	return events
}
