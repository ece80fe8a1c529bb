// Package progress defines the progress event shape shared by the fetcher,
// unpacker, parsers and exporters, and a multiplexer that lets concurrent
// per-source workers report through a single caller-supplied callback.
package progress

import "github.com/tphakala/mamedat/internal/mamedata"

// EventType categorizes a progress update.
type EventType int

const (
	// Info conveys a status message with no counter change.
	Info EventType = iota
	// Update reports counter progress for a running operation.
	Update
	// Finish marks successful completion; Processed equals Total.
	Finish
	// Error reports a failure; the operation also returns an error.
	Error
)

func (t EventType) String() string {
	switch t {
	case Info:
		return "info"
	case Update:
		return "progress"
	case Finish:
		return "finish"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a single progress update. Within one source's stream Processed is
// non-decreasing and the terminal Finish event reports Processed == Total.
type Event struct {
	Processed uint64
	Total     uint64
	Message   string
	Type      EventType
}

// InfoEvent builds an informational event with zeroed counters.
func InfoEvent(message string) Event {
	return Event{Message: message, Type: Info}
}

// Callback receives progress events for a single operation. Callbacks handed
// to parsers or exporters are invoked from that operation's goroutine only.
type Callback func(Event)

// TaggedCallback receives progress events from a multi-source run, tagged
// with the originating data type. The multiplexer serializes invocations, so
// implementations need no internal locking.
type TaggedCallback func(dataType mamedata.DataType, event Event)

// Discard ignores all events. Useful as a default sink.
func Discard(Event) {}

// DiscardTagged ignores all tagged events.
func DiscardTagged(mamedata.DataType, Event) {}
