package progress

import (
	"sync"

	"github.com/tphakala/mamedat/internal/mamedata"
)

// Multiplexer fans a single TaggedCallback out across concurrent workers.
// Each worker reports through its own per-source Callback; events flow over a
// channel to one consumer goroutine which invokes the callback, so callers
// never see concurrent invocations regardless of how many workers run.
type Multiplexer struct {
	events    chan taggedEvent
	done      chan struct{}
	closeOnce sync.Once
}

type taggedEvent struct {
	dataType mamedata.DataType
	event    Event
}

// NewMultiplexer starts the consumer goroutine. Callers must Close the
// multiplexer after every worker has returned.
func NewMultiplexer(callback TaggedCallback) *Multiplexer {
	if callback == nil {
		callback = DiscardTagged
	}
	m := &Multiplexer{
		events: make(chan taggedEvent, 64),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(m.done)
		for te := range m.events {
			callback(te.dataType, te.event)
		}
	}()
	return m
}

// Source returns a Callback that tags every event with the given data type.
// The returned callback must not be invoked after Close.
func (m *Multiplexer) Source(dataType mamedata.DataType) Callback {
	return func(event Event) {
		m.events <- taggedEvent{dataType: dataType, event: event}
	}
}

// Close waits for the consumer to drain all pending events and stops it.
func (m *Multiplexer) Close() {
	m.closeOnce.Do(func() {
		close(m.events)
	})
	<-m.done
}
