package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tphakala/mamedat/internal/mamedata"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMultiplexerTagsEvents(t *testing.T) {
	var got []mamedata.DataType
	mux := NewMultiplexer(func(dt mamedata.DataType, _ Event) {
		got = append(got, dt)
	})

	catver := mux.Source(mamedata.Catver)
	series := mux.Source(mamedata.Series)
	catver(InfoEvent("a"))
	series(InfoEvent("b"))
	catver(InfoEvent("c"))
	mux.Close()

	assert.Equal(t, []mamedata.DataType{mamedata.Catver, mamedata.Series, mamedata.Catver}, got)
}

func TestMultiplexerSerializesConcurrentWorkers(t *testing.T) {
	const perWorker = 200

	// The callback mutates shared state without a lock; the race detector
	// fails this test if the multiplexer ever invokes it concurrently.
	counts := make(map[mamedata.DataType]int)
	mux := NewMultiplexer(func(dt mamedata.DataType, _ Event) {
		counts[dt]++
	})

	var wg sync.WaitGroup
	for _, dt := range mamedata.AllDataTypes() {
		wg.Add(1)
		go func(report Callback) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				report(Event{Processed: uint64(i), Total: perWorker, Type: Update})
			}
		}(mux.Source(dt))
	}
	wg.Wait()
	mux.Close()

	require.Len(t, counts, len(mamedata.AllDataTypes()))
	for dt, n := range counts {
		assert.Equal(t, perWorker, n, "source %s", dt)
	}
}

func TestMultiplexerCloseIsIdempotent(t *testing.T) {
	mux := NewMultiplexer(nil)
	mux.Source(mamedata.Mame)(InfoEvent("hello"))
	mux.Close()
	mux.Close()
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "progress", Update.String())
	assert.Equal(t, "finish", Finish.String())
	assert.Equal(t, "error", Error.String())
}
