package progress

import (
	"fmt"
	"io"

	"github.com/tphakala/mamedat/internal/mamedata"
)

// Console returns a TaggedCallback that renders events as plain lines on w.
// Update events print a percentage, everything else prints its message. The
// multiplexer serializes calls, so the writer needs no locking.
func Console(w io.Writer) TaggedCallback {
	return func(dataType mamedata.DataType, event Event) {
		switch event.Type {
		case Update:
			if event.Total == 0 {
				fmt.Fprintf(w, "[%s] %d processed\n", dataType, event.Processed)
				return
			}
			fmt.Fprintf(w, "[%s] %d/%d (%d%%)\n", dataType, event.Processed, event.Total, event.Processed*100/event.Total)
		case Error:
			fmt.Fprintf(w, "[%s] error: %s\n", dataType, event.Message)
		default:
			fmt.Fprintf(w, "[%s] %s\n", dataType, event.Message)
		}
	}
}
