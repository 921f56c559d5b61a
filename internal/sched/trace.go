// internal/sched/trace.go

package sched

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

const traceWidth = 50

// Tracer prints dispatched task identities and device data, breaking the
// line every traceWidth entries.
type Tracer struct {
	w      io.Writer
	layout int
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Handle is a Scheduler observer.
func (t *Tracer) Handle(ev StatusEvent) {
	switch ev.Kind {
	case StatusDispatch:
		t.trace(int(ev.TaskID))
	case StatusDevice:
		t.trace(ev.Datum)
	}
}

func (t *Tracer) trace(id int) {
	t.layout--
	if t.layout <= 0 {
		fmt.Fprintln(t.w)
		t.layout = traceWidth
	}
	fmt.Fprint(t.w, id)
}

// CSVLogger writes one row per status event.
type CSVLogger struct {
	f *os.File
	w *csv.Writer
}

// NewCSVLogger creates path and writes the header row.
func NewCSVLogger(path string) (*CSVLogger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := &CSVLogger{f: f, w: csv.NewWriter(f)}

	// write header
	l.w.Write([]string{"seq", "event", "task_id", "target", "datum", "queue_packet_count", "hold_count"})
	return l, nil
}

// Handle is a Scheduler observer.
func (l *CSVLogger) Handle(ev StatusEvent) {
	target := ""
	if ev.Target != NoTask {
		target = ev.Target.String()
	}
	l.w.Write([]string{
		strconv.Itoa(ev.Seq),
		ev.Kind.String(),
		ev.TaskID.String(),
		target,
		strconv.Itoa(ev.Datum),
		strconv.Itoa(ev.QueuePacketCount),
		strconv.Itoa(ev.HoldCount),
	})
}

// Close flushes buffered rows and closes the file.
func (l *CSVLogger) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
