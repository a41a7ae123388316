// Package perf records named timing marks across a run and reports the
// time spent between consecutive marks.
package perf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"massnet.org/shasum/logging"
)

const (
	startMark = "Start up"
	doneMark  = "Done"
)

// Mark is a named point in time. A mark's step runs until the next mark.
type Mark struct {
	Name string
	Time time.Time
}

type Tracker interface {
	AddMark(name string)
	Reset()
	Marks() []Mark
	// Report closes the run with a final mark and writes one line per step.
	Report(w io.Writer)
}

// New returns a recording tracker if enabled, otherwise one whose methods
// do nothing.
func New(enabled bool) Tracker {
	if !enabled {
		return dummyTracker{}
	}
	return newTracker(time.Now)
}

type dummyTracker struct{}

func (dummyTracker) AddMark(string)   {}
func (dummyTracker) Reset()           {}
func (dummyTracker) Marks() []Mark    { return nil }
func (dummyTracker) Report(io.Writer) {}

type tracker struct {
	now   func() time.Time
	marks []Mark
}

func newTracker(now func() time.Time) *tracker {
	t := &tracker{now: now}
	t.Reset()
	return t
}

func (t *tracker) AddMark(name string) {
	t.marks = append(t.marks, Mark{Name: name, Time: t.now()})
}

// Reset drops every mark and starts over from a fresh start mark.
func (t *tracker) Reset() {
	t.marks = t.marks[:0]
	t.AddMark(startMark)
}

func (t *tracker) Marks() []Mark {
	marks := make([]Mark, len(t.marks))
	copy(marks, t.marks)
	return marks
}

func (t *tracker) Report(w io.Writer) {
	t.AddMark(doneMark)
	if len(t.marks) < 3 {
		fmt.Fprintln(w, "No performance marks recorded between start up and now")
		return
	}

	steps := t.marks[:len(t.marks)-1]
	total := t.marks[len(t.marks)-1].Time.Sub(t.marks[0].Time)
	nameWidth, numWidth := 0, len(formatMillis(total))
	for _, m := range steps {
		if len(m.Name) > nameWidth {
			nameWidth = len(m.Name)
		}
	}

	var sb strings.Builder
	for i, m := range steps {
		elapsed := t.marks[i+1].Time.Sub(m.Time)
		fmt.Fprintf(&sb, "%-*s : %*s ms\n", nameWidth, m.Name, numWidth, formatMillis(elapsed))
		logging.VPrint(logging.DEBUG, "perf step", logging.LogFormat{"step": m.Name, "elapsed": elapsed})
	}
	fmt.Fprintf(&sb, "\n%s in %s ms\n", doneMark, formatMillis(total))
	io.WriteString(w, sb.String())
	logging.VPrint(logging.INFO, "perf total", logging.LogFormat{"steps": len(steps), "elapsed": total})
}

// formatMillis renders d in milliseconds to the nearest microsecond.
func formatMillis(d time.Duration) string {
	micros := d.Round(time.Microsecond).Microseconds()
	return fmt.Sprintf("%d.%03d", micros/1000, micros%1000)
}
