package perf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now  time.Time
	step []time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	if len(c.step) > 0 {
		c.now = c.now.Add(c.step[0])
		c.step = c.step[1:]
	}
	return t
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.000"},
		{999 * time.Nanosecond, "0.001"},
		{42 * time.Microsecond, "0.042"},
		{time.Millisecond, "1.000"},
		{1234567 * time.Nanosecond, "1.235"},
		{12*time.Second + 5*time.Microsecond, "12000.005"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, formatMillis(test.d), test.d.String())
	}
}

func TestReport(t *testing.T) {
	clock := &fakeClock{
		now:  time.Unix(0, 0),
		step: []time.Duration{1500 * time.Microsecond, 250 * time.Microsecond, 12 * time.Millisecond},
	}
	tr := newTracker(clock.Now)
	tr.AddMark("Read file")
	tr.AddMark("Calculate SHA256 hash")

	var buf bytes.Buffer
	tr.Report(&buf)
	want := "Start up              :  1.500 ms\n" +
		"Read file             :  0.250 ms\n" +
		"Calculate SHA256 hash : 12.000 ms\n" +
		"\nDone in 13.750 ms\n"
	assert.Equal(t, want, buf.String())
	assert.Len(t, tr.Marks(), 4)
}

func TestReportEmpty(t *testing.T) {
	tr := newTracker(time.Now)
	var buf bytes.Buffer
	tr.Report(&buf)
	assert.Equal(t, "No performance marks recorded between start up and now\n", buf.String())
}

func TestReset(t *testing.T) {
	tr := New(true)
	tr.AddMark("a")
	tr.AddMark("b")
	assert.Len(t, tr.Marks(), 3)
	tr.Reset()
	marks := tr.Marks()
	assert.Len(t, marks, 1)
	assert.Equal(t, "Start up", marks[0].Name)
}

func TestDisabled(t *testing.T) {
	tr := New(false)
	tr.AddMark("a")
	assert.Empty(t, tr.Marks())
	var buf bytes.Buffer
	tr.Report(&buf)
	assert.Zero(t, buf.Len())
}
