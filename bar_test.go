package prog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a Bar's notion of time deterministically.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestBar(buf *bytes.Buffer, clock *fakeClock) *Bar {
	b := NewBar().WithOutput(buf).WithDisplayWidth(200)
	b.now = clock.Now
	return b
}

// renders splits the carriage-return protocol back into individual
// lines, with erase padding stripped.
func renders(buf *bytes.Buffer) []string {
	s := strings.TrimSuffix(buf.String(), "\n")
	parts := strings.Split(s, "\r")
	lines := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		lines = append(lines, strings.TrimRight(p, " "))
	}
	return lines
}

func TestFirstAndFinalRendersAreMandatory(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	b := newTestBar(&buf, clock).WithTotal(5).WithRefreshInterval(time.Hour)

	for range 5 {
		b.Add(1)
	}
	b.Finish()

	lines := renders(&buf)
	require.Len(t, lines, 2) // interval larger than the whole run
	assert.Contains(t, lines[0], "1/5")
	assert.Contains(t, lines[1], "5/5")
	assert.Contains(t, lines[1], "100.0%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestThrottleBoundsRedrawFrequency(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	b := newTestBar(&buf, clock).WithRefreshInterval(100 * time.Millisecond)

	b.Add(1) // mandatory first render
	clock.Advance(50 * time.Millisecond)
	b.Add(1) // 50ms since last render: suppressed
	clock.Advance(60 * time.Millisecond)
	b.Add(1) // 110ms since last render: drawn

	assert.Len(t, renders(&buf), 2)

	clock.Advance(10 * time.Millisecond)
	b.Finish() // mandatory regardless of elapsed time
	assert.Len(t, renders(&buf), 3)
}

func TestFinishIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBar(&buf, newFakeClock()).WithTotal(3)

	b.Add(3)
	b.Finish()
	b.Finish()
	b.Add(1) // no effect after finish

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Len(t, renders(&buf), 2)
	assert.Equal(t, int64(3), b.Count())
}

func TestPrefixAndBarRight(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	b := newTestBar(&buf, clock).
		WithTotal(4).
		WithPrefix("Processing...").
		WithBarPosition(BarRight).
		WithBarWidth(8).
		WithRefreshInterval(time.Millisecond)

	for range 4 {
		b.Add(1)
		clock.Advance(10 * time.Millisecond)
	}
	b.Finish()

	lines := renders(&buf)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Processing..."), "line %q", line)
	}
	// Bar floats right: the final line ends with a fully filled bar.
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], strings.Repeat("▪", 8)))
}

func TestUnknownTotalShowsSpinnerAndCount(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	b := newTestBar(&buf, clock).WithRefreshInterval(time.Millisecond)

	b.Add(10)
	clock.Advance(5 * time.Millisecond)
	b.Add(10)
	b.Finish()

	lines := renders(&buf)
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.NotContains(t, line, "%")
		assert.NotContains(t, line, "eta")
	}
	assert.True(t, strings.HasPrefix(lines[0], "|"))
	assert.True(t, strings.HasPrefix(lines[1], "/"))
	assert.Contains(t, lines[2], "20")
}

func TestOverrunClampsBarNotCounts(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBar(&buf, newFakeClock()).WithTotal(10).WithBarWidth(5)

	b.Add(15)
	b.Finish()

	lines := renders(&buf)
	final := lines[len(lines)-1]
	assert.Contains(t, final, "15/10") // true overshoot stays visible
	assert.Contains(t, final, "100.0%")
	assert.Contains(t, final, "▪▪▪▪▪")
	assert.NotContains(t, final, "□")
}

func TestDisplayWidthTruncates(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar().
		WithOutput(&buf).
		WithDisplayWidth(10).
		WithPrefix("a very long prefix that cannot possibly fit").
		WithTotal(2)
	b.now = newFakeClock().Now

	b.Add(2)
	b.Finish()

	for _, line := range renders(&buf) {
		assert.LessOrEqual(t, len([]rune(line)), 10)
	}
}

func TestValidationErrorsAreStickyAndRejected(t *testing.T) {
	b := NewBar().
		WithRefreshInterval(0).
		WithTotal(-1).
		WithBarWidth(0)

	err := b.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh interval") // first error wins

	// The invalid values were never applied.
	assert.Equal(t, defaultRefreshInterval, b.cfg.refreshInterval)
	_, known := b.Total()
	assert.False(t, known)

	assert.Error(t, NewBar().WithDisplayWidth(-5).Err())
	assert.NoError(t, NewBar().WithTotal(0).Err()) // known-empty is valid
}

func TestConfigFrozenAfterFirstRender(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBar(&buf, newFakeClock()).WithTotal(2)

	b.Add(1)
	b.WithPrefix("late").WithTotal(99).WithBarPosition(BarRight) // no-ops
	b.Finish()

	out := buf.String()
	assert.NotContains(t, out, "late")
	assert.Contains(t, out, "2/2")
	assert.NoError(t, b.Err())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRenderFailureIsNonFatal(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	b := NewBar().WithOutput(failWriter{}).WithDisplayWidth(80).WithLogger(logger)
	b.now = newFakeClock().Now

	b.Add(7)
	b.Finish()

	// The computation's state is untouched; the failure is only logged.
	assert.Equal(t, int64(7), b.Count())
	assert.Contains(t, logBuf.String(), "progress render failed")
}

func TestStreamAndPositionNames(t *testing.T) {
	assert.Equal(t, "stdout", StdOut.String())
	assert.Equal(t, "stderr", StdErr.String())
	assert.Equal(t, "left", BarLeft.String())
	assert.Equal(t, "right", BarRight.String())
}
