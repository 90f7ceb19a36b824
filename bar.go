package prog

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bamsammich/prog/internal/format"
	"github.com/bamsammich/prog/internal/rate"
	"github.com/bamsammich/prog/internal/term"
)

// Bar is the render engine shared by the sequence and reader decorators.
// It tracks how much of the wrapped source has been consumed and redraws
// a single terminal line in place, at most once per refresh interval.
//
// A Bar can also be driven by hand for sources that are neither sequences
// nor readers: call Add after each unit of work and Finish when done.
// Rendering is best-effort; write failures never disturb the counters or
// the wrapped computation.
//
// A Bar must be driven from a single goroutine.
type Bar struct {
	cfg config

	count    int64
	total    int64
	hasTotal bool
	inBytes  bool // render counts as byte sizes and rates as B/s

	started    bool // consumption began; config is frozen
	finished   bool
	spin       int
	lastRender time.Time
	lastWidth  int // rune width of the previous draw, for erasure

	out     io.Writer
	width   int
	tracker *rate.Tracker
	err     error

	now func() time.Time
}

// NewBar creates a bar with default settings: stdout, bar on the left,
// 100ms refresh interval, unknown total.
func NewBar() *Bar {
	return &Bar{
		cfg: defaultSettings(),
		now: time.Now,
	}
}

func (b *Bar) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first configuration error recorded by a setter, if any.
// Check it after chaining configuration; invalid values are never applied.
func (b *Bar) Err() error {
	return b.err
}

// Count returns the number of items or bytes consumed so far.
func (b *Bar) Count() int64 {
	return b.count
}

// Total returns the known upper bound, or false if it is unknown.
func (b *Bar) Total() (int64, bool) {
	return b.total, b.hasTotal
}

// WithPrefix sets the text displayed in front of the progress line.
func (b *Bar) WithPrefix(prefix string) *Bar {
	if !b.started {
		b.cfg.prefix = prefix
	}
	return b
}

// WithOutputStream selects stdout or stderr as the render target.
func (b *Bar) WithOutputStream(s OutputStream) *Bar {
	if !b.started {
		b.cfg.stream = s
	}
	return b
}

// WithOutput redirects rendering to an arbitrary writer, overriding the
// stream selection. Mainly useful in tests.
func (b *Bar) WithOutput(w io.Writer) *Bar {
	if !b.started {
		b.cfg.output = w
	}
	return b
}

// WithBarPosition places the bar to the left or right of the summary.
func (b *Bar) WithBarPosition(p BarPosition) *Bar {
	if !b.started {
		b.cfg.position = p
	}
	return b
}

// WithRefreshInterval sets the minimum delay between two redraws. The
// first and final renders are exempt.
func (b *Bar) WithRefreshInterval(d time.Duration) *Bar {
	if b.started {
		return b
	}
	if d <= 0 {
		b.setErr(fmt.Errorf("refresh interval must be positive, got %v", d))
		return b
	}
	b.cfg.refreshInterval = d
	return b
}

// WithBarWidth sets the width of the bar graphic in runes.
func (b *Bar) WithBarWidth(n int) *Bar {
	if b.started {
		return b
	}
	if n <= 0 {
		b.setErr(fmt.Errorf("bar width must be positive, got %d", n))
		return b
	}
	b.cfg.barWidth = n
	return b
}

// WithDisplayWidth sets the total line width to fit within. By default
// the terminal width is queried, falling back to 80 columns.
func (b *Bar) WithDisplayWidth(n int) *Bar {
	if b.started {
		return b
	}
	if n <= 0 {
		b.setErr(fmt.Errorf("display width must be positive, got %d", n))
		return b
	}
	b.cfg.displayWidth = n
	return b
}

// WithTotal overrides the expected total number of items or bytes.
func (b *Bar) WithTotal(total int64) *Bar {
	if b.started {
		return b
	}
	if total < 0 {
		b.setErr(fmt.Errorf("total must be non-negative, got %d", total))
		return b
	}
	b.total = total
	b.hasTotal = true
	return b
}

// WithLogger sets a logger for render write failures. Without one they
// are silently dropped.
func (b *Bar) WithLogger(logger *slog.Logger) *Bar {
	if !b.started {
		b.cfg.logger = logger
	}
	return b
}

// Add records n consumed items or bytes and redraws if the refresh
// interval has elapsed. The render at the first count transition from
// zero is unconditional. Add is a no-op after Finish.
func (b *Bar) Add(n int64) {
	if b.finished || n <= 0 {
		return
	}
	now := b.now()
	b.begin(now)

	first := b.count == 0
	b.count += n
	b.tracker.Observe(now, b.count)

	if first || now.Sub(b.lastRender) >= b.cfg.refreshInterval {
		b.render(now, false)
	}
}

// Finish performs the final unconditional render followed by a newline,
// leaving the cursor on a fresh line. It is idempotent; once finished
// the bar renders nothing further.
func (b *Bar) Finish() {
	if b.finished {
		return
	}
	now := b.now()
	b.begin(now)
	b.finished = true
	b.render(now, true)
}

// begin freezes the configuration and resolves the render target the
// first time the bar is driven.
func (b *Bar) begin(now time.Time) {
	if b.started {
		return
	}
	b.started = true

	b.out = b.cfg.output
	if b.out == nil {
		b.out = b.cfg.stream.file()
	}
	b.width = b.cfg.displayWidth
	if b.width == 0 {
		b.width = term.Width(b.out)
	}
	if b.width <= 0 {
		b.width = defaultDisplayWidth
	}
	b.tracker = rate.NewTracker(now)
}

// render redraws the line in place with a carriage return, padding over
// whatever the previous draw left behind.
func (b *Bar) render(now time.Time, final bool) {
	b.lastRender = now

	line := b.line(now, final)
	if runes := []rune(line); len(runes) > b.width {
		line = string(runes[:b.width])
	}
	visible := len([]rune(line))

	var sb strings.Builder
	sb.WriteByte('\r')
	sb.WriteString(line)
	for i := visible; i < b.lastWidth; i++ {
		sb.WriteByte(' ')
	}
	if final {
		sb.WriteByte('\n')
	}
	b.lastWidth = visible

	if _, err := io.WriteString(b.out, sb.String()); err != nil && b.cfg.logger != nil {
		b.cfg.logger.Debug("progress render failed",
			"stream", b.cfg.stream, "error", err)
	}
}

// line assembles prefix, bar graphic and summary in configured order.
func (b *Bar) line(now time.Time, final bool) string {
	var speed float64
	if final {
		speed = b.tracker.Average(now, b.count)
	} else {
		speed = b.tracker.Rolling(now, b.count)
	}
	rateStr := format.ItemRate(speed)
	if b.inBytes {
		rateStr = format.Rate(speed)
	}

	var graphic string
	var parts []string
	if b.hasTotal {
		frac := 1.0
		if b.count < b.total {
			frac = float64(b.count) / float64(b.total)
		}
		// The bar and percentage clamp at 100%; the raw counts show
		// any overshoot past a misreported total.
		parts = append(parts,
			b.formatCount(b.count)+"/"+b.formatCount(b.total),
			fmt.Sprintf("%5.1f%%", frac*100),
			rateStr,
		)
		if final {
			parts = append(parts, format.Duration(b.tracker.Elapsed(now)))
		} else {
			eta := "--"
			if d, ok := b.tracker.ETA(now, b.count, b.total); ok {
				eta = format.ETA(d)
			}
			parts = append(parts, "eta "+eta)
		}
		graphic = format.Bar(frac, b.cfg.barWidth)
	} else {
		// Unknown total: raw count and rate, spinner instead of a bar.
		parts = append(parts,
			b.formatCount(b.count),
			rateStr,
			format.Duration(b.tracker.Elapsed(now)),
		)
		graphic = string(format.Spinner(b.spin))
		b.spin++
	}
	summary := strings.Join(parts, "  ")

	segs := make([]string, 0, 3)
	if b.cfg.prefix != "" {
		segs = append(segs, b.cfg.prefix)
	}
	if b.cfg.position == BarRight {
		segs = append(segs, summary, graphic)
	} else {
		segs = append(segs, graphic, summary)
	}
	return strings.Join(segs, "  ")
}

func (b *Bar) formatCount(n int64) string {
	if b.inBytes {
		return format.Bytes(n)
	}
	return format.Count(n)
}
