package prog

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// OutputStream selects where the progress line is written.
type OutputStream int

const (
	StdOut OutputStream = iota
	StdErr
)

var streamNames = [...]string{
	StdOut: "stdout",
	StdErr: "stderr",
}

func (s OutputStream) String() string {
	if int(s) < len(streamNames) {
		return streamNames[s]
	}
	return "unknown"
}

func (s OutputStream) file() *os.File {
	if s == StdErr {
		return os.Stderr
	}
	return os.Stdout
}

// BarPosition selects where the bar sits relative to the summary text.
type BarPosition int

const (
	// BarLeft draws the bar right after the prefix, summary after it.
	BarLeft BarPosition = iota

	// BarRight draws the summary first and floats the bar to the right.
	BarRight
)

var positionNames = [...]string{
	BarLeft:  "left",
	BarRight: "right",
}

func (p BarPosition) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "unknown"
}

// Display defaults. The refresh interval bounds redraw frequency; the
// first and final renders bypass it.
const (
	defaultRefreshInterval = 100 * time.Millisecond
	defaultBarWidth        = 20
	defaultDisplayWidth    = 80
)

// config holds the display settings for one bar. It is frozen once the
// wrapped source starts being consumed.
type config struct {
	prefix          string
	stream          OutputStream
	position        BarPosition
	refreshInterval time.Duration
	barWidth        int
	displayWidth    int          // 0 means query the terminal
	output          io.Writer    // overrides stream when set
	logger          *slog.Logger // nil means render failures are dropped
}

func defaultSettings() config {
	return config{
		stream:          StdOut,
		position:        BarLeft,
		refreshInterval: defaultRefreshInterval,
		barWidth:        defaultBarWidth,
	}
}
