package prog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"
)

// Reader decorates an io.Reader with progress reporting. Reads are
// delegated unchanged; the bar advances by the number of bytes actually
// read. Reaching end of stream triggers the final render, as does Close,
// so wrap Close in a defer when consumption may stop early.
//
// The total is captured automatically from sources that can report their
// size (an *os.File via Stat, a bytes.Reader via Len); otherwise it
// stays unknown and the bar degrades to a count, rate and spinner.
type Reader struct {
	r   io.Reader
	bar *Bar
}

type statter interface {
	Stat() (fs.FileInfo, error)
}

type lenner interface {
	Len() int
}

// NewReader wraps r with progress reporting.
func NewReader(r io.Reader) *Reader {
	pr := &Reader{r: r, bar: NewBar()}
	pr.bar.inBytes = true
	if total, ok := sizeOf(r); ok {
		pr.bar.WithTotal(total)
	}
	return pr
}

// sizeOf queries the wrapped source for a total size, if it has one.
func sizeOf(r io.Reader) (int64, bool) {
	switch src := r.(type) {
	case statter:
		fi, err := src.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0, false
		}
		return fi.Size(), true
	case lenner:
		return int64(src.Len()), true
	}
	return 0, false
}

// Read delegates to the wrapped reader. Bytes read advance the bar; end
// of stream triggers the final render. Other errors are propagated
// without touching the progress state.
func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.bar.Add(int64(n))
	}
	if errors.Is(err, io.EOF) {
		pr.bar.Finish()
	}
	return n, err
}

// Seek delegates to the wrapped reader if it is seekable. Seeking
// forward counts the skipped bytes as consumed, so sampled reads over a
// large file keep the bar honest.
func (pr *Reader) Seek(offset int64, whence int) (int64, error) {
	s, ok := pr.r.(io.Seeker)
	if !ok {
		return 0, fmt.Errorf("seek: wrapped %T is not an io.Seeker", pr.r)
	}
	pos, err := s.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	if skipped := pos - pr.bar.Count(); skipped > 0 {
		pr.bar.Add(skipped)
	}
	return pos, nil
}

// Close finalizes the render, exactly once, and closes the wrapped
// reader if it is an io.Closer.
func (pr *Reader) Close() error {
	pr.bar.Finish()
	if c, ok := pr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Bar returns the underlying render engine.
func (pr *Reader) Bar() *Bar {
	return pr.bar
}

// Err reports any configuration error recorded by the setters.
func (pr *Reader) Err() error {
	return pr.bar.Err()
}

// WithPrefix sets the text displayed in front of the progress line.
func (pr *Reader) WithPrefix(prefix string) *Reader {
	pr.bar.WithPrefix(prefix)
	return pr
}

// WithOutputStream selects stdout or stderr as the render target.
func (pr *Reader) WithOutputStream(s OutputStream) *Reader {
	pr.bar.WithOutputStream(s)
	return pr
}

// WithOutput redirects rendering to an arbitrary writer.
func (pr *Reader) WithOutput(w io.Writer) *Reader {
	pr.bar.WithOutput(w)
	return pr
}

// WithBarPosition places the bar to the left or right of the summary.
func (pr *Reader) WithBarPosition(p BarPosition) *Reader {
	pr.bar.WithBarPosition(p)
	return pr
}

// WithRefreshInterval sets the minimum delay between two redraws.
func (pr *Reader) WithRefreshInterval(d time.Duration) *Reader {
	pr.bar.WithRefreshInterval(d)
	return pr
}

// WithBarWidth sets the width of the bar graphic in runes.
func (pr *Reader) WithBarWidth(n int) *Reader {
	pr.bar.WithBarWidth(n)
	return pr
}

// WithDisplayWidth sets the total line width to fit within.
func (pr *Reader) WithDisplayWidth(n int) *Reader {
	pr.bar.WithDisplayWidth(n)
	return pr
}

// WithTotal overrides the expected number of bytes, for sources that
// cannot report their own size.
func (pr *Reader) WithTotal(total int64) *Reader {
	pr.bar.WithTotal(total)
	return pr
}

// WithLogger sets a logger for render write failures.
func (pr *Reader) WithLogger(logger *slog.Logger) *Reader {
	pr.bar.WithLogger(logger)
	return pr
}
