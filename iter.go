package prog

import (
	"io"
	"iter"
	"log/slog"
	"slices"
	"time"
)

// Iter decorates a sequence with progress reporting. It yields exactly
// the values of the wrapped sequence, in order, advancing the bar by one
// per item and finalizing the render when the sequence is exhausted or
// the consumer breaks out early.
type Iter[V any] struct {
	bar *Bar
	seq iter.Seq[V]
}

// ForSeq wraps an arbitrary sequence. The total is unknown unless set
// with WithTotal.
func ForSeq[V any](seq iter.Seq[V]) *Iter[V] {
	return &Iter[V]{bar: NewBar(), seq: seq}
}

// ForSlice wraps iteration over a slice. The total is captured from its
// length.
func ForSlice[V any](s []V) *Iter[V] {
	return ForSeq(slices.Values(s)).WithTotal(int64(len(s)))
}

// ForN wraps counting from 0 to n-1, with the total known up front.
func ForN(n int) *Iter[int] {
	seq := func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
	return ForSeq(seq).WithTotal(int64(n))
}

// All returns the decorated sequence. Draining it (or breaking out of
// the range loop) triggers the final render exactly once; the underlying
// sequence is consumed at most once, like any single-use iterator.
func (it *Iter[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		defer it.bar.Finish()
		for v := range it.seq {
			it.bar.Add(1)
			if !yield(v) {
				return
			}
		}
	}
}

// Bar returns the underlying render engine, for reading the count or
// total after consumption.
func (it *Iter[V]) Bar() *Bar {
	return it.bar
}

// Err reports any configuration error recorded by the setters.
func (it *Iter[V]) Err() error {
	return it.bar.Err()
}

// WithPrefix sets the text displayed in front of the progress line.
func (it *Iter[V]) WithPrefix(prefix string) *Iter[V] {
	it.bar.WithPrefix(prefix)
	return it
}

// WithOutputStream selects stdout or stderr as the render target.
func (it *Iter[V]) WithOutputStream(s OutputStream) *Iter[V] {
	it.bar.WithOutputStream(s)
	return it
}

// WithOutput redirects rendering to an arbitrary writer.
func (it *Iter[V]) WithOutput(w io.Writer) *Iter[V] {
	it.bar.WithOutput(w)
	return it
}

// WithBarPosition places the bar to the left or right of the summary.
func (it *Iter[V]) WithBarPosition(p BarPosition) *Iter[V] {
	it.bar.WithBarPosition(p)
	return it
}

// WithRefreshInterval sets the minimum delay between two redraws.
func (it *Iter[V]) WithRefreshInterval(d time.Duration) *Iter[V] {
	it.bar.WithRefreshInterval(d)
	return it
}

// WithBarWidth sets the width of the bar graphic in runes.
func (it *Iter[V]) WithBarWidth(n int) *Iter[V] {
	it.bar.WithBarWidth(n)
	return it
}

// WithDisplayWidth sets the total line width to fit within.
func (it *Iter[V]) WithDisplayWidth(n int) *Iter[V] {
	it.bar.WithDisplayWidth(n)
	return it
}

// WithTotal overrides the expected number of items.
func (it *Iter[V]) WithTotal(total int64) *Iter[V] {
	it.bar.WithTotal(total)
	return it
}

// WithLogger sets a logger for render write failures.
func (it *Iter[V]) WithLogger(logger *slog.Logger) *Iter[V] {
	it.bar.WithLogger(logger)
	return it
}
