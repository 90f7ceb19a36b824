// Package prog decorates sequences and readers with a live terminal
// progress bar, without altering the values they produce.
//
// Wrapping an iteration is one call:
//
//	for i := range prog.ForN(1000).WithPrefix("Processing...").All() {
//		work(i)
//	}
//
// Any Go sequence can be wrapped; a slice or bounded range carries its
// total automatically, anything else shows a spinner and raw count
// unless a total is supplied:
//
//	it := prog.ForSeq(lines).WithTotal(expected)
//	for line := range it.All() {
//		handle(line)
//	}
//
// The same works for readers. A file reports its size, so the bar shows
// a percentage and ETA:
//
//	f, err := os.Open(path)
//	if err != nil {
//		return err
//	}
//	r := prog.NewReader(f).WithPrefix("Reading...").WithBarPosition(prog.BarRight)
//	defer r.Close()
//	if _, err := io.Copy(dst, r); err != nil {
//		return err
//	}
//
// Rendering overwrites a single line in place using carriage returns and
// is throttled to one redraw per refresh interval (100ms by default);
// the first and final renders always happen. Progress output is
// best-effort: a write failure on the terminal never affects the
// decorated values or errors.
//
// A bare Bar can also be driven manually with Add and Finish for work
// that is neither a sequence nor a stream.
//
// Decorators are single-use and single-goroutine, like the sources they
// wrap.
package prog
