// Command prog showcases the progress decorators: counting through a
// bounded range, and reading files through a hashing pipeline.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/bamsammich/prog"
)

var version = "dev"

// streamFlag is a custom pflag.Value mapping stdout/stderr names to the
// prog.OutputStream enum.
type streamFlag struct {
	stream *prog.OutputStream
}

var _ pflag.Value = (*streamFlag)(nil)

func (f *streamFlag) String() string { return f.stream.String() }
func (*streamFlag) Type() string     { return "string" }

func (f *streamFlag) Set(val string) error {
	switch val {
	case "stdout":
		*f.stream = prog.StdOut
	case "stderr":
		*f.stream = prog.StdErr
	default:
		return fmt.Errorf("unknown stream %q (use stdout or stderr)", val)
	}
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		prefix   string
		right    bool
		interval time.Duration
		barWidth int
		stream   = prog.StdOut
		verbose  bool
	)

	rootCmd := &cobra.Command{
		Use:           "prog",
		Short:         "Terminal progress bar showcase",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&prefix, "prefix", "", "text displayed in front of the bar")
	pf.BoolVar(&right, "right", false, "float the bar to the right of the summary")
	pf.DurationVar(&interval, "interval", 100*time.Millisecond, "minimum delay between redraws")
	pf.IntVar(&barWidth, "bar-width", 20, "width of the bar graphic")
	pf.Var(&streamFlag{stream: &stream}, "output", "render target (stdout or stderr)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log render failures")

	position := func() prog.BarPosition {
		if right {
			return prog.BarRight
		}
		return prog.BarLeft
	}

	var (
		countN     int
		countDelay time.Duration
	)
	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Count through a bounded range with a progress bar",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			it := prog.ForN(countN).
				WithPrefix(prefix).
				WithBarPosition(position()).
				WithOutputStream(stream).
				WithRefreshInterval(interval).
				WithBarWidth(barWidth).
				WithLogger(slog.Default())
			if err := it.Err(); err != nil {
				return err
			}
			for range it.All() {
				if countDelay > 0 {
					time.Sleep(countDelay)
				}
			}
			return nil
		},
	}
	countCmd.Flags().IntVarP(&countN, "n", "n", 1_000_000, "items to count")
	countCmd.Flags().DurationVar(&countDelay, "delay", 0, "sleep per item")

	sumCmd := &cobra.Command{
		Use:   "sum <file>...",
		Short: "BLAKE3-hash files while showing read progress",
		Long: `Hash each file with BLAKE3, reading it through the progress decorator.
A regular file reports its size, so the bar shows percentage and ETA;
pass "-" to hash stdin and watch the spinner fall back.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				if err := sumFile(path, prefix, position(), stream, interval, barWidth); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(countCmd, sumCmd, docsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "prog: %v\n", err)
		return 1
	}
	return 0
}

func sumFile(
	path, prefix string,
	pos prog.BarPosition,
	stream prog.OutputStream,
	interval time.Duration,
	barWidth int,
) error {
	var src io.Reader = os.Stdin
	name := "-"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		src = f
		name = path
	}

	r := prog.NewReader(src).
		WithPrefix(prefix).
		WithBarPosition(pos).
		WithOutputStream(stream).
		WithRefreshInterval(interval).
		WithBarWidth(barWidth).
		WithLogger(slog.Default())
	if err := r.Err(); err != nil {
		return err
	}
	if path != "-" {
		// Closes the file and guarantees the final render even if the
		// copy stops early.
		defer r.Close()
	} else {
		defer r.Bar().Finish()
	}

	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return err
	}
	fmt.Printf("%x  %s\n", h.Sum(nil), name)
	return nil
}
