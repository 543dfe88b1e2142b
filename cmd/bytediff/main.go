package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/bytediff/internal/config"
	"github.com/pstuifzand/bytediff/internal/diff"
	"github.com/pstuifzand/bytediff/internal/render"
	"github.com/pstuifzand/bytediff/internal/theme"
	"github.com/pstuifzand/bytediff/internal/transcode"
	"github.com/sanity-io/litter"
	"golang.org/x/term"
)

// Exit codes
const (
	exitIdentical = 0
	exitDifferent = 1
	exitError     = 2
)

const usage = `Usage: bytediff [options] <source-file> <target-file>
       bytediff [options] -s <source-string> <target-string>

Compares two inputs code point by code point and shows the shortest set of
insertions, deletions and replacements that turns source into target.

Options:
`

const examples = `
Examples:
  # Compare two text files
  bytediff old.txt new.txt

  # Show every edit with 10 characters of context on each side
  bytediff -v -context 10 old.txt new.txt

  # Compare binary files, printing differing bytes in hex
  bytediff -b old.bin new.bin

  # Compare two literal strings
  bytediff -s quickfox quickbrownfox

Exit status is 0 if the inputs are identical, 1 if they differ and 2 on error.
`

// cliOptions collects the parsed command line
type cliOptions struct {
	strings    bool
	binary     bool
	utf16      bool
	verbose    bool
	summary    bool
	debug      bool
	context    int
	radix      int
	width      int
	maxEdits   int
	charset    string
	color      string
	themeName  string
	configPath string
	only       string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bytediff", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts cliOptions
	fs.BoolVar(&opts.strings, "s", false, "Treat arguments as literal strings instead of file names")
	fs.BoolVar(&opts.binary, "b", false, "Binary mode: map every byte to one code point and print raw values")
	fs.BoolVar(&opts.utf16, "utf16", false, "Diff UTF-16 code units instead of code points")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output: one line per edit with surrounding context")
	fs.BoolVar(&opts.summary, "summary", false, "Print a summary line after the diff")
	fs.BoolVar(&opts.debug, "debug", false, "Write spans and timings to bytediff.log")
	fs.IntVar(&opts.context, "context", -1, "Context size on each side in verbose mode, 0 for none (default from config)")
	fs.IntVar(&opts.radix, "radix", 0, "Radix for raw values in binary mode (default from config)")
	fs.IntVar(&opts.width, "width", 0, "Fit verbose lines into this many columns")
	fs.IntVar(&opts.maxEdits, "max-d", -1, "Give up after this many insertions and deletions (0 = no limit)")
	fs.StringVar(&opts.charset, "charset", "", "Charset of the input files (default from config)")
	fs.StringVar(&opts.color, "color", "", "Color output: auto, always or never")
	fs.StringVar(&opts.themeName, "theme", "", "Color theme name")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/bytediff/config.toml)")
	fs.StringVar(&opts.only, "only", "", "Comma separated span kinds to show in verbose mode, e.g. insert,delete")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
		fmt.Fprint(stderr, examples)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitIdentical
		}
		return exitError
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return exitError
	}

	if opts.debug {
		logFile, err := os.OpenFile("bytediff.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening log file: %v\n", err)
			return exitError
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	identical, err := compare(fs.Arg(0), fs.Arg(1), opts, cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if identical {
		return exitIdentical
	}
	return exitDifferent
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// compare loads both inputs, diffs them and writes the output to w
func compare(sourceArg, targetArg string, opts cliOptions, cfg *config.Config, w io.Writer) (bool, error) {
	renderOpts, err := renderOptions(opts, cfg, w)
	if err != nil {
		return false, err
	}

	maxEdits := cfg.MaxEditDistance
	if opts.maxEdits >= 0 {
		maxEdits = opts.maxEdits
	}

	charset := cfg.Charset
	if opts.charset != "" {
		charset = opts.charset
	}

	var sourceData, targetData []byte
	if opts.strings {
		sourceData, targetData = []byte(sourceArg), []byte(targetArg)
	} else {
		if sourceData, err = os.ReadFile(sourceArg); err != nil {
			return false, fmt.Errorf("failed to read source: %w", err)
		}
		if targetData, err = os.ReadFile(targetArg); err != nil {
			return false, fmt.Errorf("failed to read target: %w", err)
		}
		printHeader(w, sourceArg, targetArg, cfg.TimeFormat)
	}

	switch {
	case opts.utf16:
		source, err := transcode.DecodeUnits(sourceData, charset)
		if err != nil {
			return false, fmt.Errorf("failed to decode source: %w", err)
		}
		target, err := transcode.DecodeUnits(targetData, charset)
		if err != nil {
			return false, fmt.Errorf("failed to decode target: %w", err)
		}
		return report(w, source, target, maxEdits, renderOpts, opts.summary)

	case opts.binary:
		return report(w, transcode.Identity(sourceData), transcode.Identity(targetData), maxEdits, renderOpts, opts.summary)

	default:
		source, err := transcode.Decode(sourceData, charset)
		if err != nil {
			return false, fmt.Errorf("failed to decode source: %w", err)
		}
		target, err := transcode.Decode(targetData, charset)
		if err != nil {
			return false, fmt.Errorf("failed to decode target: %w", err)
		}
		return report(w, source, target, maxEdits, renderOpts, opts.summary)
	}
}

// report diffs source against target and prints the result
func report[T diff.Unit](w io.Writer, source, target []T, maxEdits int, opts render.Options, summary bool) (bool, error) {
	start := time.Now()
	result, err := diff.ComputeContext(context.Background(), source, target, diff.WithMaxEditDistance(maxEdits))
	if err != nil {
		return false, err
	}
	log.Printf("diffed %d against %d units in %v", len(source), len(target), time.Since(start))
	log.Printf("spans: %s", litter.Sdump(result.Spans()))

	out := render.Print(result, opts)
	fmt.Fprint(w, out)
	if out != "" && !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(w)
	}

	if summary {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Summary ===")
		fmt.Fprintf(w, "  %s\n", render.Summary(result))
	}

	return result.Identical(), nil
}

// renderOptions merges command line flags over the config file
func renderOptions(opts cliOptions, cfg *config.Config, w io.Writer) (render.Options, error) {
	ro := render.Options{
		Verbose:      opts.verbose || cfg.Verbose,
		ContextLeft:  contextWindow(cfg.ContextLeft),
		ContextRight: contextWindow(cfg.ContextRight),
		Width:        opts.width,
		Encoder:      render.SanitizeEncoder{TabWidth: 4},
	}
	if ro.Width == 0 {
		ro.Width = cfg.GetInt("width", 0)
	}
	if opts.context >= 0 {
		ro.ContextLeft = contextWindow(opts.context)
		ro.ContextRight = contextWindow(opts.context)
	}

	if opts.binary {
		radix := cfg.Radix
		if opts.radix > 0 {
			radix = opts.radix
		}
		ro.Encoder = render.RawValueEncoder{Radix: radix}
	}

	if opts.only != "" {
		for _, name := range strings.Split(opts.only, ",") {
			kind, err := diff.ParseKind(name)
			if err != nil {
				return ro, err
			}
			ro.Kinds = append(ro.Kinds, kind)
		}
	}

	colorMode := cfg.Color
	if opts.color != "" {
		colorMode = opts.color
	}
	useColor, err := wantColor(colorMode, w)
	if err != nil {
		return ro, err
	}

	if useColor {
		themeName := cfg.Theme
		if opts.themeName != "" {
			themeName = opts.themeName
		}
		th, err := theme.LoadTheme(themeName)
		if err != nil {
			return ro, err
		}
		ro.Formatter = render.NewANSIFormatter(th)
	} else {
		ro.Formatter = render.SymbolFormatter{}
	}

	return ro, nil
}

// contextWindow maps a configured context size to render options, where 0
// means no context rather than the default
func contextWindow(n int) int {
	if n <= 0 {
		return render.NoContext
	}
	return n
}

// wantColor resolves a color mode; auto colors only when w is a terminal
func wantColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto, "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("unknown color mode %q", mode)
}

// printHeader prints the file names with their modification times
func printHeader(w io.Writer, sourcePath, targetPath, timeFormat string) {
	fmt.Fprintf(w, "=== bytediff: %s → %s ===\n", describeFile(sourcePath, timeFormat), describeFile(targetPath, timeFormat))
}

func describeFile(path, timeFormat string) string {
	info, err := os.Stat(path)
	if err != nil || timeFormat == "" {
		return path
	}
	return fmt.Sprintf("%s (%s)", path, strftime.Format(timeFormat, info.ModTime()))
}
