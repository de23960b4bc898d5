package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/scoped-release/readfile"
	"github.com/wippyai/scoped-release/resource"
	"github.com/wippyai/scoped-release/scope"
)

const previewLen = 64

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	os.Exit(cli(os.Args[1:], os.Stdout, os.Stderr))
}

// newLogger builds the release diagnostics logger.
var newLogger = func(verbose bool) *zap.Logger {
	if verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			return l
		}
	}
	return zap.NewNop()
}

// cli runs the command and returns the process exit code. Deferred work,
// including the logger flush, completes before main exits.
func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scoped", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file    = fs.String("file", "", "File to read")
		dir     = fs.String("dir", "", "Directory to list")
		limit   = fs.Int("limit", 1<<20, "Maximum bytes to read from -file")
		verbose = fs.Bool("v", false, "Verbose release diagnostics")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *file == "" && *dir == "" {
		fmt.Fprintln(stderr, "Usage: scoped -file <path> [-limit bytes] [-v]")
		fmt.Fprintln(stderr, "       scoped -dir <path> [-v]")
		return 1
	}

	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		plain := lipgloss.NewStyle()
		titleStyle, nameStyle, infoStyle, errorStyle = plain, plain, plain, plain
	}

	logger := newLogger(*verbose)
	defer logger.Sync()
	scope.SetLogger(logger)

	tracker := resource.NewTracker()
	opts := scope.Options{
		Logger:    logger,
		Observers: []resource.Observer{tracker},
	}

	err := run(stdout, opts, *file, *dir, *limit)
	fmt.Fprintln(stdout, infoStyle.Render(fmt.Sprintf("scoped variables: %d tracked, %d outstanding",
		tracker.Len(), len(tracker.Outstanding()))))
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	return 0
}

func run(w io.Writer, opts scope.Options, file, dir string, limit int) error {
	return scope.RunWith(opts, func(s *scope.Scope) error {
		if file != "" {
			if err := showFile(w, s, file, limit); err != nil {
				return err
			}
		}
		if dir != "" {
			if err := listDir(w, s, dir); err != nil {
				return err
			}
		}
		return nil
	})
}

func showFile(w io.Writer, s *scope.Scope, path string, limit int) error {
	st, err := s.OpenStream(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	data, err := readfile.ReadAll(st.Get(), limit)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	fmt.Fprintln(w, titleStyle.Render(path))
	fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("%d bytes", len(data))))

	preview := data
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}
	if utf8.Valid(preview) {
		fmt.Fprintf(w, "%s\n", preview)
	} else {
		fmt.Fprintf(w, "% x\n", preview)
	}
	return nil
}

func listDir(w io.Writer, s *scope.Scope, path string) error {
	d, err := s.OpenDir(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	names, err := d.Get().ReadNames(-1)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	slices.Sort(names)

	fmt.Fprintln(w, titleStyle.Render(path))
	for _, name := range names {
		fmt.Fprintln(w, "  "+nameStyle.Render(name))
	}
	fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("%d entries", len(names))))
	return nil
}
