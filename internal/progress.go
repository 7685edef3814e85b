package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles all user-facing output (status lines, progress, warnings)
type UIManager interface {
	// Progress bars
	NewProgressBar(total int, description string) ProgressBar

	// Verbose output
	Verbose(format string, args ...any)

	// Status messages
	Printf(format string, args ...any)
	Println(args ...any)

	// Errorf prints even in quiet mode
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}

// ProgressBar interface abstracts progress bar operations
type ProgressBar interface {
	Set(current int)
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	verbose     bool
	quiet       bool
	interactive bool
	out         io.Writer
	errOut      io.Writer
}

// NewUIManager writes to stdout/stderr and draws bars only on a terminal
func NewUIManager(verbose, quiet bool) UIManager {
	fd := os.Stdout.Fd()
	return &StandardUIManager{
		verbose:     verbose,
		quiet:       quiet,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
}

// NewWriterUIManager is a non-interactive UI writing to the given writers
func NewWriterUIManager(out, errOut io.Writer, verbose, quiet bool) UIManager {
	return &StandardUIManager{
		verbose: verbose,
		quiet:   quiet,
		out:     out,
		errOut:  errOut,
	}
}

// Progress Bar Methods
func (ui *StandardUIManager) NewProgressBar(total int, description string) ProgressBar {
	if ui.quiet {
		return &SilentProgressBar{bar: progressbar.DefaultSilent(int64(total))}
	}

	if !ui.interactive {
		return newLineProgressBar(ui.out, description)
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(min(30, getTerminalWidth()/3)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return &VisibleProgressBar{bar: bar}
}

// Verbose Output Methods
func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Fprintf(ui.out, format, args...)
	}
}

// Status Message Methods
func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, args...)
	}
}

func (ui *StandardUIManager) Errorf(format string, args ...any) {
	fmt.Fprint(ui.out, ui.styled(fmt.Sprintf(format, args...), "1"))
}

func (ui *StandardUIManager) Warnf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprint(ui.errOut, ui.styled(fmt.Sprintf(format, args...), "3"))
	}
}

// styled colors s on terminals that support it
func (ui *StandardUIManager) styled(s, color string) string {
	if !ui.interactive {
		return s
	}
	profile := termenv.EnvColorProfile()
	return termenv.String(s).Foreground(profile.Color(color)).String()
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Set(current int) {
	_ = v.bar.Set(current)
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct {
	bar *progressbar.ProgressBar
}

func (s *SilentProgressBar) Set(current int) {
	_ = s.bar.Set(current)
}

func (s *SilentProgressBar) Describe(description string) {}

func (s *SilentProgressBar) Finish() {
	_ = s.bar.Finish()
}

// lineProgressBar prints one line per description when no terminal is attached
type lineProgressBar struct {
	out         io.Writer
	description string
}

func newLineProgressBar(out io.Writer, description string) *lineProgressBar {
	fmt.Fprintln(out, description)
	return &lineProgressBar{out: out, description: description}
}

func (l *lineProgressBar) Set(current int) {}

func (l *lineProgressBar) Describe(description string) {
	if description == l.description {
		return
	}
	l.description = description
	fmt.Fprintln(l.out, description)
}

func (l *lineProgressBar) Finish() {}
