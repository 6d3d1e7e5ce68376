package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/integrations-dev/catalog/internal/app"
)

type Options struct {
	NoColor bool
	Out     io.Writer
	Err     io.Writer
}

type Renderer struct {
	out     io.Writer
	err     io.Writer
	isTTY   bool
	noColor bool
	styles  styles
}

type styles struct {
	info   lipgloss.Style
	error  lipgloss.Style
	column lipgloss.Style
	label  lipgloss.Style
}

func NewRenderer(opts Options) *Renderer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	profile := termenv.EnvColorProfile()
	if opts.NoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	return &Renderer{
		out:     out,
		err:     errOut,
		isTTY:   isTTY,
		noColor: opts.NoColor || profile == termenv.Ascii,
		styles: styles{
			info:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
			error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			column: lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
			label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

func (r *Renderer) Info(message string) {
	r.println(r.out, r.styles.info.Render(message))
}

func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}
	r.println(r.err, r.styles.error.Render(err.Error()))
}

func (r *Renderer) Column(name, description string) {
	r.println(r.out, fmt.Sprintf("%s %s", r.styles.column.Render(fmt.Sprintf("%-14s", name)), r.styles.label.Render(description)))
}

// Progress draws a bar on stderr while attached to a terminal and stays
// silent otherwise so piped reports are not interleaved with status lines.
func (r *Renderer) Progress(label string, total int) app.ProgressReporter {
	if total <= 0 || !r.isTTY {
		return noopProgress{}
	}
	return &progressReporter{
		out:   r.err,
		total: total,
		label: label,
		model: progress.New(
			progress.WithWidth(28),
			progress.WithDefaultGradient(),
		),
	}
}

func (r *Renderer) println(w io.Writer, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(w, message)
}

type progressReporter struct {
	out     io.Writer
	model   progress.Model
	total   int
	current int
	label   string
	item    string
	done    bool
}

func (p *progressReporter) Increment(item string) {
	p.item = item
	p.current++
	p.renderLine()
}

func (p *progressReporter) Done() {
	if p.done {
		return
	}
	p.done = true
	p.current = p.total
	p.item = ""
	p.renderLine()
	fmt.Fprintln(p.out)
}

func (p *progressReporter) renderLine() {
	percent := float64(p.current) / float64(p.total)
	bar := p.model.ViewAs(percent)
	line := fmt.Sprintf("%s %s %d/%d %s", bar, p.label, p.current, p.total, truncate(p.item, 40))
	fmt.Fprintf(p.out, "\r\033[K%s", line)
}

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}
