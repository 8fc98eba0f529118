// Package terminal holds the line-oriented terminal adapters: the suggestion
// menu, the confirmation prompt, the progress spinner and styled output.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Banner is printed once at startup.
const Banner = "Command Helper - Your AI Assistant for Shell Commands"

var menuOptions = []string{
	"  Enter a number to select a command",
	"  r - Regenerate suggestions",
	"  c - Add a comment or clarification",
	"  0 or empty - Quit",
}

// Renderer owns all terminal output. Styles come from a renderer bound to
// out, so writing to anything that is not a color terminal yields plain text.
type Renderer struct {
	out    io.Writer
	header lipgloss.Style
	number lipgloss.Style
	notice lipgloss.Style
	warn   lipgloss.Style
	danger lipgloss.Style
	muted  lipgloss.Style
}

// NewRenderer builds a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:    out,
		header: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		number: r.NewStyle().Foreground(lipgloss.Color("11")),
		notice: r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("11")),
		danger: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Banner prints the startup line.
func (r *Renderer) Banner() {
	fmt.Fprintln(r.out, r.header.Render(Banner))
}

// Menu prints the numbered suggestions followed by the fixed options.
func (r *Renderer) Menu(suggestions []string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.header.Render("Suggestions:"))
	for i, s := range suggestions {
		fmt.Fprintf(r.out, "  %s %s\n", r.number.Render(fmt.Sprintf("%d.", i+1)), s)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.header.Render("Options:"))
	for _, line := range menuOptions {
		fmt.Fprintln(r.out, line)
	}
}

// Prompt writes text without a trailing newline.
func (r *Renderer) Prompt(text string) {
	fmt.Fprint(r.out, text)
}

// Notice implements ports.Notifier.
func (r *Renderer) Notice(message string) {
	fmt.Fprintln(r.out, r.notice.Render(message))
}

// Warn implements ports.Notifier.
func (r *Renderer) Warn(message string) {
	fmt.Fprintln(r.out, r.warn.Render(message))
}

// Risk prints guardrail findings ahead of the confirmation prompt.
func (r *Renderer) Risk(risk domain.RiskAssessment) {
	style := r.warn
	if risk.Level == domain.RiskHigh || risk.Level == domain.RiskCritical {
		style = r.danger
	}
	fmt.Fprintln(r.out, style.Render("Warning ("+strings.ToUpper(string(risk.Level))+" risk):"))
	for _, reason := range risk.Reasons {
		fmt.Fprintf(r.out, "  - %s\n", reason)
	}
}

// History prints executed commands oldest first with relative times.
func (r *Renderer) History(entries []domain.HistoryEntry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(r.out, r.muted.Render("No commands in history."))
		return
	}
	for _, e := range entries {
		when := humanize.RelTime(e.Timestamp, now, "ago", "from now")
		pad := strings.Repeat(" ", max(0, 16-len(when)))
		fmt.Fprintf(r.out, "%s%s  %s\n", r.muted.Render(when), pad, e.Command)
	}
}

// Health prints doctor results, one check per line.
func (r *Renderer) Health(report domain.HealthReport) {
	for _, check := range report.Checks {
		var tag string
		switch check.Status {
		case domain.HealthOK:
			tag = r.notice.Render("[ok]")
		case domain.HealthWarn:
			tag = r.warn.Render("[warn]")
		default:
			tag = r.danger.Render("[error]")
		}
		pad := strings.Repeat(" ", len("[error]")-lipgloss.Width(tag))
		fmt.Fprintf(r.out, "%s%s %s: %s\n", tag, pad, check.Name, check.Details)
	}
}

var _ ports.Notifier = (*Renderer)(nil)
