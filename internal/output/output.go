// Package output formats command results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/Aman-CERP/sentindex/internal/index"
	"github.com/Aman-CERP/sentindex/internal/query"
	"github.com/Aman-CERP/sentindex/internal/store"
)

// DefaultWrapWidth is the column at which sentences are wrapped.
const DefaultWrapWidth = 100

// Writer provides formatted output for CLI.
type Writer struct {
	out      io.Writer
	useColor bool
	label    lipgloss.Style
	accent   lipgloss.Style
}

// New creates a new output Writer without colors.
func New(out io.Writer) *Writer {
	return NewWithColor(out, false)
}

// NewWithColor creates a Writer that styles labels when useColor is set.
func NewWithColor(out io.Writer, useColor bool) *Writer {
	w := &Writer{
		out:      out,
		useColor: useColor,
		label:    lipgloss.NewStyle(),
		accent:   lipgloss.NewStyle(),
	}
	if useColor {
		w.label = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		w.accent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("154"))
	}
	return w
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.Status(icon, msg)
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Info prints a plain line.
func (w *Writer) Info(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Infof prints a formatted plain line.
func (w *Writer) Infof(format string, args ...any) {
	w.Info(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// JSON writes v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// QueryResult prints the documents and sentences containing the word.
// Sentences are wrapped at width columns; width <= 0 selects
// DefaultWrapWidth.
func (w *Writer) QueryResult(res *query.Result, width int) {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	if !res.Found() {
		w.Infof("Word %s not found in database", res.Word)
		return
	}

	ids := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		ids[i] = h.ID
	}
	word := w.accent.Render(res.Word)
	w.Infof("Word %s appearing in %d docs", word, res.DocumentCount)
	w.Infof("Word %s appearing in %d sentences: %s", word, res.SentenceCount, strings.Join(ids, ","))

	for _, h := range res.Hits {
		w.Infof("%s %s", w.label.Render("Doc:"), h.DocPath)
		w.Info(Wrap(h.Text, width))
		w.Newline()
	}
}

// Wrap word-wraps text at width columns, collapsing runs of whitespace.
func Wrap(text string, width int) string {
	return ansi.Wordwrap(strings.Join(strings.Fields(text), " "), width, "")
}

// Stats prints index counts. size is the on-disk size in bytes, or
// negative when unknown.
func (w *Writer) Stats(s store.Stats, location string, size int64) {
	w.Infof("%s %s", w.label.Render("Store:    "), location)
	if size >= 0 {
		w.Infof("%s %s", w.label.Render("Size:     "), humanize.Bytes(uint64(size)))
	}
	w.Infof("%s %s", w.label.Render("Documents:"), humanize.Comma(int64(s.Documents)))
	w.Infof("%s %s", w.label.Render("Sentences:"), humanize.Comma(int64(s.Sentences)))
	w.Infof("%s %s", w.label.Render("Words:    "), humanize.Comma(int64(s.Words)))
	w.Infof("%s %s", w.label.Render("Postings: "), humanize.Comma(int64(s.Postings)))
}

// CheckResult prints the outcome of a consistency check.
func (w *Writer) CheckResult(res *index.CheckResult) {
	if res.OK() {
		w.Successf("Index consistent: %s documents, %s sentences, %s words",
			humanize.Comma(int64(res.Documents)),
			humanize.Comma(int64(res.Sentences)),
			humanize.Comma(int64(res.Words)))
		return
	}
	w.Errorf("Found %d issues", len(res.Inconsistencies))
	for _, issue := range res.Inconsistencies {
		w.Statusf("", "%-16s %s: %s", issue.Kind, issue.Subject, issue.Details)
	}
}
