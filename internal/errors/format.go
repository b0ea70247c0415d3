package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// palette applies ANSI styles, or nothing when plain is set.
type palette struct{ plain bool }

func (p palette) paint(style, text string) string {
	if p.plain {
		return text
	}
	return style + text + ansiReset
}

// Format renders the error for a terminal with ANSI colors.
// NO_COLOR in the environment turns colors off.
func (e *Error) Format() string {
	var b strings.Builder
	e.render(&b, palette{plain: os.Getenv("NO_COLOR") != ""})
	return b.String()
}

// FormatPlain renders the error like Format, without colors.
func (e *Error) FormatPlain() string {
	var b strings.Builder
	e.render(&b, palette{plain: true})
	return b.String()
}

func (e *Error) render(b *strings.Builder, p palette) {
	head := "ERROR"
	if e.Code != "" {
		head += " " + e.Code
	}
	fmt.Fprintf(b, "\n%s %s\n\n", p.paint(ansiRed+ansiBold, head+":"), e.Message)

	if e.Location != nil {
		fmt.Fprintf(b, "  %s\n\n", p.paint(ansiCyan, e.Location.String()))
		e.renderSource(b, p)
	}
	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			fmt.Fprintf(b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		fmt.Fprintf(b, "  %s%s\n\n", p.paint(ansiGray, "Cause: "), e.Wrapped)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(b, "  %s%s\n\n", p.paint(ansiCyan, "Hint: "), e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(b, "  %s%s\n", p.paint(ansiGray, "Learn more: "), p.paint(ansiBlue, e.DocURL))
	}
}

// renderSource prints the context lines, marking the failing one.
func (e *Error) renderSource(b *strings.Builder, p palette) {
	if len(e.Context) == 0 {
		return
	}
	bar := p.paint(ansiGray, " │ ")
	for i, line := range e.Context {
		n := e.ContextStart + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", p.paint(ansiRed, "→ "), n, bar, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "        %s%s%s\n", p.paint(ansiGray, "│ "),
				strings.Repeat(" ", e.Location.Column-1), p.paint(ansiRed, "^"))
		}
	}
	b.WriteString("\n")
}

// jsonError is the wire shape of FormatJSON.
type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// FormatJSON returns the error as a JSON object for API responses.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"code":%q,"message":%q}`, e.Code, e.Message)
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes where word
// boundaries allow.
func wrapText(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Fprint writes err to w. Coded errors anywhere in the chain get the full
// rendering; anything else is printed on one line.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		io.WriteString(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", palette{plain: os.Getenv("NO_COLOR") != ""}.paint(ansiRed+ansiBold, "ERROR:"), err)
}

// PrintError prints err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
