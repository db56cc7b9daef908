// Package pos implements the Source Position Service: it maps a
// character index in an expression's source text to a line/column pair
// and renders the caret-annotated excerpts used by every ParserError in
// the grapheme parser.
package pos

import (
	"fmt"
	"strings"

	u "github.com/araddon/gou"
)

// maxExcerptWidth is the line length above which FormatError windows
// the excerpt around the error column instead of printing the whole line.
const maxExcerptWidth = 75

// ParserError is the single error type the parser returns to callers.
// Error() is the full multi-line report: message, location, excerpt,
// caret, and an optional suggestion.
type ParserError struct {
	Message    string
	Index      int
	Line       int // 1-based
	Column     int // 1-based
	Suggestion string
	Note       string
	report     string
}

func (e *ParserError) Error() string { return e.report }

// Locate returns the zero-based line number, the byte offset of that
// line's start, and the 1-based column of idx within it. idx is
// clamped to [0, len(source)].
func Locate(source string, idx int) (line, lineStart, column int) {
	idx = clamp(idx, len(source))
	for i := 0; i < idx; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	column = idx - lineStart + 1
	return
}

func clamp(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}

func lineText(source string, lineStart int) string {
	rest := source[lineStart:]
	if end := strings.IndexByte(rest, '\n'); end != -1 {
		return rest[:end]
	}
	return rest
}

// excerpt renders the line containing idx and a caret line under it,
// windowing long lines to maxExcerptWidth characters around the caret.
func excerpt(source string, idx int) string {
	_, lineStart, column := Locate(source, idx)
	text := lineText(source, lineStart)
	caretCol := column - 1

	if len(text) <= maxExcerptWidth {
		return text + "\n" + strings.Repeat(" ", caretCol) + "^"
	}

	half := maxExcerptWidth / 2
	start := caretCol - half
	prefixEllipsis, suffixEllipsis := "...", "..."
	if start < 0 {
		start = 0
		prefixEllipsis = ""
	}
	end := start + maxExcerptWidth
	if end >= len(text) {
		end = len(text)
		suffixEllipsis = ""
		start = end - maxExcerptWidth
		if start < 0 {
			start = 0
			prefixEllipsis = ""
		}
	}
	window := prefixEllipsis + text[start:end] + suffixEllipsis
	caretInWindow := len(prefixEllipsis) + (caretCol - start)
	return window + "\n" + strings.Repeat(" ", caretInWindow) + "^"
}

// FormatError renders the full multi-line error report for index into
// source. index == len(source) is valid and places the caret just past
// end-of-input, used for "unclosed ..." diagnostics.
func FormatError(source string, index int, message, suggestion string) string {
	index = clamp(index, len(source))
	line, _, _ := Locate(source, index)
	var b strings.Builder
	fmt.Fprintf(&b, "%s at line %d, index %d:\n", message, line+1, index)
	b.WriteString(excerpt(source, index))
	if suggestion != "" {
		b.WriteByte('\n')
		b.WriteString(suggestion)
	}
	return b.String()
}

// NewErrorAt builds a ParserError for index into source, with an
// optional suggestion appended as a trailing line.
func NewErrorAt(source string, index int, message, suggestion string) *ParserError {
	index = clamp(index, len(source))
	line, _, column := Locate(source, index)
	u.Warnf("parse error at index %d: %s", index, message)
	return &ParserError{
		Message:    message,
		Index:      index,
		Line:       line + 1,
		Column:     column,
		Suggestion: suggestion,
		report:     FormatError(source, index, message, suggestion),
	}
}

// NewError builds a ParserError pointing at end-of-input, for
// diagnostics like unterminated strings or unclosed template
// specializations where the most useful caret position is just past the
// last character.
func NewError(source, message string) *ParserError {
	return NewErrorAt(source, len(source), message, "")
}

// NewConfigError builds a ParserError with no source position: used for
// configuration problems (an invalid Options value) that are caught
// before any source text exists to point a caret at. message should
// carry its own "Configuration: ..." prefix so callers type-switching
// on *ParserError can still distinguish this class from a parse error.
func NewConfigError(message string) *ParserError {
	u.Warnf("configuration error: %s", message)
	return &ParserError{Message: message, report: message}
}

// WithNote attaches a "Note: ..." clause, appended to the report after
// the suggestion, referencing an earlier related token by index (the opener
// that failed to close, the colon that demanded a type, and so on).
func (e *ParserError) WithNote(source string, noteIndex int, note string) *ParserError {
	line, _, _ := Locate(source, noteIndex)
	e.Note = fmt.Sprintf("Note: %s (at line %d, index %d)", note, line+1, noteIndex)
	e.report = e.report + "\n" + e.Note
	return e
}
