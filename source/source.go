// Package source holds the immutable text of a compilation unit and the
// spans that point into it.
//
// A Buffer is created once per file and never modified afterwards, so
// spans can be copied freely and sliced on demand without re-reading text.
package source

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Buffer is the read-only text of one source file.
type Buffer struct {
	name  string
	text  string
	lines []int
}

func NewBuffer(name, text string) *Buffer {
	b := &Buffer{name: name, text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
	return b
}

func (b *Buffer) Name() string {
	return b.name
}

func (b *Buffer) Text() string {
	return b.text
}

func (b *Buffer) Len() int {
	return len(b.text)
}

// LineCount returns the number of lines, counting a trailing partial line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of the 1-based line n without its line terminator.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	start := b.lines[n-1]
	end := len(b.text)
	if n < len(b.lines) {
		end = b.lines[n] - 1
	}
	if end > start && b.text[end-1] == '\r' {
		end--
	}
	return b.text[start:end]
}

// Position converts a byte offset into a line/column position.
// Offsets past the end clamp to the end of the buffer.
func (b *Buffer) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	line := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i] > offset
	})
	return Position{
		File:   b.name,
		Offset: offset,
		Line:   line,
		Column: offset - b.lines[line-1] + 1,
	}
}

// Span returns the span [start, end) of b.
func (b *Buffer) Span(start, end int) Span {
	if start < 0 || end > len(b.text) || start > end {
		panic(fmt.Sprintf("source: span [%d, %d) out of range for %q (len %d)", start, end, b.name, len(b.text)))
	}
	return Span{buf: b, Start: start, End: end}
}
