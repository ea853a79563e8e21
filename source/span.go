package source

import "fmt"

// Span is a half-open byte range [Start, End) into a Buffer.
// The zero Span belongs to no buffer and has no text.
type Span struct {
	buf   *Buffer
	Start int
	End   int
}

func (s Span) Buffer() *Buffer {
	return s.buf
}

func (s Span) Text() string {
	if s.buf == nil {
		return ""
	}
	return s.buf.text[s.Start:s.End]
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

func (s Span) IsValid() bool {
	return s.buf != nil
}

// Union returns the smallest span covering both s and other.
// Both spans must belong to the same buffer.
func (s Span) Union(other Span) Span {
	if s.buf == nil {
		return other
	}
	if other.buf == nil {
		return s
	}
	if s.buf != other.buf {
		panic("source: union of spans from different buffers")
	}
	u := s
	if other.Start < u.Start {
		u.Start = other.Start
	}
	if other.End > u.End {
		u.End = other.End
	}
	return u
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.buf == other.buf && s.Start <= other.Start && other.End <= s.End
}

func (s Span) StartPos() Position {
	if s.buf == nil {
		return Position{}
	}
	return s.buf.Position(s.Start)
}

func (s Span) EndPos() Position {
	if s.buf == nil {
		return Position{}
	}
	return s.buf.Position(s.End)
}

func (s Span) String() string {
	if s.buf == nil {
		return fmt.Sprintf("%d..%d", s.Start, s.End)
	}
	return s.StartPos().String()
}

// Range formats the span as "file:line:col-line:col".
func (s Span) Range() string {
	start, end := s.StartPos(), s.EndPos()
	return fmt.Sprintf("%s-%d:%d", start, end.Line, end.Column)
}
