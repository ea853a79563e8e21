package source

import "testing"

func TestBufferPosition(t *testing.T) {
	b := NewBuffer("test.cae", "x = 5;\ny = 6;\n\nz")

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{6, 1, 7},
		{7, 2, 1},
		{11, 2, 5},
		{14, 3, 1},
		{15, 4, 1},
		{16, 4, 2},
		{100, 4, 2},
	}

	for _, tt := range tests {
		pos := b.Position(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
		if pos.File != "test.cae" {
			t.Errorf("File = %q, want %q", pos.File, "test.cae")
		}
	}
}

func TestBufferLine(t *testing.T) {
	b := NewBuffer("", "first\r\nsecond\nthird")

	if b.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", b.LineCount())
	}
	for i, want := range []string{"first", "second", "third"} {
		if got := b.Line(i + 1); got != want {
			t.Errorf("Line(%d) = %q, want %q", i+1, got, want)
		}
	}
	if got := b.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
}

func TestSpanText(t *testing.T) {
	b := NewBuffer("a", "let x = 1; in x")
	s := b.Span(4, 5)
	if s.Text() != "x" {
		t.Errorf("Text = %q, want %q", s.Text(), "x")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if s.Buffer() != b {
		t.Error("Buffer does not round-trip")
	}
}

func TestSpanUnion(t *testing.T) {
	b := NewBuffer("a", "f a b |> g")
	u := b.Span(0, 1).Union(b.Span(9, 10))
	if u.Text() != "f a b |> g" {
		t.Errorf("Union text = %q", u.Text())
	}
	if !u.Contains(b.Span(2, 3)) {
		t.Error("union should contain inner span")
	}
	if b.Span(2, 3).Contains(u) {
		t.Error("inner span should not contain union")
	}

	var zero Span
	if got := zero.Union(b.Span(2, 3)); got != b.Span(2, 3) {
		t.Errorf("zero.Union = %v", got)
	}
}

func TestSpanUnionDifferentBuffersPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewBuffer("a", "x").Span(0, 1).Union(NewBuffer("b", "y").Span(0, 1))
}

func TestSpanString(t *testing.T) {
	b := NewBuffer("main.cae", "x = 5;\ny = 6;")
	s := b.Span(7, 8)
	if s.String() != "main.cae:2:1" {
		t.Errorf("String = %q", s.String())
	}
	if s.Range() != "main.cae:2:1-2:2" {
		t.Errorf("Range = %q", s.Range())
	}
}
