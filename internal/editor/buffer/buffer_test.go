package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chordedit/chord/internal/input/action"
)

func TestInsertSingleLine(t *testing.T) {
	h := NewHandle("test")
	h.Insert("hello")
	if h.Text() != "hello" {
		t.Errorf("Text = %q, want hello", h.Text())
	}
	if c := h.Cursor(); c != (Position{Line: 0, Col: 5}) {
		t.Errorf("Cursor = %+v, want 0:5", c)
	}
	if !h.Modified() {
		t.Error("insert should mark the buffer modified")
	}
}

func TestInsertMultiLine(t *testing.T) {
	h := NewHandleFromString("test", "abcd")
	h.SetCursor(Position{Line: 0, Col: 2})

	h.Insert("1\n2\n3")
	if h.Text() != "ab1\n2\n3cd" {
		t.Errorf("Text = %q", h.Text())
	}
	if c := h.Cursor(); c != (Position{Line: 2, Col: 1}) {
		t.Errorf("Cursor = %+v, want 2:1", c)
	}
}

func TestInsertMiddle(t *testing.T) {
	h := NewHandleFromString("test", "held")
	h.SetCursor(Position{Line: 0, Col: 2})
	h.Insert("llo wor")
	if h.Text() != "hello world" {
		t.Errorf("Text = %q, want hello world", h.Text())
	}
}

func TestOpenLineAfter(t *testing.T) {
	h := NewHandleFromString("test", "hello world")
	h.SetCursor(Position{Line: 0, Col: 5})

	h.OpenLineAfter()
	if h.Text() != "hello\n world" {
		t.Errorf("Text = %q", h.Text())
	}
	// Cursor stays put.
	if c := h.Cursor(); c != (Position{Line: 0, Col: 5}) {
		t.Errorf("Cursor = %+v, want 0:5", c)
	}
}

func TestDeleteChar(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cursor  Position
		dir     action.Direction
		want    string
		wantCur Position
	}{
		{"backspace", "abc", Position{0, 2}, action.DirBackward, "ac", Position{0, 1}},
		{"forward", "abc", Position{0, 1}, action.DirForward, "ac", Position{0, 1}},
		{"backspace joins lines", "ab\ncd", Position{1, 0}, action.DirBackward, "abcd", Position{0, 2}},
		{"forward joins lines", "ab\ncd", Position{0, 2}, action.DirForward, "abcd", Position{0, 2}},
		{"backspace at start is a no-op", "ab", Position{0, 0}, action.DirBackward, "ab", Position{0, 0}},
		{"forward at end is a no-op", "ab", Position{0, 2}, action.DirForward, "ab", Position{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandleFromString("test", tt.content)
			h.SetCursor(tt.cursor)
			if err := h.Delete(action.UnitChar, tt.dir); err != nil {
				t.Fatalf("Delete error: %v", err)
			}
			if h.Text() != tt.want {
				t.Errorf("Text = %q, want %q", h.Text(), tt.want)
			}
			if h.Cursor() != tt.wantCur {
				t.Errorf("Cursor = %+v, want %+v", h.Cursor(), tt.wantCur)
			}
		})
	}
}

func TestDeleteWord(t *testing.T) {
	h := NewHandleFromString("test", "one two three")
	h.SetCursor(Position{Line: 0, Col: 7})

	if err := h.Delete(action.UnitWord, action.DirBackward); err != nil {
		t.Fatal(err)
	}
	if h.Text() != "one  three" {
		t.Errorf("after backward: %q", h.Text())
	}

	if err := h.Delete(action.UnitWord, action.DirForward); err != nil {
		t.Fatal(err)
	}
	if h.Text() != "one " {
		t.Errorf("after forward: %q", h.Text())
	}
}

func TestDeleteLine(t *testing.T) {
	h := NewHandleFromString("test", "a\nb\nc")
	h.SetCursor(Position{Line: 1, Col: 0})
	if err := h.Delete(action.UnitLine, action.DirNone); err != nil {
		t.Fatal(err)
	}
	if h.Text() != "a\nc" {
		t.Errorf("Text = %q", h.Text())
	}

	// Deleting the only line empties it instead of removing it.
	h = NewHandleFromString("test", "solo")
	if err := h.Delete(action.UnitLine, action.DirNone); err != nil {
		t.Fatal(err)
	}
	if h.Text() != "" || h.LineCount() != 1 {
		t.Errorf("Text = %q, LineCount = %d", h.Text(), h.LineCount())
	}
}

func TestDeleteToLineEnd(t *testing.T) {
	h := NewHandleFromString("test", "hello world")
	h.SetCursor(Position{Line: 0, Col: 5})
	if err := h.Delete(action.UnitLineEnd, action.DirForward); err != nil {
		t.Fatal(err)
	}
	if h.Text() != "hello" {
		t.Errorf("Text = %q", h.Text())
	}
}

func TestMoveChar(t *testing.T) {
	h := NewHandleFromString("test", "ab\ncd")

	if err := h.Move(action.UnitChar, action.DirForward, 3); err != nil {
		t.Fatal(err)
	}
	// Forward across the line break.
	if c := h.Cursor(); c != (Position{Line: 1, Col: 0}) {
		t.Errorf("Cursor = %+v, want 1:0", c)
	}

	if err := h.Move(action.UnitChar, action.DirBackward, 1); err != nil {
		t.Fatal(err)
	}
	if c := h.Cursor(); c != (Position{Line: 0, Col: 2}) {
		t.Errorf("Cursor = %+v, want 0:2", c)
	}
}

func TestMoveLineClampsColumn(t *testing.T) {
	h := NewHandleFromString("test", "long line\nab\nanother long line")
	h.SetCursor(Position{Line: 0, Col: 8})

	if err := h.Move(action.UnitLine, action.DirDown, 1); err != nil {
		t.Fatal(err)
	}
	if c := h.Cursor(); c != (Position{Line: 1, Col: 2}) {
		t.Errorf("Cursor = %+v, want clamped to 1:2", c)
	}
}

func TestMoveLineEndAndBuffer(t *testing.T) {
	h := NewHandleFromString("test", "hello\nworld!")

	if err := h.Move(action.UnitLineEnd, action.DirForward, 1); err != nil {
		t.Fatal(err)
	}
	if c := h.Cursor(); c != (Position{Line: 0, Col: 5}) {
		t.Errorf("line end = %+v", c)
	}

	if err := h.Move(action.UnitBuffer, action.DirForward, 1); err != nil {
		t.Fatal(err)
	}
	if c := h.Cursor(); c != (Position{Line: 1, Col: 6}) {
		t.Errorf("buffer end = %+v", c)
	}

	if err := h.Move(action.UnitBuffer, action.DirBackward, 1); err != nil {
		t.Fatal(err)
	}
	if c := h.Cursor(); c != (Position{}) {
		t.Errorf("buffer start = %+v", c)
	}
}

func TestMovePage(t *testing.T) {
	content := ""
	for i := 0; i < 50; i++ {
		content += "line\n"
	}
	h := NewHandleFromString("test", content)
	h.SetPageLines(10)

	if err := h.Move(action.UnitPage, action.DirDown, 1); err != nil {
		t.Fatal(err)
	}
	if c := h.Cursor(); c.Line != 10 {
		t.Errorf("Line = %d, want 10", c.Line)
	}

	if err := h.Move(action.UnitPage, action.DirUp, 2); err != nil {
		t.Fatal(err)
	}
	// Clamped at the top.
	if c := h.Cursor(); c.Line != 0 {
		t.Errorf("Line = %d, want 0", c.Line)
	}
}

func TestSearchForward(t *testing.T) {
	h := NewHandleFromString("test", "one two three\ntwo birds\nthe end two")

	tests := []struct {
		name  string
		query string
		from  Position
		want  Position
		found bool
	}{
		{"first line", "two", Position{}, Position{Line: 0, Col: 4}, true},
		{"at or after from", "two", Position{Line: 0, Col: 4}, Position{Line: 0, Col: 4}, true},
		{"past first match", "two", Position{Line: 0, Col: 5}, Position{Line: 1, Col: 0}, true},
		{"later line", "end", Position{}, Position{Line: 2, Col: 4}, true},
		{"from beyond all matches", "two", Position{Line: 2, Col: 9}, Position{}, false},
		{"no such text", "zebra", Position{}, Position{}, false},
		{"empty query", "", Position{}, Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.SearchForward(tt.query, tt.from)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("pos = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSearchForwardCountsRunes(t *testing.T) {
	h := NewHandleFromString("test", "héllo wörld")
	pos, ok := h.SearchForward("wörld", Position{})
	if !ok || pos != (Position{Line: 0, Col: 6}) {
		t.Errorf("pos = %+v found=%v, want 0:6", pos, ok)
	}
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	h := NewHandleFromString("note.txt", "saved content")
	if err := h.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save without path = %v, want ErrNoPath", err)
	}

	h.SetPath(path)
	if err := h.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if h.Modified() {
		t.Error("Save should clear the modified flag")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "saved content" {
		t.Errorf("file content = %q", data)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if reopened.Text() != "saved content" {
		t.Errorf("reopened Text = %q", reopened.Text())
	}

	// Opening a missing file yields an empty buffer bound to the path.
	missing, err := Open(filepath.Join(dir, "new.txt"))
	if err != nil {
		t.Fatalf("Open missing error: %v", err)
	}
	if missing.Text() != "" || missing.Path() == "" {
		t.Errorf("missing = %q path=%q", missing.Text(), missing.Path())
	}
}
