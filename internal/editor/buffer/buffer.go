package buffer

import (
	"errors"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/chordedit/chord/internal/input/action"
)

// Errors returned by buffer operations.
var (
	ErrNoPath      = errors.New("buffer has no file path")
	ErrUnknownUnit = errors.New("unknown motion unit")
)

// ID uniquely identifies a buffer for the lifetime of the process. Panes
// refer to buffers by ID; two panes holding the same ID share one buffer.
type ID string

// NewID returns a fresh buffer ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Position is a cursor position. Line and Col are 0-indexed; Col counts
// runes, not bytes.
type Position struct {
	Line int
	Col  int
}

// Region is a selection between two positions. Start is inclusive, End
// exclusive; Start never sorts after End.
type Region struct {
	Start Position
	End   Position
}

// Handle is one open buffer: text content, cursor, optional selection and
// a per-pane-independent scroll offset kept by the pane, not here.
// All methods are safe for concurrent use.
type Handle struct {
	mu       sync.RWMutex
	id       ID
	name     string
	path     string
	lines    []string
	cursor   Position
	sel      *Region
	modified bool

	// pageLines is the motion distance of a page unit. The frontend
	// updates it when pane geometry changes.
	pageLines int
}

// NewHandle creates an empty buffer with the given display name.
func NewHandle(name string) *Handle {
	return &Handle{
		id:        NewID(),
		name:      name,
		lines:     []string{""},
		pageLines: 20,
	}
}

// NewHandleFromString creates a buffer with initial content.
func NewHandleFromString(name, content string) *Handle {
	h := NewHandle(name)
	h.lines = splitLines(content)
	return h
}

// Open reads a file into a new buffer. A missing file yields an empty
// buffer bound to the path, so saving creates it.
func Open(path string) (*Handle, error) {
	h := NewHandle(baseName(path))
	h.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	h.lines = splitLines(string(data))
	return h, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ID returns the buffer's identifier.
func (h *Handle) ID() ID {
	return h.id
}

// Name returns the display name.
func (h *Handle) Name() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.name
}

// Path returns the bound file path, or empty string for a scratch buffer.
func (h *Handle) Path() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.path
}

// SetPath binds the buffer to a file path and updates the display name.
func (h *Handle) SetPath(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.path = path
	h.name = baseName(path)
}

// Modified reports whether the buffer has unsaved changes.
func (h *Handle) Modified() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.modified
}

// Text returns the full buffer content.
func (h *Handle) Text() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return strings.Join(h.lines, "\n")
}

// Line returns the text of line i, or empty string if out of range.
func (h *Handle) Line(i int) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= len(h.lines) {
		return ""
	}
	return h.lines[i]
}

// LineCount returns the number of lines. An empty buffer has one line.
func (h *Handle) LineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.lines)
}

// Cursor returns the current cursor position.
func (h *Handle) Cursor() Position {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor
}

// SetCursor moves the cursor, clamping it into the buffer.
func (h *Handle) SetCursor(pos Position) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursor = h.clamp(pos)
}

// Selection returns the active selection, or nil.
func (h *Handle) Selection() *Region {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.sel == nil {
		return nil
	}
	r := *h.sel
	return &r
}

// ClearSelection drops the active selection.
func (h *Handle) ClearSelection() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sel = nil
}

// SetPageLines sets the page motion distance. Values below 1 are ignored.
func (h *Handle) SetPageLines(n int) {
	if n < 1 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pageLines = n
}

// clamp forces pos into the buffer (must hold lock).
func (h *Handle) clamp(pos Position) Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(h.lines) {
		pos.Line = len(h.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := len([]rune(h.lines[pos.Line])); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// Insert inserts text at the cursor and advances the cursor past it.
// Newlines in text split the current line.
func (h *Handle) Insert(text string) {
	if text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cursor = h.clamp(h.cursor)
	line := []rune(h.lines[h.cursor.Line])
	before, after := string(line[:h.cursor.Col]), string(line[h.cursor.Col:])

	parts := splitLines(text)
	if len(parts) == 1 {
		h.lines[h.cursor.Line] = before + parts[0] + after
		h.cursor.Col += len([]rune(parts[0]))
	} else {
		inserted := make([]string, len(parts))
		copy(inserted, parts)
		inserted[0] = before + inserted[0]
		last := len(inserted) - 1
		endCol := len([]rune(inserted[last]))
		inserted[last] += after

		h.lines = append(h.lines[:h.cursor.Line], append(inserted, h.lines[h.cursor.Line+1:]...)...)
		h.cursor.Line += last
		h.cursor.Col = endCol
	}
	h.modified = true
	h.sel = nil
}

// Append adds text at the end of the buffer without moving the cursor.
// Used by background producers streaming output into a buffer.
func (h *Handle) Append(text string) {
	if text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	parts := splitLines(text)
	last := len(h.lines) - 1
	h.lines[last] += parts[0]
	h.lines = append(h.lines, parts[1:]...)
	h.modified = true
}

// OpenLineAfter splits the current line at the cursor without moving the
// cursor, leaving the remainder on a fresh line below.
func (h *Handle) OpenLineAfter() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cursor = h.clamp(h.cursor)
	line := []rune(h.lines[h.cursor.Line])
	before, after := string(line[:h.cursor.Col]), string(line[h.cursor.Col:])

	h.lines = append(h.lines[:h.cursor.Line], append([]string{before, after}, h.lines[h.cursor.Line+1:]...)...)
	h.modified = true
}

// Delete removes text relative to the cursor. UnitChar backward is
// backspace, joining lines at column zero; forward joins at end of line.
// UnitWord deletes to the next word boundary, UnitLine the whole line.
func (h *Handle) Delete(unit action.Unit, dir action.Direction) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cursor = h.clamp(h.cursor)
	switch unit {
	case action.UnitChar, action.UnitNone:
		h.deleteChar(dir)
	case action.UnitWord:
		h.deleteWord(dir)
	case action.UnitLine:
		h.deleteLine()
	case action.UnitLineEnd:
		line := []rune(h.lines[h.cursor.Line])
		h.lines[h.cursor.Line] = string(line[:h.cursor.Col])
	default:
		return ErrUnknownUnit
	}
	h.modified = true
	h.sel = nil
	return nil
}

func (h *Handle) deleteChar(dir action.Direction) {
	line := []rune(h.lines[h.cursor.Line])
	if dir == action.DirForward {
		if h.cursor.Col < len(line) {
			h.lines[h.cursor.Line] = string(line[:h.cursor.Col]) + string(line[h.cursor.Col+1:])
		} else if h.cursor.Line+1 < len(h.lines) {
			h.joinWithNext()
		}
		return
	}
	if h.cursor.Col > 0 {
		h.lines[h.cursor.Line] = string(line[:h.cursor.Col-1]) + string(line[h.cursor.Col:])
		h.cursor.Col--
	} else if h.cursor.Line > 0 {
		h.cursor.Line--
		h.cursor.Col = len([]rune(h.lines[h.cursor.Line]))
		h.joinWithNext()
	}
}

// joinWithNext appends the line after the cursor line (must hold lock).
func (h *Handle) joinWithNext() {
	i := h.cursor.Line
	h.lines[i] += h.lines[i+1]
	h.lines = append(h.lines[:i+1], h.lines[i+2:]...)
}

func (h *Handle) deleteWord(dir action.Direction) {
	line := []rune(h.lines[h.cursor.Line])
	if dir == action.DirForward {
		end := nextWordBoundary(line, h.cursor.Col)
		h.lines[h.cursor.Line] = string(line[:h.cursor.Col]) + string(line[end:])
		return
	}
	start := prevWordBoundary(line, h.cursor.Col)
	h.lines[h.cursor.Line] = string(line[:start]) + string(line[h.cursor.Col:])
	h.cursor.Col = start
}

func (h *Handle) deleteLine() {
	if len(h.lines) == 1 {
		h.lines[0] = ""
		h.cursor.Col = 0
		return
	}
	i := h.cursor.Line
	h.lines = append(h.lines[:i], h.lines[i+1:]...)
	h.cursor = h.clamp(Position{Line: i})
}

// Move moves the cursor by count units in the given direction.
func (h *Handle) Move(unit action.Unit, dir action.Direction, count int) error {
	if count < 1 {
		count = 1
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cursor = h.clamp(h.cursor)
	for i := 0; i < count; i++ {
		switch unit {
		case action.UnitChar, action.UnitNone:
			h.moveChar(dir)
		case action.UnitWord:
			h.moveWord(dir)
		case action.UnitLine:
			h.moveLine(dir)
		case action.UnitLineEnd:
			if dir == action.DirBackward {
				h.cursor.Col = 0
			} else {
				h.cursor.Col = len([]rune(h.lines[h.cursor.Line]))
			}
		case action.UnitPage:
			h.moveLines(dir, h.pageLines)
		case action.UnitBuffer:
			if dir == action.DirBackward {
				h.cursor = Position{}
			} else {
				h.cursor.Line = len(h.lines) - 1
				h.cursor.Col = len([]rune(h.lines[h.cursor.Line]))
			}
		default:
			return ErrUnknownUnit
		}
	}
	return nil
}

func (h *Handle) moveChar(dir action.Direction) {
	line := []rune(h.lines[h.cursor.Line])
	switch dir {
	case action.DirForward:
		if h.cursor.Col < len(line) {
			h.cursor.Col++
		} else if h.cursor.Line+1 < len(h.lines) {
			h.cursor.Line++
			h.cursor.Col = 0
		}
	case action.DirBackward:
		if h.cursor.Col > 0 {
			h.cursor.Col--
		} else if h.cursor.Line > 0 {
			h.cursor.Line--
			h.cursor.Col = len([]rune(h.lines[h.cursor.Line]))
		}
	case action.DirUp:
		h.moveLines(action.DirUp, 1)
	case action.DirDown:
		h.moveLines(action.DirDown, 1)
	}
}

func (h *Handle) moveWord(dir action.Direction) {
	line := []rune(h.lines[h.cursor.Line])
	if dir == action.DirForward {
		if h.cursor.Col >= len(line) && h.cursor.Line+1 < len(h.lines) {
			h.cursor.Line++
			h.cursor.Col = 0
			return
		}
		h.cursor.Col = nextWordBoundary(line, h.cursor.Col)
		return
	}
	if h.cursor.Col == 0 && h.cursor.Line > 0 {
		h.cursor.Line--
		h.cursor.Col = len([]rune(h.lines[h.cursor.Line]))
		return
	}
	h.cursor.Col = prevWordBoundary(line, h.cursor.Col)
}

func (h *Handle) moveLine(dir action.Direction) {
	switch dir {
	case action.DirUp, action.DirBackward:
		h.moveLines(action.DirUp, 1)
	case action.DirDown, action.DirForward:
		h.moveLines(action.DirDown, 1)
	}
}

// moveLines moves n lines up or down, clamping the column to the target
// line (must hold lock).
func (h *Handle) moveLines(dir action.Direction, n int) {
	switch dir {
	case action.DirUp, action.DirBackward:
		h.cursor.Line -= n
	case action.DirDown, action.DirForward:
		h.cursor.Line += n
	}
	h.cursor = h.clamp(h.cursor)
}

// nextWordBoundary returns the offset just past the word at or after col.
func nextWordBoundary(line []rune, col int) int {
	i := col
	for i < len(line) && !isWordRune(line[i]) {
		i++
	}
	for i < len(line) && isWordRune(line[i]) {
		i++
	}
	return i
}

// prevWordBoundary returns the offset of the start of the word before col.
func prevWordBoundary(line []rune, col int) int {
	i := col
	for i > 0 && !isWordRune(line[i-1]) {
		i--
	}
	for i > 0 && isWordRune(line[i-1]) {
		i--
	}
	return i
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// SearchForward returns the position of the first occurrence of query at
// or after from. Columns count runes, like the cursor. The search does
// not wrap past the end of the buffer.
func (h *Handle) SearchForward(query string, from Position) (Position, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if query == "" {
		return Position{}, false
	}
	for i := max(from.Line, 0); i < len(h.lines); i++ {
		runes := []rune(h.lines[i])
		start := 0
		if i == from.Line {
			start = from.Col
		}
		if start < 0 || start > len(runes) {
			continue
		}
		tail := string(runes[start:])
		off := strings.Index(tail, query)
		if off < 0 {
			continue
		}
		return Position{
			Line: i,
			Col:  start + utf8.RuneCountInString(tail[:off]),
		}, true
	}
	return Position{}, false
}

// Save writes the buffer to its bound path and clears the modified flag.
func (h *Handle) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(h.path, []byte(strings.Join(h.lines, "\n")), 0o644); err != nil {
		return err
	}
	h.modified = false
	return nil
}
