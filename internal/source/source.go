// Package source owns the compiler's view of input files: stable IDs,
// raw byte content, and the line-offset index used to turn a byte range
// into a human-readable (line, column) pair.
package source

import (
	"os"
	"sort"

	"github.com/pkg/errors"
)

// ID is a dense index into a Manager's file list, starting at 0. The
// all-ones value (invalidID) is never issued by Load/LoadFromString; it
// is reserved for InvalidSpan.
type ID uint32

// invalidID marks a Span that does not refer to real source text.
const invalidID ID = ^ID(0)

// File holds one loaded source's path, raw bytes, and a precomputed
// line-start offset table (index i is the byte offset of line i+1;
// entry 0 is always 0).
type File struct {
	Path        string
	Content     []byte
	lineOffsets []int
}

// Manager owns a growable sequence of source Files, indexed by ID.
type Manager struct {
	files []*File
}

// NewManager returns an empty source manager.
func NewManager() *Manager {
	return &Manager{}
}

// Load reads path from disk and registers it, returning a stable ID.
func (m *Manager) Load(path string) (ID, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return invalidID, errors.Wrapf(err, "source: load %q", path)
	}
	return m.add(path, content), nil
}

// LoadFromString registers in-memory content under a display name, as if
// it had been read from a file called name.
func (m *Manager) LoadFromString(name string, content string) ID {
	return m.add(name, []byte(content))
}

func (m *Manager) add(path string, content []byte) ID {
	f := &File{Path: path, Content: content, lineOffsets: computeLineOffsets(content)}
	m.files = append(m.files, f)
	return ID(len(m.files) - 1)
}

func computeLineOffsets(content []byte) []int {
	offsets := make([]int, 1, 16)
	offsets[0] = 0
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// Get returns the File registered under id, or nil if id is unknown.
func (m *Manager) Get(id ID) *File {
	if id == invalidID || int(id) >= len(m.files) {
		return nil
	}
	return m.files[id]
}

// GetPath returns the display path for id, or "" if id is unknown.
func (m *Manager) GetPath(id ID) string {
	f := m.Get(id)
	if f == nil {
		return ""
	}
	return f.Path
}

// GetText returns the raw bytes covered by span. An invalid span or an
// out-of-range offset yields an empty slice rather than an error.
func (m *Manager) GetText(span Span) []byte {
	f := m.Get(span.SourceID)
	if f == nil {
		return nil
	}
	start, end := span.Start, span.End
	if start < 0 || end > len(f.Content) || start > end {
		return nil
	}
	return f.Content[start:end]
}

// LineCol is a 1-indexed (line, column) source position.
type LineCol struct {
	Line   int
	Column int
}

// GetLineCol converts the start offset of span into a 1-indexed line and
// column, via an upper-bound search over the file's line-start table.
func (m *Manager) GetLineCol(span Span) LineCol {
	f := m.Get(span.SourceID)
	if f == nil {
		return LineCol{}
	}
	return f.lineColAt(span.Start)
}

// LineColAtOffset is like GetLineCol but for a bare byte offset within id.
func (m *Manager) LineColAtOffset(id ID, offset int) LineCol {
	f := m.Get(id)
	if f == nil {
		return LineCol{}
	}
	return f.lineColAt(offset)
}

func (f *File) lineColAt(offset int) LineCol {
	if offset < 0 {
		offset = 0
	}
	// Largest line index whose start offset is <= offset.
	line := sort.Search(len(f.lineOffsets), func(i int) bool {
		return f.lineOffsets[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return LineCol{Line: line + 1, Column: offset - f.lineOffsets[line] + 1}
}

// LineText returns the raw content of a single 1-indexed line, without its
// trailing newline. Returns "" if line is out of range.
func (f *File) LineText(line int) string {
	if f == nil || line < 1 || line > len(f.lineOffsets) {
		return ""
	}
	start := f.lineOffsets[line-1]
	end := len(f.Content)
	if line < len(f.lineOffsets) {
		end = f.lineOffsets[line] - 1 // exclude the '\n'
	}
	if end < start {
		end = start
	}
	// Trim a trailing '\r' left over from CRLF input.
	for end > start && f.Content[end-1] == '\r' {
		end--
	}
	return string(f.Content[start:end])
}
