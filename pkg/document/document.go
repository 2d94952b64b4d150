// Package document provides the immutable, line-addressable view of a dllup
// source that every classification pass reads from.
//
// Line endings are normalised to "\n" on construction, so every offset handed
// out by the classifier refers to the normalised content, not the raw bytes.
package document

import (
	"bytes"
	"sort"
)

// Document is an immutable view of dllup source text.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the normalised document bytes.
	Content []byte

	// Lines contains metadata for each line in the document.
	Lines []Line
}

// Line holds metadata for a single line.
type Line struct {
	// Start is the byte index of the line start.
	Start int

	// NewlineStart is the byte index of the terminating "\n".
	// For the last line without a trailing newline it equals End.
	NewlineStart int

	// End is the byte index just after the newline (or end of content).
	End int
}

// New creates a Document from raw content, normalising "\r\n" and lone "\r"
// line breaks to "\n". The input slice is never retained.
func New(path string, raw []byte) *Document {
	content := Normalize(raw)
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// FromString is a convenience wrapper around New for in-memory sources.
func FromString(src string) *Document {
	return New("", []byte(src))
}

// Normalize returns a copy of raw with every line ending rewritten to "\n".
func Normalize(raw []byte) []byte {
	if bytes.IndexByte(raw, '\r') < 0 {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out
	}

	out := make([]byte, 0, len(raw))
	for idx := 0; idx < len(raw); idx++ {
		char := raw[idx]
		if char != '\r' {
			out = append(out, char)
			continue
		}
		out = append(out, '\n')
		if idx+1 < len(raw) && raw[idx+1] == '\n' {
			idx++
		}
	}
	return out
}

// BuildLines constructs line metadata from normalised content.
// A trailing newline does not open an extra empty line.
func BuildLines(content []byte) []Line {
	if len(content) == 0 {
		return []Line{}
	}

	var lines []Line
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			lines = append(lines, Line{
				Start:        lineStart,
				NewlineStart: idx,
				End:          idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart < len(content) {
		lines = append(lines, Line{
			Start:        lineStart,
			NewlineStart: len(content),
			End:          len(content),
		})
	}

	return lines
}

// Len returns the content length in bytes.
func (d *Document) Len() int {
	return len(d.Content)
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// Text returns the content between two offsets, clamped to the document.
func (d *Document) Text(start, end int) []byte {
	start = max(start, 0)
	end = min(end, len(d.Content))
	if start >= end {
		return nil
	}
	return d.Content[start:end]
}

// LineIndex returns the 0-based index of the line containing offset.
// Offsets at or past the end map to the last line.
func (d *Document) LineIndex(offset int) int {
	if len(d.Lines) == 0 || offset <= 0 {
		return 0
	}
	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].End > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}
	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - last.Start + 1
	}

	idx := d.LineIndex(offset)
	return idx + 1, offset - d.Lines[idx].Start + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.Lines) || col < 1 {
		return 0, false
	}

	info := d.Lines[line-1]
	offset := info.Start + col - 1
	if offset > info.End {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}
	info := d.Lines[line-1]
	return d.Content[info.Start:info.NewlineStart]
}

// FirstDifference returns the 0-based index of the first line whose content
// differs between d and other. It returns min(LineCount) when one document is
// a line-prefix of the other, and -1 when both are identical.
func (d *Document) FirstDifference(other *Document) int {
	if other == nil {
		return 0
	}
	if bytes.Equal(d.Content, other.Content) {
		return -1
	}

	limit := min(len(d.Lines), len(other.Lines))
	for idx := range limit {
		if !bytes.Equal(d.LineContent(idx+1), other.LineContent(idx+1)) {
			return idx
		}
		if d.Lines[idx].End-d.Lines[idx].NewlineStart != other.Lines[idx].End-other.Lines[idx].NewlineStart {
			return idx
		}
	}
	return limit
}
