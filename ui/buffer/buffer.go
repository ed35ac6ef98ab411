package buffer

import (
	"io"
)

// A Buffer is a wrapper around any buffer data structure like ropes or a gap
// buffer that can be used for text editors. Positions are given as lines and
// columns: lines start from zero, columns count runes from the start of the
// line. A column equal to RunesInLine(line) points at the line delimiter.
//
// Any line out of range is a panic! If you are unsure your position may be out
// of bounds, use ClampLineCol() or compare with Lines().
type Buffer interface {
	// Line returns the contents of line without its delimiter ("\n" or
	// "\r\n"). The data may or may not be a copy: do not write to it.
	Line(line int) []byte

	// Slice returns the bytes from startLine, startCol up to, but excluding,
	// endLine, endCol.
	Slice(startLine, startCol, endLine, endCol int) []byte

	// Bytes returns all of the bytes in the buffer. This is very likely to
	// copy everything. Use sparingly.
	Bytes() []byte

	// Insert copies value into the buffer at line, col.
	Insert(line, col int, value []byte)

	// Remove deletes the text from startLine, startCol up to, but excluding,
	// endLine, endCol.
	Remove(startLine, startCol, endLine, endCol int)

	// Count returns the number of occurrences of sequence within line, before
	// column col.
	Count(line, col int, sequence []byte) int

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. An empty buffer has
	// one (empty) line.
	Lines() int

	// RunesInLine returns the number of runes in line, excluding the line
	// delimiter.
	RunesInLine(line int) int

	// ClampLineCol clamps line to the lines of the buffer, then col to
	// [0, RunesInLine(line)].
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the byte offset of line, col. col is clamped to the
	// end of the line.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset into a line and column. The offset
	// is clamped to the buffer.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
