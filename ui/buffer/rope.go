package buffer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// RopeBuffer is a Buffer backed by a rope, so edits in the middle of large
// documents do not copy the whole text.
type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node {
	return (*rope.Node)(b)
}

// slice is rope.Slice that tolerates empty ranges.
func (b *RopeBuffer) slice(start, end int) []byte {
	if end <= start {
		return nil
	}
	return b.node().Slice(start, end)
}

// count is rope.Count that tolerates empty ranges.
func (b *RopeBuffer) count(start, end int, sequence []byte) int {
	if end <= start {
		return 0
	}
	return b.node().Count(start, end, sequence)
}

// lineRange returns the byte range of line, excluding its delimiter. It
// panics if line is out of range.
func (b *RopeBuffer) lineRange(line int) (start, end int) {
	if line < 0 {
		panic(fmt.Sprintf("line %d out of range", line))
	}

	start, end = -1, -1
	if line == 0 {
		start = 0
	}

	var pos, cur int
	b.node().EachLeaf(func(n *rope.Node) bool {
		for _, c := range n.Value() { // Reference; not a copy.
			if c == '\n' {
				if cur == line {
					end = pos
					return true
				}
				cur++
				if cur == line {
					start = pos + 1
				}
			}
			pos++
		}
		return false
	})

	if start < 0 {
		panic(fmt.Sprintf("line %d out of range", line))
	}
	if end < 0 { // Last line has no delimiter
		end = pos
	}
	if end > start && b.slice(end-1, end)[0] == '\r' {
		end-- // CRLF
	}
	return start, end
}

// Line returns the contents of line without its delimiter.
func (b *RopeBuffer) Line(line int) []byte {
	start, end := b.lineRange(line)
	return b.slice(start, end)
}

func (b *RopeBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	start := b.LineColToPos(startLine, startCol)
	end := b.LineColToPos(endLine, endCol)
	return b.slice(start, end)
}

func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

func (b *RopeBuffer) Insert(line, col int, value []byte) {
	b.node().Insert(b.LineColToPos(line, col), value)
}

// Remove deletes [startLine:startCol, endLine:endCol). Removing up to column
// zero of a following line includes the delimiters in between.
func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start := b.LineColToPos(startLine, startCol)
	end := b.LineColToPos(endLine, endCol)
	if end > start {
		b.node().Remove(start, end)
	}
}

func (b *RopeBuffer) Count(line, col int, sequence []byte) int {
	start, _ := b.lineRange(line)
	return b.count(start, b.LineColToPos(line, col), sequence)
}

func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

func (b *RopeBuffer) Lines() int {
	return b.count(0, b.Len(), []byte{'\n'}) + 1
}

func (b *RopeBuffer) RunesInLine(line int) int {
	return utf8.RuneCount(b.Line(line))
}

func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if lines := b.Lines() - 1; line > lines {
		line = lines
	}

	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

func (b *RopeBuffer) LineColToPos(line, col int) int {
	start, end := b.lineRange(line)
	data := b.slice(start, end)

	var i int
	for ; col > 0 && i < len(data); col-- {
		// Respect Utf-8 codepoint boundaries
		_, size := utf8.DecodeRune(data[i:])
		i += size
	}
	return start + i
}

func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	if pos <= 0 {
		return 0, 0
	}
	if l := b.Len(); pos > l {
		pos = l
	}

	line := b.count(0, pos, []byte{'\n'})
	start, end := b.lineRange(line)
	if pos > end {
		pos = end // Inside a CRLF delimiter
	}
	return line, utf8.RuneCount(b.slice(start, pos))
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}
