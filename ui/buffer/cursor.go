package buffer

import "math"

// The cursor lives next to the buffer because it needs to know where lines end
// to move at all. The buffer is the city, and the Cursor is the car.

// A Cursor is a line and column in a Buffer. Its methods return a moved copy,
// so a Cursor can be kept around as a mark while another one moves.
type Cursor struct {
	buffer  Buffer
	line    int
	col     int
	wantCol int // Column to return to when moving through shorter lines
}

func NewCursor(in Buffer) Cursor {
	return Cursor{buffer: in}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = c.buffer.RunesInLine(c.line)
	} else if c.col > 0 {
		c.col--
	}
	c.wantCol = c.col
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line, and not at the last line...
	if c.col >= c.buffer.RunesInLine(c.line) && c.line < c.buffer.Lines()-1 {
		c.line, c.col = c.line+1, 0 // Go to beginning of line below
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line, c.col+1)
	}
	c.wantCol = c.col
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col, c.wantCol = 0, 0, 0 // Go to beginning
		return c
	}
	c.line, c.col = c.buffer.ClampLineCol(c.line-1, c.wantCol)
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == c.buffer.Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = c.buffer.ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
		c.wantCol = c.col
		return c
	}
	c.line, c.col = c.buffer.ClampLineCol(c.line+1, c.wantCol)
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided, clamped to
// the buffer.
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = c.buffer.ClampLineCol(line, col)
	c.wantCol = c.col
	return c
}

// Pos returns the byte offset of the cursor in the buffer.
func (c Cursor) Pos() int {
	return c.buffer.LineColToPos(c.line, c.col)
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}
