package buffer

import "testing"

func TestRopePosToLineCol(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("line0\nline1\n\nline3\n"))
	//line0
	//line1
	//
	//line3
	//

	startLine, startCol := buf.PosToLineCol(0)
	if startLine != 0 || startCol != 0 {
		t.Errorf("Expected 0,0 got %v,%v", startLine, startCol)
	}

	line1Pos := 11 // Byte index of the delim separating line1 and line 2
	line, col := buf.PosToLineCol(line1Pos)
	if line != 1 || col != 5 {
		t.Errorf("Expected 1,5 got %v,%v", line, col)
	}

	line, col = buf.PosToLineCol(buf.Len())
	if line != 4 || col != 0 {
		t.Errorf("Expected end of buffer at 4,0 got %v,%v", line, col)
	}
}

func TestRopeHangulColumns(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("몰?\n모올루"))

	if pos := buf.LineColToPos(1, 2); pos != len("몰?\n모올") {
		t.Errorf("Expected byte offset %v, got %v", len("몰?\n모올"), pos)
	}

	line, col := buf.PosToLineCol(len("몰?\n모올"))
	if line != 1 || col != 2 {
		t.Errorf("Expected 1,2 got %v,%v", line, col)
	}

	if runes := buf.RunesInLine(1); runes != 3 {
		t.Errorf("Expected 3 runes in line 1, found %v", runes)
	}
}

func TestRopeInserting(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("some"))
	buf.Insert(0, 4, []byte(" text\n")) // Insert " text" after "some"
	buf.Insert(0, 0, []byte("with\n\t"))
	//with
	//	some text
	//

	buf.Remove(0, 4, 1, 6) // Delete "\n\tsome "

	if str := string(buf.Bytes()); str != "withtext\n" {
		t.Errorf("string does not match \"withtext\\n\", got %#v", str)
	}
}

func TestRopeRemoveJoinsLines(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("몰\r\n루"))

	buf.Remove(0, buf.RunesInLine(0), 1, 0) // Delete the CRLF

	if str := string(buf.Bytes()); str != "몰루" {
		t.Errorf("Expected lines to be joined, got %#v", str)
	}
	if buf.Lines() != 1 {
		t.Errorf("Expected 1 line, got %v", buf.Lines())
	}
}

func TestRopeBounds(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("this\nis (は)\n\tsome\r\ntext\n"))
	//this
	//is (は)
	//	some
	//text
	//

	if buf.Lines() != 5 {
		t.Errorf("Expected buf.Lines() == 5, got %v", buf.Lines())
	}

	if len := buf.RunesInLine(1); len != 6 { // "is" in English and in japanese
		t.Errorf("Expected 6 runes in line 2, found %v", len)
	}

	if len := buf.RunesInLine(4); len != 0 {
		t.Errorf("Expected 0 runes in line 5, found %v", len)
	}

	line, col := buf.ClampLineCol(15, 5) // Should become last line, first column
	if line != 4 || col != 0 {
		t.Errorf("Expected to clamp line col to 4,0 got %v,%v", line, col)
	}

	line, col = buf.ClampLineCol(4, -1)
	if line != 4 || col != 0 {
		t.Errorf("Expected to clamp line col to 4,0 got %v,%v", line, col)
	}

	line, col = buf.ClampLineCol(2, 50) // Should be third line, pointing at the delimiter
	if line != 2 || col != 5 {
		t.Errorf("Expected to clamp line, col to 2,5 got %v,%v", line, col)
	}

	if line := string(buf.Line(2)); line != "\tsome" {
		t.Errorf("Expected line 3 to equal \"\\tsome\", got %#v", line)
	}

	if line := string(buf.Line(4)); line != "" {
		t.Errorf("Got %#v", line)
	}
}

func TestRopeCount(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("\t\tlot of\n\ttabs"))

	tabsAtOf := buf.Count(0, 6, []byte{'\t'})
	if tabsAtOf != 2 {
		t.Errorf("Expected 2 tabs before 'of', got %#v", tabsAtOf)
	}

	tabs := buf.Count(0, 0, []byte{'\t'})
	if tabs != 0 {
		t.Errorf("Expected no tabs at column zero, got %v", tabs)
	}

	if tabs := buf.Count(1, 4, []byte{'\t'}); tabs != 1 {
		t.Errorf("Expected 1 tab on line 1, got %v", tabs)
	}
}

func TestRopeSlice(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("abc\ndef\n"))

	wholeSlice := buf.Slice(0, 0, 2, 0)
	if string(wholeSlice) != "abc\ndef\n" {
		t.Errorf("Whole slice was not equal, got \"%s\"", wholeSlice)
	}

	secondLine := buf.Slice(1, 0, 2, 0)
	if string(secondLine) != "def\n" {
		t.Errorf("Second line and slice were not equal, got \"%s\"", secondLine)
	}
}

func TestRopeEmpty(t *testing.T) {
	var buf Buffer = NewRopeBuffer(nil)

	if buf.Lines() != 1 {
		t.Errorf("Expected an empty buffer to have 1 line, got %v", buf.Lines())
	}
	if line := buf.Line(0); len(line) != 0 {
		t.Errorf("Expected empty line, got %#v", line)
	}

	buf.Insert(0, 0, []byte("몰"))
	if str := string(buf.Bytes()); str != "몰" {
		t.Errorf("Got %#v", str)
	}
}
