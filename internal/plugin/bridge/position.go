package bridge

import "strings"

// OffsetAt converts a 1-based position to a byte offset into text.
// Positions past the end of a line or past the last line clamp to the
// nearest valid offset.
func OffsetAt(text string, pos Position) int {
	if pos.Line < 1 {
		return 0
	}
	offset := 0
	line := 1
	for line < pos.Line {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
		line++
	}
	lineEnd := len(text)
	if nl := strings.IndexByte(text[offset:], '\n'); nl >= 0 {
		lineEnd = offset + nl
	}
	col := pos.Col - 1
	if col < 0 {
		col = 0
	}
	if offset+col > lineEnd {
		return lineEnd
	}
	return offset + col
}

// PositionAt converts a byte offset into text to a 1-based position.
// Offsets outside the text clamp to the start or end.
func PositionAt(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line := 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Position{Line: line, Col: offset - lineStart + 1}
}
