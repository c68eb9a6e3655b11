package bridge

import "testing"

func TestOffsetAt(t *testing.T) {
	text := "abc\ndef\n"

	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"start", Position{Line: 1, Col: 1}, 0},
		{"mid first line", Position{Line: 1, Col: 3}, 2},
		{"end of first line", Position{Line: 1, Col: 4}, 3},
		{"col past line end clamps", Position{Line: 1, Col: 99}, 3},
		{"second line", Position{Line: 2, Col: 2}, 5},
		{"line past end clamps", Position{Line: 9, Col: 1}, 8},
		{"zero line clamps to start", Position{Line: 0, Col: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OffsetAt(text, tt.pos); got != tt.want {
				t.Errorf("OffsetAt(%v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestPositionAt(t *testing.T) {
	text := "abc\ndef"

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start", 0, Position{Line: 1, Col: 1}},
		{"mid first line", 2, Position{Line: 1, Col: 3}},
		{"newline itself", 3, Position{Line: 1, Col: 4}},
		{"start of second line", 4, Position{Line: 2, Col: 1}},
		{"end of text", 7, Position{Line: 2, Col: 4}},
		{"past end clamps", 99, Position{Line: 2, Col: 4}},
		{"negative clamps", -1, Position{Line: 1, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionAt(text, tt.offset); got != tt.want {
				t.Errorf("PositionAt(%d) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	text := "one\ntwo three\n\nfour"
	for offset := 0; offset <= len(text); offset++ {
		pos := PositionAt(text, offset)
		if got := OffsetAt(text, pos); got != offset {
			t.Errorf("round trip at %d: got %d (via %v)", offset, got, pos)
		}
	}
}
