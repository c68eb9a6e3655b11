package textop

import "testing"

func TestLookupKnownNames(t *testing.T) {
	for _, name := range Names() {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed for a listed name", name)
		}
	}
	if _, ok := Lookup("no-such-op"); ok {
		t.Error("Lookup should fail for unknown name")
	}
}

func TestOperations(t *testing.T) {
	tests := []struct {
		op    string
		input string
		want  string
	}{
		{"uppercase", "hello", "HELLO"},
		{"uppercase", "", ""},
		{"lowercase", "HeLLo", "hello"},
		{"title_case", "hello brave world", "Hello Brave World"},
		{"title_case", "it's fine", "It's Fine"},
		{"reverse", "abc", "cba"},
		{"reverse", "héllo", "olléh"},
		{"trim", "  ab  ", "ab"},
		{"sort_lines", "b\na\nc", "a\nb\nc"},
		{"sort_lines", "b\na\n", "a\nb\n"},
		{"unique_lines", "a\nb\na\nb", "a\nb"},
		{"strip_trailing_space", "a  \nb\t\nc", "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.op+"/"+tt.input, func(t *testing.T) {
			fn, ok := Lookup(tt.op)
			if !ok {
				t.Fatalf("Lookup(%q) failed", tt.op)
			}
			if got := fn(tt.input); got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.op, tt.input, got, tt.want)
			}
		})
	}
}

func TestUppercaseIdempotent(t *testing.T) {
	fn, _ := Lookup("uppercase")
	inputs := []string{"hello", "MiXeD", "", "123 abc"}
	for _, in := range inputs {
		once := fn(in)
		if twice := fn(once); twice != once {
			t.Errorf("uppercase not idempotent on %q: %q != %q", in, twice, once)
		}
	}
}

func TestReverseRoundTrip(t *testing.T) {
	fn, _ := Lookup("reverse")
	inputs := []string{"hello", "a\nb", "", "héllo wörld"}
	for _, in := range inputs {
		if got := fn(fn(in)); got != in {
			t.Errorf("reverse(reverse(%q)) = %q", in, got)
		}
	}
}
