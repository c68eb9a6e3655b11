package plugin

import "testing"

func TestContextFilterMatches(t *testing.T) {
	tests := []struct {
		name     string
		filter   *ContextFilter
		language string
		filePath string
		want     bool
	}{
		{
			"nil filter matches everything",
			nil, "go", "/src/main.go", true,
		},
		{
			"empty filter matches everything",
			&ContextFilter{}, "zig", "weird.bin", true,
		},
		{
			"empty filter matches empty context",
			&ContextFilter{}, "", "", true,
		},
		{
			"language match",
			&ContextFilter{Languages: []string{"go", "rust"}}, "go", "x", true,
		},
		{
			"language match is case-insensitive",
			&ContextFilter{Languages: []string{"Go"}}, "go", "x", true,
		},
		{
			"language mismatch",
			&ContextFilter{Languages: []string{"go"}}, "python", "x", false,
		},
		{
			"pattern match on base name",
			&ContextFilter{FilePatterns: []string{"*.go"}}, "", "/deep/dir/main.go", true,
		},
		{
			"pattern mismatch",
			&ContextFilter{FilePatterns: []string{"*.go"}}, "", "main.py", false,
		},
		{
			"any pattern suffices",
			&ContextFilter{FilePatterns: []string{"*.md", "*.txt"}}, "", "notes.txt", true,
		},
		{
			"pattern with slash matches full path",
			&ContextFilter{FilePatterns: []string{"**/testdata/*.json"}}, "", "a/b/testdata/x.json", true,
		},
		{
			"both sets must match",
			&ContextFilter{Languages: []string{"go"}, FilePatterns: []string{"*.go"}},
			"go", "main.py", false,
		},
		{
			"both sets match",
			&ContextFilter{Languages: []string{"go"}, FilePatterns: []string{"*.go"}},
			"go", "main.go", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.language, tt.filePath); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.language, tt.filePath, got, tt.want)
			}
		})
	}
}

func TestTriggerLabel(t *testing.T) {
	withName := &Trigger{ID: "t1", CommandName: "Do Thing"}
	if withName.Label() != "Do Thing" {
		t.Errorf("Label() = %q", withName.Label())
	}

	withoutName := &Trigger{ID: "t1"}
	if withoutName.Label() != "t1" {
		t.Errorf("Label() = %q", withoutName.Label())
	}
}
