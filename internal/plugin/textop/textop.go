// Package textop provides the closed set of pure text transformations
// available to transform actions.
//
// Every operation is a total function over text: it never fails on valid
// input. The set is fixed so that manifest validation can reject unknown
// names at load time.
package textop

import (
	"sort"
	"strings"
	"unicode"
)

// Func is a pure text transformation.
type Func func(string) string

// operations maps transform names to implementations.
var operations = map[string]Func{
	"uppercase":            strings.ToUpper,
	"lowercase":            strings.ToLower,
	"title_case":           titleCase,
	"reverse":              reverse,
	"trim":                 strings.TrimSpace,
	"sort_lines":           sortLines,
	"unique_lines":         uniqueLines,
	"strip_trailing_space": stripTrailingSpace,
}

// Lookup returns the named operation.
func Lookup(name string) (Func, bool) {
	fn, ok := operations[name]
	return fn, ok
}

// Names returns all operation names, sorted.
func Names() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			r = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
		b.WriteRune(r)
	}
	return b.String()
}

// reverse reverses the text rune-wise.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// sortLines sorts lines lexicographically. A trailing newline is preserved.
func sortLines(s string) string {
	trailing := strings.HasSuffix(s, "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	sort.Strings(lines)
	out := strings.Join(lines, "\n")
	if trailing {
		out += "\n"
	}
	return out
}

// uniqueLines removes duplicate lines, keeping the first occurrence.
func uniqueLines(s string) string {
	trailing := strings.HasSuffix(s, "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, line := range lines {
		if seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	result := strings.Join(out, "\n")
	if trailing {
		result += "\n"
	}
	return result
}

// stripTrailingSpace removes trailing whitespace from every line.
func stripTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
