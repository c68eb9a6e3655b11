package exec

import (
	"testing"
	"time"

	"github.com/quill-editor/quill/internal/plugin/bridge"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)
	return func() time.Time { return at }
}

func TestSnippetExpansion(t *testing.T) {
	p := makePlugin(t, "/p", `{"name": "p", "actions": {
	  "hdr": {"type": "snippet",
	          "template": "// {file_name} ({language}) {date} {time}\n"}}}`)
	ed := bridge.NewEditor("package main\n",
		bridge.WithPath("/src/app/main.go"),
		bridge.WithLanguage("go"),
	)

	e := NewExecutor(WithClock(fixedClock()))
	if err := e.Execute(p, "hdr", ed); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	text, _ := ed.Text()
	want := "// main.go (go) 2026-08-27 14:30:05\npackage main\n"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestSnippetInsertsAtCursor(t *testing.T) {
	p := makePlugin(t, "/p", `{"name": "p", "actions": {
	  "mark": {"type": "snippet", "template": "XX"}}}`)
	ed := bridge.NewEditor("ab\ncd")
	_ = ed.SetCursor(bridge.Position{Line: 2, Col: 2})

	if err := NewExecutor(WithClock(fixedClock())).Execute(p, "mark", ed); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	text, _ := ed.Text()
	if text != "ab\ncXXd" {
		t.Errorf("text = %q, want %q", text, "ab\ncXXd")
	}

	// Cursor shifted to the end of the inserted text.
	pos, _ := ed.Cursor()
	if pos != (bridge.Position{Line: 2, Col: 4}) {
		t.Errorf("cursor = %v, want 2:4", pos)
	}
}

func TestSnippetUnsavedBufferPlaceholder(t *testing.T) {
	p := makePlugin(t, "/p", `{"name": "p", "actions": {
	  "hdr": {"type": "snippet", "template": "{file_name}|{file_path}"}}}`)
	ed := bridge.NewEditor("")

	if err := NewExecutor(WithClock(fixedClock())).Execute(p, "hdr", ed); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	text, _ := ed.Text()
	if text != "untitled|untitled" {
		t.Errorf("text = %q, want untitled|untitled", text)
	}
}

func TestSnippetTimestampAtInvocation(t *testing.T) {
	p := makePlugin(t, "/p", `{"name": "p", "actions": {
	  "d": {"type": "snippet", "template": "{date}"}}}`)

	calls := 0
	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}
	e := NewExecutor(WithClock(func() time.Time {
		at := times[calls]
		calls++
		return at
	}))

	first := bridge.NewEditor("")
	_ = e.Execute(p, "d", first)
	second := bridge.NewEditor("")
	_ = e.Execute(p, "d", second)

	t1, _ := first.Text()
	t2, _ := second.Text()
	if t1 != "2026-01-01" || t2 != "2026-02-02" {
		t.Errorf("timestamps = %q, %q; want per-invocation resolution", t1, t2)
	}
}
