package lineeditor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubConsole is a minimal host.Console that feeds preloaded input lines
// and records everything printed, enough to drive Editor.Edit without
// pulling in pkg/langtest (which would import this package transitively
// through pkg/builtins and create a cycle).
type stubConsole struct {
	inputs []string
	lines  []string
}

func (c *stubConsole) Print(s string) error   { c.lines = append(c.lines, s); return nil }
func (c *stubConsole) Println(s string) error { c.lines = append(c.lines, s); return nil }
func (c *stubConsole) Clear() error           { return nil }
func (c *stubConsole) SetColor(fg, bg int) error { return nil }
func (c *stubConsole) Locate(row, col int) error { return nil }
func (c *stubConsole) ReadLine(ctx context.Context, prompt string) (string, error) {
	if len(c.inputs) == 0 {
		return "", errors.New("no more input")
	}
	line := c.inputs[0]
	c.inputs = c.inputs[1:]
	return line, nil
}

func TestEditWithNoExistingProgramSkipsTheBanner(t *testing.T) {
	console := &stubConsole{inputs: []string{"PRINT 1", "."}}
	ed := New(console)
	text, err := ed.Edit(context.Background(), "")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if text != "PRINT 1" {
		t.Errorf("got %q", text)
	}
	for _, line := range console.lines {
		if strings.Contains(line, "current program") {
			t.Errorf("did not expect a current-program banner for an empty initial text, got %q", line)
		}
	}
}

func TestEditShowsExistingProgramNumbered(t *testing.T) {
	console := &stubConsole{inputs: []string{"."}}
	ed := New(console)
	if _, err := ed.Edit(context.Background(), "PRINT 1\nPRINT 2"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	found := false
	for _, line := range console.lines {
		if strings.Contains(line, "PRINT 1") && strings.HasPrefix(strings.TrimSpace(line), "1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a numbered line for PRINT 1, got %v", console.lines)
	}
}

func TestEditJoinsMultipleLinesWithNewlines(t *testing.T) {
	console := &stubConsole{inputs: []string{"PRINT 1", "PRINT 2", "."}}
	ed := New(console)
	text, err := ed.Edit(context.Background(), "")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if text != "PRINT 1\nPRINT 2" {
		t.Errorf("got %q", text)
	}
}
