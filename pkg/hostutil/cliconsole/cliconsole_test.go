package cliconsole

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return &Console{
		out:      &out,
		in:       bufio.NewReader(strings.NewReader(input)),
		colorful: true,
	}, &out
}

func TestPrintlnWritesALine(t *testing.T) {
	c, out := newTestConsole("")
	if err := c.Println("hello"); err != nil {
		t.Fatalf("Println: %v", err)
	}
	if out.String() != "hello\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestSetColorEmitsAnsiWhenColorful(t *testing.T) {
	c, out := newTestConsole("")
	if err := c.SetColor(1, 2); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if !strings.Contains(out.String(), "38;5;1") || !strings.Contains(out.String(), "48;5;2") {
		t.Errorf("expected both fg and bg escapes, got %q", out.String())
	}
}

func TestSetColorIsANoOpWhenNotColorful(t *testing.T) {
	c, out := newTestConsole("")
	c.colorful = false
	if err := c.SetColor(1, 2); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestSetColorSkipsANegativeChannel(t *testing.T) {
	c, out := newTestConsole("")
	if err := c.SetColor(-1, 2); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if strings.Contains(out.String(), "38;5;") {
		t.Errorf("did not expect a foreground escape, got %q", out.String())
	}
}

func TestReadLineReturnsTheNextLineAndTrimsCRLF(t *testing.T) {
	c, _ := newTestConsole("hello\r\n")
	line, err := c.ReadLine(context.Background(), "")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "hello" {
		t.Errorf("got %q", line)
	}
}

func TestReadLinePrintsThePromptFirst(t *testing.T) {
	c, out := newTestConsole("42\n")
	if _, err := c.ReadLine(context.Background(), "> "); err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if !strings.HasPrefix(out.String(), "> ") {
		t.Errorf("expected the prompt to be written first, got %q", out.String())
	}
}

func TestReadLineReturnsImmediatelyOnAnAlreadyCancelledContext(t *testing.T) {
	c, _ := newTestConsole("never read\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ReadLine(ctx, ""); err == nil {
		t.Fatal("expected a cancellation error")
	}
}

func TestReadLineUnblocksOnContextCancelEvenWithoutInput(t *testing.T) {
	c, _ := newTestConsole("")
	pr, pw := io.Pipe() // blocks every read until written to or closed
	defer pw.Close()
	c.in = bufio.NewReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.ReadLine(ctx, "")
	if err == nil {
		t.Fatal("expected ReadLine to return the context's error while the read is still blocked")
	}
}
