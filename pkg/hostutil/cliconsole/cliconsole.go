// Package cliconsole implements host.Console against the calling
// process's own stdin/stdout, for a command-line REPL. ANSI color
// escapes are only ever written when stdout is a real terminal, using
// the same isatty check the teacher's pkg/terminal uses to decide
// whether to speak ANSI at all.
package cliconsole

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Console is a host.Console backed by os.Stdin/os.Stdout.
type Console struct {
	out      io.Writer
	in       *bufio.Reader
	colorful bool
	row, col int
}

// New creates a Console over stdin/stdout, detecting ANSI color support
// via isatty.
func New() *Console {
	return &Console{
		out:      os.Stdout,
		in:       bufio.NewReader(os.Stdin),
		colorful: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (c *Console) Print(s string) error {
	_, err := fmt.Fprint(c.out, s)
	return err
}

func (c *Console) Println(s string) error {
	_, err := fmt.Fprintln(c.out, s)
	return err
}

func (c *Console) Clear() error {
	if !c.colorful {
		return nil
	}
	_, err := fmt.Fprint(c.out, "\x1b[2J\x1b[H")
	return err
}

func (c *Console) SetColor(fg, bg int) error {
	if !c.colorful {
		return nil
	}
	if fg >= 0 {
		if _, err := fmt.Fprintf(c.out, "\x1b[38;5;%dm", fg); err != nil {
			return err
		}
	}
	if bg >= 0 {
		if _, err := fmt.Fprintf(c.out, "\x1b[48;5;%dm", bg); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) Locate(row, col int) error {
	c.row, c.col = row, col
	if !c.colorful {
		return nil
	}
	_, err := fmt.Fprintf(c.out, "\x1b[%d;%dH", row+1, col+1)
	return err
}

// ReadLine prints prompt, then blocks for one line on stdin. Stdin reads
// cannot be cancelled mid-read on every platform, so cancellation is
// checked before the read starts and the read itself runs on its own
// goroutine; a cancelled ctx returns promptly even if the underlying
// read is still blocked waiting for a line that never arrives.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if prompt != "" {
		if err := c.Print(prompt); err != nil {
			return "", err
		}
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- result{line: trimNewline(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && r.err != io.EOF {
			return "", r.err
		}
		return r.line, nil
	}
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	n = len(s)
	if n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
