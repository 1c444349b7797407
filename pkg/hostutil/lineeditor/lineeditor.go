// Package lineeditor implements host.Editor as a simple line-oriented
// session over a Console: the current program text is shown one line at
// a time and the user retypes it, terminating input with a lone "."
// line. It is grounded on the line-buffer model of the teacher's
// pkg/editor ([]string lines, edited line by line) but drops that
// package's full-screen cursor/rendering/wrapping machinery entirely,
// since this language core's Console contract has no notion of a
// terminal frame buffer to render into — only Print/Println/Locate.
package lineeditor

import (
	"context"
	"strconv"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/host"
)

// Editor is a host.Editor that edits through console.
type Editor struct {
	console host.Console
}

// New creates an Editor that prompts and reads through console.
func New(console host.Console) *Editor {
	return &Editor{console: console}
}

// Edit shows initial's lines and reads replacement lines from the
// console until a lone "." line, returning the joined result.
func (e *Editor) Edit(ctx context.Context, initial string) (string, error) {
	if initial != "" {
		if err := e.console.Println("--- current program ---"); err != nil {
			return "", err
		}
		for i, line := range strings.Split(initial, "\n") {
			if err := e.console.Println(numberLine(i+1, line)); err != nil {
				return "", err
			}
		}
	}
	if err := e.console.Println(`--- enter new program, end with a line containing only "." ---`); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := e.console.ReadLine(ctx, "")
		if err != nil {
			return "", err
		}
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func numberLine(n int, text string) string {
	return padNumber(n) + " " + text
}

func padNumber(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = " " + s
	}
	return s
}
