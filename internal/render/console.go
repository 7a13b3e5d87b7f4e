// Package render prints streamed reports to a plain terminal or pipe. It backs
// the non-interactive commands.
package render

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"

	"github.com/mwiater/promptlab/internal/completion"
)

// Console writes messages to out. Markdown is rendered with glamour when out
// is a terminal and written verbatim otherwise.
type Console struct {
	out      io.Writer
	markdown *glamour.TermRenderer
}

// NewConsole returns a Console for out.
func NewConsole(out io.Writer) *Console {
	c := &Console{out: out}
	if isTerminal(out) {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			c.markdown = r
		}
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Stream opens a message that is printed as tokens arrive on a pipe, or
// rendered in one piece on Send when writing to a terminal.
func (c *Console) Stream(_ context.Context) (completion.Sink, error) {
	return &consoleStream{console: c}, nil
}

func (c *Console) writeMarkdown(content string) error {
	if c.markdown != nil {
		rendered, err := c.markdown.Render(content)
		if err == nil {
			_, err = io.WriteString(c.out, rendered)
			return err
		}
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(c.out, content)
	return err
}

type consoleStream struct {
	console *Console
	buf     strings.Builder
	wrote   bool
}

func (s *consoleStream) StreamToken(token string) error {
	if s.console.markdown != nil {
		s.buf.WriteString(token)
		return nil
	}
	s.wrote = true
	s.buf.WriteString(token)
	_, err := io.WriteString(s.console.out, token)
	return err
}

func (s *consoleStream) Send() error {
	if s.console.markdown != nil {
		return s.console.writeMarkdown(s.buf.String())
	}
	if s.wrote && !strings.HasSuffix(s.buf.String(), "\n") {
		_, err := io.WriteString(s.console.out, "\n")
		return err
	}
	return nil
}
