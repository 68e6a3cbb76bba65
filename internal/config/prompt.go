package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter asks the operator a single question and returns the trimmed answer.
type Prompter interface {
	Ask(question string) (string, error)
}

// NewPrompter picks a huh form when in is a terminal and a plain line reader
// otherwise (pipes, redirected files, tests).
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return &FormPrompter{Accessible: true}
	}
	return NewLinePrompter(in, out)
}

// LinePrompter prints each question on its own line and reads one line back.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprintln(p.out, question); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// FormPrompter renders each question as a huh input. Accessible mode keeps
// the interaction line based.
type FormPrompter struct {
	Accessible bool
}

func (p *FormPrompter) Ask(question string) (string, error) {
	var answer string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(question).
				Value(&answer),
		),
	).WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt %q: %w", question, err)
	}

	return strings.TrimSpace(answer), nil
}
