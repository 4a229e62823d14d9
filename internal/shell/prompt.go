package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput means the input channel closed; nothing more can be asked.
var ErrNoInput = errors.New("no input available")

// Prompter reads answers line by line. When the input is a terminal,
// passwords are read with echo turned off.
type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func() ([]byte, error)
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readSecret = func() ([]byte, error) { return term.ReadPassword(fd) }
	}
	return p
}

// ReadLine prints prompt and returns the next line without its terminator.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("%w: %v", ErrNoInput, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword prints prompt and reads a line, hiding it on a terminal.
func (p *Prompter) ReadPassword(prompt string) (string, error) {
	if p.readSecret == nil {
		return p.ReadLine(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := p.readSecret()
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoInput, err)
	}
	return string(b), nil
}
