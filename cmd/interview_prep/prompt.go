package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// errAborted means input ended before the user finished.
var errAborted = errors.New("input closed")

// prompter reads answers from the terminal or a test reader.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal file descriptor, or -1
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// readLine returns the next line without its newline. A final line without
// a newline is returned before io.EOF.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Line asks for a single value. An empty reply returns def.
//
//nolint:errcheck // terminal output
func (p *prompter) Line(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

// Lines reads lines until an empty one and returns them without blanks.
//
//nolint:errcheck // terminal output
func (p *prompter) Lines(label string) ([]string, error) {
	fmt.Fprintf(p.out, "%s (one per line, empty line to finish):\n", label)
	var out []string
	for {
		line, err := p.readLine()
		if errors.Is(err, errAborted) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			return out, nil
		}
		out = append(out, strings.TrimSpace(line))
	}
}

// Confirm asks a yes/no question; anything but y or yes is no.
//
//nolint:errcheck // terminal output
func (p *prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.readLine()
	if errors.Is(err, errAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Password reads a secret without echo when attached to a terminal.
//
//nolint:errcheck // terminal output
func (p *prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.fd < 0 {
		return p.readLine()
	}
	pw, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}
