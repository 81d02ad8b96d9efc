// Package prompt implements the interactive questions the bootstrap tools
// ask: free-text entry, hidden credential entry, y/n confirmations, the
// typed double confirmation guarding destructive pushes, and numbered menus.
//
// Human-in-the-loop steps are modeled as blocking calls returning a typed
// result. Only credential entry carries a timeout; steps that wait on an
// action elsewhere (registering an SSH key in a browser) block indefinitely.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/avatardemo/go-demotools/internal/errors"
)

// Prompter reads answers from In and writes questions to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// New creates a Prompter on stdin/stdout.
func New() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout}
}

func (p *Prompter) buf() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	return p.reader
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.buf().ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Input asks for a line of text. A zero timeout blocks until the user
// answers; otherwise the prompt fails once the timeout elapses.
func (p *Prompter) Input(label string, timeout time.Duration) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", label)

	if timeout == 0 {
		return p.readLine()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := p.readLine()
		ch <- answer{line, err}
	}()

	select {
	case a := <-ch:
		return a.line, a.err
	case <-ctx.Done():
		fmt.Fprintln(p.Out)
		return "", fmt.Errorf("no input within %s", timeout)
	}
}

// Secret asks for a credential without echoing it when connected to a
// terminal. Piped input falls back to a plain line read so tests and
// scripts keep working.
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", label)

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		value, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(value)), nil
	}

	return p.readLine()
}

// Confirm asks a y/n question and returns the answer. Anything other than
// y/yes counts as no.
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [y/N]: ", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ConfirmDestructive guards irreversible operations behind a double
// confirmation: the user must type the given phrase exactly, then answer a
// final y/n. Returns ErrAborted if either step fails.
func (p *Prompter) ConfirmDestructive(warning, phrase string) error {
	fmt.Fprintln(p.Out, warning)
	fmt.Fprintf(p.Out, "Type %q to continue: ", phrase)

	line, err := p.readLine()
	if err != nil {
		return err
	}
	if line != phrase {
		return errors.ErrAborted
	}

	ok, err := p.Confirm("This cannot be undone. Proceed")
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrAborted
	}
	return nil
}

// Select presents a numbered menu and returns the chosen index. An invalid
// choice is an immediate error, not a retry loop.
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.Out, label)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(p.Out, "Choice [1-%d]: ", len(options))

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(options) {
		return 0, fmt.Errorf("invalid choice %q", line)
	}
	return choice - 1, nil
}
