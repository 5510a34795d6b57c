// Package prompt asks yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/gridcache/internal/contract"
)

// TerminalPrompter implements contract.Prompter over an input and output stream.
// When the input is not interactive every question is declined.
type TerminalPrompter struct {
	in          io.Reader
	out         io.Writer
	interactive func() bool
}

var _ contract.Prompter = &TerminalPrompter{} // Compile-time check

// New creates a prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:          in,
		out:         out,
		interactive: func() bool { return contract.IsTerminalReader(in) },
	}
}

// AlwaysInteractive treats in as a terminal regardless of what it is.
func (p *TerminalPrompter) AlwaysInteractive() *TerminalPrompter {
	p.interactive = func() bool { return true }
	return p
}

// Confirm prints question and returns true only for an answer of y or yes.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	if !p.interactive() {
		contract.Logger.Debug().Msg("Input is not a terminal; declining confirmation")
		return false, nil
	}

	if _, err := fmt.Fprint(p.out, question); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
