package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	promptTitle = color.New(color.FgYellow, color.Bold).FprintfFunc()
	promptHint  = color.New(color.FgCyan).FprintfFunc()
)

// prompter asks on the host terminal. It blocks the loop and reads the
// answer straight from the input channel.
type prompter struct {
	t *Terminal
}

// Ask returns true for y and false for n, Enter or Escape. Closed input
// counts as yes: there is nobody left to ask.
func (p *prompter) Ask(title, message string) bool {
	out := p.t.out
	fmt.Fprint(out, "\r\n")
	promptTitle(out, "%s\r\n", title)
	fmt.Fprintf(out, "%s\r\n", strings.ReplaceAll(message, "\n", "\r\n"))
	promptHint(out, "[y/N] ")

	for data := range p.t.input {
		for _, b := range data {
			switch b {
			case 'y', 'Y':
				fmt.Fprint(out, "yes\r\n")
				return true
			case 'n', 'N', '\r', '\n', 0x1b, 0x03:
				fmt.Fprint(out, "no\r\n")
				return false
			}
		}
	}
	return true
}
