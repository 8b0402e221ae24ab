package illumiterm

const (
	confirmTitle   = "Confirm close"
	confirmMessage = "A process is still running in this terminal.\nClose the window anyway?"
)

// Gate asks before a close request kills a live child
type Gate struct {
	prompter Prompter
}

// NewGate creates a gate around p. A nil prompter lets every close through.
func NewGate(p Prompter) *Gate {
	return &Gate{prompter: p}
}

// ConfirmClose blocks until the user answers. It returns true to cancel the
// close ("No") and false to proceed ("Yes").
func (g *Gate) ConfirmClose() bool {
	if g == nil || g.prompter == nil {
		return false
	}
	return !g.prompter.Ask(confirmTitle, confirmMessage)
}
