package illumitermgtk

import "github.com/gotk3/gotk3/gtk"

// dialogPrompter asks with a modal Yes/No dialog over the window
type dialogPrompter struct {
	parent *Window
}

// Ask runs a nested main loop until the user picks Yes or No
func (p dialogPrompter) Ask(title, message string) bool {
	dialog := gtk.MessageDialogNew(p.parent.win, gtk.DIALOG_MODAL|gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_QUESTION, gtk.BUTTONS_YES_NO, "%s", message)
	defer dialog.Destroy()

	dialog.SetTitle(title)
	dialog.SetResizable(false)
	dialog.SetDeletable(false)
	dialog.SetDefaultResponse(gtk.RESPONSE_NO)

	for {
		switch dialog.Run() {
		case gtk.RESPONSE_YES:
			return true
		case gtk.RESPONSE_NO:
			return false
		}
	}
}
