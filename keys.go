package illumiterm

import "unicode"

// Modifier is a set of held modifier keys. Lock modifiers (caps, num) are
// never included.
type Modifier uint

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key identifies the non-character keys the session cares about
type Key int

const (
	KeyNone Key = iota
	KeyPageUp
	KeyPageDown
	KeyHome
)

// KeyEvent is a key press. Rune is the character the key produces, if any.
type KeyEvent struct {
	Mods Modifier
	Key  Key
	Rune rune
}

// ButtonPrimary and ButtonSecondary are pointer button numbers
const (
	ButtonPrimary   = 1
	ButtonMiddle    = 2
	ButtonSecondary = 3
)

// ButtonEvent is a pointer button press at X, Y (surface coordinates)
type ButtonEvent struct {
	Button int
	X, Y   float64
}

// Command is something the user asked the session to do
type Command int

const (
	CommandNone Command = iota
	CommandZoomIn
	CommandZoomOut
	CommandZoomReset
	CommandCopy
	CommandPaste
	CommandClose
)

var commandNames = map[Command]string{
	CommandNone:      "none",
	CommandZoomIn:    "zoom-in",
	CommandZoomOut:   "zoom-out",
	CommandZoomReset: "zoom-reset",
	CommandCopy:      "copy",
	CommandPaste:     "paste",
	CommandClose:     "close",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// shortcutMods is the exact modifier set every shortcut needs
const shortcutMods = ModControl | ModShift

var keyCommands = map[Key]Command{
	KeyPageUp:   CommandZoomIn,
	KeyPageDown: CommandZoomOut,
	KeyHome:     CommandZoomReset,
}

var runeCommands = map[rune]Command{
	'c': CommandCopy,
	'v': CommandPaste,
}

// LookupShortcut maps a key press to its command, or CommandNone if the event
// should go to the terminal
func LookupShortcut(ev KeyEvent) Command {
	if ev.Mods != shortcutMods {
		return CommandNone
	}
	if cmd, ok := keyCommands[ev.Key]; ok {
		return cmd
	}
	if cmd, ok := runeCommands[unicode.ToLower(ev.Rune)]; ok {
		return cmd
	}
	return CommandNone
}
