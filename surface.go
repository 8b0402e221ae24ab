package illumiterm

// Size is a pixel size
type Size struct {
	Width  int
	Height int
}

// Grid is a terminal size in character cells
type Grid struct {
	Rows int
	Cols int
}

// CellMetrics is the pixel size of one character cell at the current font scale
type CellMetrics struct {
	Width  int
	Height int
}

// FontDescription names the terminal font; Size is in points
type FontDescription struct {
	Family string
	Size   float64
}

// WithSize returns a copy of the description with a different point size
func (f FontDescription) WithSize(size float64) FontDescription {
	f.Size = size
	return f
}

// Behavior holds the terminal settings applied before the child is spawned.
// A negative ScrollbackLines means unlimited.
type Behavior struct {
	ScrollbackLines    int
	ScrollOnOutput     bool
	ScrollOnKeystroke  bool
	MouseAutohide      bool
	BoldIsBright       bool
	AudibleBell        bool
	CursorBlink        bool
	WordCharExceptions string
}

// DefaultBehavior returns the settings every session starts with
func DefaultBehavior() Behavior {
	return Behavior{
		ScrollbackLines:    -1,
		ScrollOnOutput:     true,
		ScrollOnKeystroke:  true,
		MouseAutohide:      true,
		BoldIsBright:       true,
		AudibleBell:        true,
		CursorBlink:        true,
		WordCharExceptions: "-./?%&_=+@~:",
	}
}

// SpawnDone receives the result of an asynchronous spawn. Exactly one of
// pid (> 0) or err (non-nil) is meaningful. It always runs on the loop.
type SpawnDone func(pid int, err error)

// Surface is the terminal widget hosting the child process. Rendering of its
// contents is the surface's own business.
type Surface interface {
	// Grid returns the current row and column count
	Grid() Grid

	// CellMetrics returns the cell size at the current font scale
	CellMetrics() CellMetrics

	FontScale() float64
	SetFontScale(scale float64)

	Font() FontDescription
	SetFont(font FontDescription)

	// Configure applies behavior settings. It cannot fail.
	Configure(b Behavior)

	// SpawnAsync starts req attached to the surface's pseudoterminal and
	// returns immediately; done runs later on the loop.
	SpawnAsync(req SpawnRequest, done SpawnDone)

	// Hangup asks the running child to terminate
	Hangup()

	// CopyClipboard copies the selection as plain text
	CopyClipboard()

	// PasteClipboard sends the clipboard contents to the child
	PasteClipboard()

	// OnChildExited subscribes to the child's exit status
	OnChildExited(fn func(status int)) Subscription

	// OnTitleChanged subscribes to title changes requested by the child
	OnTitleChanged(fn func(title string)) Subscription

	// OnKeyPress subscribes to key presses; returning true consumes the event
	OnKeyPress(fn func(ev KeyEvent) bool) Subscription

	// OnButtonPress subscribes to pointer button presses; returning true
	// consumes the event
	OnButtonPress(fn func(ev ButtonEvent) bool) Subscription
}

// Window is the top-level window that owns the surface
type Window interface {
	Size() Size
	Resize(size Size)
	SetTitle(title string)

	// OnCloseRequest subscribes to close requests from the window manager or
	// the menu. Returning true blocks the close.
	OnCloseRequest(fn func() bool) Subscription

	// PopupContextMenu shows the context menu at the pointer position of ev
	PopupContextMenu(ev ButtonEvent)

	// Destroy removes the window. The window is unusable afterwards.
	Destroy()
}

// Prompter asks the user a blocking yes/no question
type Prompter interface {
	Ask(title, message string) bool
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(title, message string) bool

// Ask calls f
func (f PrompterFunc) Ask(title, message string) bool {
	return f(title, message)
}
