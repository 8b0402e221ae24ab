package cli

import (
	"fmt"

	"github.com/phroun/illumiterm"
	"go.uber.org/zap"
)

// Window is the host terminal seen as a window
type Window struct {
	t         *Terminal
	title     string
	destroyed bool
	closed    chan struct{}

	closeRequest illumiterm.Signal[struct{}]
}

func newWindow(t *Terminal) *Window {
	return &Window{t: t, closed: make(chan struct{})}
}

// Size returns the host text area in pixels, estimated from the cell count
// when the host does not report it
func (w *Window) Size() illumiterm.Size {
	if px, ok := w.t.hostPixels(); ok {
		return px
	}
	grid := w.t.hostGrid()
	return illumiterm.Size{
		Width:  grid.Cols * fallbackCell.Width,
		Height: grid.Rows * fallbackCell.Height,
	}
}

// Resize asks the host terminal for a new pixel size (XTWINOPS 4)
func (w *Window) Resize(size illumiterm.Size) {
	if w.destroyed || size == w.Size() {
		return
	}
	fmt.Fprintf(w.t.out, "\x1b[4;%d;%dt", size.Height, size.Width)
}

// SetTitle sets the host terminal title (OSC 0)
func (w *Window) SetTitle(title string) {
	w.title = title
	fmt.Fprintf(w.t.out, "\x1b]0;%s\a", title)
}

// Title returns the last title set
func (w *Window) Title() string {
	return w.title
}

// OnCloseRequest subscribes to close requests. Returning true blocks the
// default action, which is Destroy.
func (w *Window) OnCloseRequest(fn func() bool) illumiterm.Subscription {
	return w.closeRequest.Connect(func(struct{}) bool { return fn() })
}

// PopupContextMenu is not available in a host terminal
func (w *Window) PopupContextMenu(ev illumiterm.ButtonEvent) {
	w.t.log.Debug("context menu not available", zap.Float64("x", ev.X), zap.Float64("y", ev.Y))
}

// Destroy marks the window gone and closes Closed
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	close(w.closed)
}

// Closed is closed by Destroy
func (w *Window) Closed() <-chan struct{} {
	return w.closed
}

func (w *Window) requestClose() {
	if w.destroyed {
		return
	}
	if !w.closeRequest.Emit(struct{}{}) {
		w.Destroy()
	}
}
