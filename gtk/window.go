package illumitermgtk

import (
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/illumiterm"
)

// Window is the application window: a menu bar above the surface
type Window struct {
	win     *gtk.ApplicationWindow
	surface *Surface
	context *gtk.Menu

	execute   func(cmd illumiterm.Command) bool
	destroyed bool

	closeRequest illumiterm.Signal[struct{}]
}

type menuEntry struct {
	label string
	cmd   illumiterm.Command
}

var (
	fileMenu = []menuEntry{
		{"_Close", illumiterm.CommandClose},
	}
	editMenu = []menuEntry{
		{"_Copy", illumiterm.CommandCopy},
		{"_Paste", illumiterm.CommandPaste},
		{},
		{"Zoom _In", illumiterm.CommandZoomIn},
		{"Zoom _Out", illumiterm.CommandZoomOut},
		{"_Normal Size", illumiterm.CommandZoomReset},
	}
	contextMenu = []menuEntry{
		{"_Copy", illumiterm.CommandCopy},
		{"_Paste", illumiterm.CommandPaste},
	}
)

// NewWindow creates the application window around surface
func NewWindow(app *gtk.Application, surface *Surface) (*Window, error) {
	win, err := gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, err
	}
	w := &Window{win: win, surface: surface}

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, err
	}

	bar, err := gtk.MenuBarNew()
	if err != nil {
		return nil, err
	}
	for _, top := range []struct {
		label   string
		entries []menuEntry
	}{{"_File", fileMenu}, {"_Edit", editMenu}} {
		item, err := gtk.MenuItemNewWithMnemonic(top.label)
		if err != nil {
			return nil, err
		}
		sub, err := w.buildMenu(top.entries)
		if err != nil {
			return nil, err
		}
		item.SetSubmenu(sub)
		bar.Append(item)
	}

	w.context, err = w.buildMenu(contextMenu)
	if err != nil {
		return nil, err
	}
	w.context.ShowAll()

	box.PackStart(bar, false, false, 0)
	box.PackStart(surface.Widget(), true, true, 0)
	win.Add(box)

	win.Connect("delete-event", func() bool {
		return w.closeRequest.Emit(struct{}{})
	})
	win.Connect("destroy", func() {
		w.destroyed = true
	})
	return w, nil
}

func (w *Window) buildMenu(entries []menuEntry) (*gtk.Menu, error) {
	menu, err := gtk.MenuNew()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.label == "" {
			sep, err := gtk.SeparatorMenuItemNew()
			if err != nil {
				return nil, err
			}
			menu.Append(sep)
			continue
		}
		item, err := gtk.MenuItemNewWithMnemonic(e.label)
		if err != nil {
			return nil, err
		}
		cmd := e.cmd
		item.Connect("activate", func() {
			if w.execute != nil {
				w.execute(cmd)
			}
		})
		menu.Append(item)
	}
	return menu, nil
}

// SetCommandHandler routes menu activations to fn
func (w *Window) SetCommandHandler(fn func(cmd illumiterm.Command) bool) {
	w.execute = fn
}

// Show realizes the window at its default size
func (w *Window) Show() {
	w.win.SetDefaultSize(illumiterm.DefaultWindowSize.Width, illumiterm.DefaultWindowSize.Height)
	w.win.ShowAll()
	w.surface.view.GrabFocus()
}

// Size returns the window size in pixels
func (w *Window) Size() illumiterm.Size {
	width, height := w.win.GetSize()
	return illumiterm.Size{Width: width, Height: height}
}

func (w *Window) Resize(size illumiterm.Size) {
	if w.destroyed {
		return
	}
	w.win.Resize(size.Width, size.Height)
}

func (w *Window) SetTitle(title string) {
	if w.destroyed {
		return
	}
	w.win.SetTitle(title)
}

// OnCloseRequest subscribes to delete events. Returning true keeps the window.
func (w *Window) OnCloseRequest(fn func() bool) illumiterm.Subscription {
	return w.closeRequest.Connect(func(struct{}) bool { return fn() })
}

// PopupContextMenu shows Copy and Paste at the pointer of the press that
// triggered it
func (w *Window) PopupContextMenu(illumiterm.ButtonEvent) {
	if w.destroyed || w.surface.lastButton == nil {
		return
	}
	w.context.PopupAtPointer(w.surface.lastButton)
}

// Destroy destroys the GTK window; the application quits with its last window
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.win.Destroy()
}
