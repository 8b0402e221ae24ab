package illumitermgtk

import "github.com/gotk3/gotk3/glib"

// idleLoop runs posted functions on the GTK main loop
type idleLoop struct{}

func (idleLoop) Post(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}
