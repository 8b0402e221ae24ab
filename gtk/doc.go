// Package illumitermgtk is the GTK 3 frontend of illumiterm.
//
// The surface is a read-only GtkTextView: the child runs with TERM=dumb and
// its output is shown as plain text, with OSC 0/2 titles and BEL picked out
// on the way. Key presses are encoded xterm style and written to the PTY.
// All events are delivered on the GTK main loop.
//
// Prerequisites:
//
//	Linux: sudo apt install libgtk-3-dev
//	macOS: brew install gtk+3
//
// # Basic Usage
//
//	runtime.LockOSThread()
//	inv := illumiterm.NewInvocation(cwd, os.Environ())
//	if err := illumitermgtk.Run(inv, illumitermgtk.Options{Logger: log}); err != nil {
//	    return err
//	}
//	status, _ := inv.ExitStatus()
package illumitermgtk
