// Package illumiterm is the toolkit-independent core of a single-window
// terminal emulator.
//
// A Session ties one Window and its terminal Surface to the Invocation that
// asked for them. It spawns the child through a Supervisor, keeps the window
// sized to the cell grid across font scale changes (Geometry), asks through a
// Gate before a close request kills a live child, and reports the child's exit
// status back to the Invocation exactly once.
//
// Everything here runs on a single loop thread. Frontends (see the gtk and cli
// subpackages) implement Surface, Window and Prompter and deliver every event
// through a Loop.
//
// Basic usage:
//
//	inv := illumiterm.NewInvocation(cwd, os.Environ())
//	sess, err := illumiterm.NewSession(illumiterm.Options{
//	    Window:     win,
//	    Surface:    surf,
//	    Invocation: inv,
//	    Prompter:   prompter,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := sess.Start(); err != nil {
//	    return err
//	}
//	// run the frontend's loop until inv.Done() is closed
//	status, _ := inv.ExitStatus()
package illumiterm
