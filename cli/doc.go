// Package cli runs an illumiterm session inside the terminal it was started
// from.
//
// Nothing is emulated here: the child's output goes straight to the host
// terminal and host input goes straight to the child. The host terminal plays
// the window. Titles are set with OSC 0 and resizes are requested with
// XTWINOPS, which many terminals ignore.
//
// Shortcuts need a host that reports control+shift chords, either as
// modified legacy keys (CSI 5;6~) or through modifyOtherKeys / the kitty
// keyboard protocol. A plain Ctrl+Shift+C arrives as ^C and goes to the child.
//
// # Basic Usage
//
//	t := cli.New(cli.Options{Logger: log})
//	if err := t.Start(); err != nil {
//	    return err
//	}
//	defer t.Stop()
//
//	sess, err := illumiterm.NewSession(illumiterm.Options{
//	    Window:     t.Window(),
//	    Surface:    t.Surface(),
//	    Invocation: inv,
//	    Prompter:   t.Prompter(),
//	})
//	...
//	err = t.Run(ctx, inv.Done())
package cli
