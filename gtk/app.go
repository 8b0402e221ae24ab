package illumitermgtk

import (
	"errors"
	"os"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/illumiterm"
	"go.uber.org/zap"
)

const appID = "io.github.phroun.illumiterm"

// Options configures Run
type Options struct {
	Font   illumiterm.FontDescription
	Logger *zap.Logger // nil discards
}

// Run opens one terminal window for inv and runs the GTK main loop until the
// window is gone. It must be called from the main thread.
func Run(inv *illumiterm.Invocation, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("gtk")

	app, err := gtk.ApplicationNew(appID, glib.APPLICATION_NON_UNIQUE)
	if err != nil {
		return err
	}

	var startErr error
	activated := false
	app.Connect("activate", func() {
		if activated {
			return
		}
		activated = true
		if err := activate(app, inv, opts.Font, log); err != nil {
			startErr = err
			log.Error("could not open terminal window", zap.Error(err))
			inv.Report(1)
			app.Quit()
		}
	})

	app.Run([]string{os.Args[0]})
	if startErr != nil {
		return startErr
	}
	if _, ok := inv.ExitStatus(); !ok {
		return errors.New("main loop ended before the session reported")
	}
	return nil
}

func activate(app *gtk.Application, inv *illumiterm.Invocation, font illumiterm.FontDescription, log *zap.Logger) error {
	surface, err := NewSurface(font, log)
	if err != nil {
		return err
	}
	win, err := NewWindow(app, surface)
	if err != nil {
		return err
	}

	sess, err := illumiterm.NewSession(illumiterm.Options{
		Window:     win,
		Surface:    surface,
		Invocation: inv,
		Prompter:   dialogPrompter{parent: win},
		Logger:     log,
	})
	if err != nil {
		win.Destroy()
		return err
	}
	win.SetCommandHandler(sess.Execute)
	win.Show()

	if err := sess.Start(); err != nil {
		win.Destroy()
		return err
	}
	return nil
}
