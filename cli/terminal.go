package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"
	"github.com/phroun/illumiterm"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// fallbackCell is assumed when the host terminal does not report its pixel
// size
var fallbackCell = illumiterm.CellMetrics{Width: 8, Height: 16}

// Options configures terminal creation
type Options struct {
	In     io.Reader                  // Host input (default: os.Stdin)
	Out    io.Writer                  // Host output (default: os.Stdout)
	Font   illumiterm.FontDescription // Recorded only; the host owns its font
	Logger *zap.Logger                // nil discards
}

// Terminal runs a session inside the host terminal. Child output is passed
// through untouched, the host terminal plays the window and xterm control
// sequences carry title and size changes.
type Terminal struct {
	in      io.Reader
	out     io.Writer
	inFd    int // -1 unless In is a terminal
	outFile *os.File

	// reader cancels the pending host read on Stop when the platform allows
	reader cancelreader.CancelReader

	log   *zap.Logger
	queue *illumiterm.Queue
	input chan []byte

	window  *Window
	surface *Surface

	// Original terminal state for restoration
	oldState *term.State
}

// New creates a terminal on the given host streams
func New(opts Options) *Terminal {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	t := &Terminal{
		in:    opts.In,
		out:   opts.Out,
		inFd:  -1,
		log:   opts.Logger.Named("cli"),
		queue: illumiterm.NewQueue(256),
		input: make(chan []byte, 16),
	}
	if f, ok := opts.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.inFd = int(f.Fd())
	}
	if f, ok := opts.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.outFile = f
	}

	t.window = newWindow(t)
	t.surface = newSurface(t, opts.Font)
	return t
}

// Window returns the host terminal window
func (t *Terminal) Window() *Window {
	return t.window
}

// Surface returns the passthrough terminal surface
func (t *Terminal) Surface() *Surface {
	return t.surface
}

// Prompter returns a prompter that asks on the host terminal
func (t *Terminal) Prompter() illumiterm.Prompter {
	return &prompter{t: t}
}

// Loop returns the loop every session callback runs on
func (t *Terminal) Loop() illumiterm.Loop {
	return t.queue
}

// Start enters raw mode and starts reading host input
func (t *Terminal) Start() error {
	if t.inFd >= 0 {
		oldState, err := term.MakeRaw(t.inFd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		t.oldState = oldState
	}
	if r, err := cancelreader.NewReader(t.in); err == nil {
		t.reader = r
	} else {
		t.log.Debug("host input is not cancelable", zap.Error(err))
	}
	go t.readInput()
	return nil
}

// Run dispatches loop work, host input and signals until done is closed or
// ctx ends. It must be called from the goroutine that owns the session.
func (t *Terminal) Run(ctx context.Context, done <-chan struct{}) error {
	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, syscall.SIGWINCH, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigs)

	input := (<-chan []byte)(t.input)
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.queue.C():
			fn()
		case data, ok := <-input:
			if !ok {
				input = nil
				t.log.Debug("host input closed")
				t.window.requestClose()
				continue
			}
			t.handleInput(data)
		case sig := <-sigs:
			t.handleSignal(sig)
		}
	}
}

// Stop restores the host terminal. Work posted afterwards is dropped.
func (t *Terminal) Stop() error {
	t.queue.Close()
	if t.reader != nil {
		t.reader.Cancel()
	}
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.inFd, t.oldState)
	t.oldState = nil
	return err
}

// readInput copies host input to the input channel until EOF
func (t *Terminal) readInput() {
	defer close(t.input)
	var in io.Reader = t.in
	if t.reader != nil {
		in = t.reader
		defer t.reader.Close()
	}
	for {
		buf := make([]byte, 1024)
		n, err := in.Read(buf)
		if n > 0 {
			t.input <- buf[:n]
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, cancelreader.ErrCanceled) {
				t.log.Debug("host input read failed", zap.Error(err))
			}
			return
		}
	}
}

// handleInput offers recognised keys to the session and forwards the rest
func (t *Terminal) handleInput(data []byte) {
	for _, ev := range decodeInput(data) {
		if ev.hasKey && t.surface.keyPressed.Emit(ev.key) {
			continue
		}
		t.surface.write(ev.raw)
	}
}

func (t *Terminal) handleSignal(sig os.Signal) {
	if sig == syscall.SIGWINCH {
		t.surface.hostResized()
		return
	}
	t.log.Info("close requested by signal", zap.Stringer("signal", sig))
	t.window.requestClose()
}

// hostGrid returns the host terminal's size in cells
func (t *Terminal) hostGrid() illumiterm.Grid {
	if t.outFile != nil {
		cols, rows, err := term.GetSize(int(t.outFile.Fd()))
		if err == nil && cols > 0 && rows > 0 {
			return illumiterm.Grid{Rows: rows, Cols: cols}
		}
	}
	return illumiterm.Grid{Rows: 24, Cols: 80}
}

// hostPixels returns the host terminal's text area in pixels, if it tells us
func (t *Terminal) hostPixels() (illumiterm.Size, bool) {
	if t.outFile == nil {
		return illumiterm.Size{}, false
	}
	ws, err := pty.GetsizeFull(t.outFile)
	if err != nil || ws.X == 0 || ws.Y == 0 {
		return illumiterm.Size{}, false
	}
	return illumiterm.Size{Width: int(ws.X), Height: int(ws.Y)}, true
}

func (t *Terminal) cellMetrics() illumiterm.CellMetrics {
	px, ok := t.hostPixels()
	if !ok {
		return fallbackCell
	}
	grid := t.hostGrid()
	return illumiterm.CellMetrics{Width: px.Width / grid.Cols, Height: px.Height / grid.Rows}
}
