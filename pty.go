package illumiterm

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"
)

// PTY is the master side of a pseudoterminal with a child attached
type PTY interface {
	// Read reads child output
	Read(p []byte) (n int, err error)

	// Write sends input to the child
	Write(p []byte) (n int, err error)

	// Resize resizes the PTY
	Resize(cols, rows int) error

	// Close closes the master side
	Close() error
}

// outputDrainTimeout bounds how long exit notification waits for the reader
// to see EOF. Background jobs can keep the slave side open indefinitely.
const outputDrainTimeout = 250 * time.Millisecond

// Process is a child running on a pseudoterminal
type Process struct {
	cmd  *exec.Cmd
	ptmx *os.File
}

// PID returns the child's process id
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Read reads from the PTY
func (p *Process) Read(b []byte) (int, error) {
	return p.ptmx.Read(b)
}

// Write writes to the PTY
func (p *Process) Write(b []byte) (int, error) {
	return p.ptmx.Write(b)
}

// Resize resizes the PTY
func (p *Process) Resize(cols, rows int) error {
	return pty.Setsize(p.ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Close closes the PTY
func (p *Process) Close() error {
	return p.ptmx.Close()
}

// Hangup sends SIGHUP to the child's process group
func (p *Process) Hangup() error {
	return hangupPID(p.PID())
}

// ProcessHandler receives process events. Every callback runs on the loop;
// nil callbacks are skipped.
type ProcessHandler struct {
	Started func(p *Process, err error)
	Output  func(data []byte)
	Exited  func(status int)
}

// Spawner starts children on fresh pseudoterminals and reports back through
// a Loop
type Spawner struct {
	Loop Loop
	Log  *zap.Logger
}

// Spawn starts req in the background with an initial size of grid. It returns
// immediately.
func (sp *Spawner) Spawn(req SpawnRequest, grid Grid, h ProcessHandler) {
	log := sp.Log
	if log == nil {
		log = zap.NewNop()
	}
	go sp.run(req, grid, h, log)
}

func (sp *Spawner) run(req SpawnRequest, grid Grid, h ProcessHandler, log *zap.Logger) {
	if len(req.Argv) == 0 {
		sp.post(func() { callStarted(h, nil, errors.New("empty argv")) })
		return
	}

	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir
	cmd.Env = req.Env

	ptmx, err := pty.StartWithSize(cmd, winsize(grid))
	if err != nil {
		sp.post(func() { callStarted(h, nil, err) })
		return
	}

	p := &Process{cmd: cmd, ptmx: ptmx}
	sp.post(func() { callStarted(h, p, nil) })

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		sp.readLoop(ptmx, h, log)
	}()

	status := ExitStatusOf(cmd.Wait())
	select {
	case <-readDone:
	case <-time.After(outputDrainTimeout):
		log.Debug("pty still open after child exit", zap.Int("pid", p.PID()))
	}
	ptmx.Close()

	sp.post(func() {
		if h.Exited != nil {
			h.Exited(status)
		}
	})
}

func (sp *Spawner) readLoop(r io.Reader, h ProcessHandler, log *zap.Logger) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 && h.Output != nil {
			data := make([]byte, n)
			copy(data, buf[:n])
			sp.post(func() { h.Output(data) })
		}
		if err != nil {
			// EIO is how Linux reports the slave side going away
			if !errors.Is(err, io.EOF) && !errors.Is(err, syscall.EIO) && !errors.Is(err, os.ErrClosed) {
				log.Debug("pty read ended", zap.Error(err))
			}
			return
		}
	}
}

func (sp *Spawner) post(fn func()) {
	if sp.Loop == nil {
		fn()
		return
	}
	sp.Loop.Post(fn)
}

func callStarted(h ProcessHandler, p *Process, err error) {
	if h.Started != nil {
		h.Started(p, err)
	}
}

func winsize(grid Grid) *pty.Winsize {
	cols, rows := grid.Cols, grid.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	return &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}
}

// ExitStatusOf converts the result of exec.Cmd.Wait to a shell-style exit
// status: the exit code, or 128+N for death by signal N
func ExitStatusOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}
