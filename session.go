package illumiterm

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is a session lifecycle state
type State int

const (
	StateCreated State = iota
	StateSpawning
	StateRunning
	StateClosing
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotCreated is returned by Start on a session that was already started
var ErrNotCreated = errors.New("session already started")

// Options configures a Session
type Options struct {
	Window     Window
	Surface    Surface
	Invocation *Invocation
	Prompter   Prompter    // nil closes without asking
	Logger     *zap.Logger // nil discards
}

// Session ties one window, its terminal surface and its child process to the
// invocation that asked for them. All methods must be called on the loop.
type Session struct {
	id      string
	window  Window
	surface Surface
	inv     *Invocation

	sup  *Supervisor
	geom *Geometry
	gate *Gate
	log  *zap.Logger

	state    State
	tornDown bool
	subs     Subscriptions
}

// NewSession creates a session in the Created state. The surface's current
// font is recorded as the default restored by zoom reset.
func NewSession(opts Options) (*Session, error) {
	if opts.Window == nil {
		return nil, errors.New("session needs a window")
	}
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Invocation == nil {
		return nil, errors.New("session needs an invocation")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()[:8]
	log = log.With(zap.String("session", id))

	return &Session{
		id:      id,
		window:  opts.Window,
		surface: opts.Surface,
		inv:     opts.Invocation,
		sup:     NewSupervisor(opts.Surface, log),
		geom:    NewGeometry(opts.Surface, opts.Window),
		gate:    NewGate(opts.Prompter),
		log:     log,
		state:   StateCreated,
	}, nil
}

// ID returns the short id used in log lines
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return s.state
}

// PID returns the child's process id once it is running
func (s *Session) PID() (int, bool) {
	return s.sup.PID()
}

// Geometry returns the session's geometry engine
func (s *Session) Geometry() *Geometry {
	return s.geom
}

// Start connects the surface and window events and spawns the child
func (s *Session) Start() error {
	if s.state != StateCreated {
		return ErrNotCreated
	}

	s.subs.Add(s.surface.OnTitleChanged(s.relayTitle))
	s.subs.Add(s.surface.OnKeyPress(s.HandleKey))
	s.subs.Add(s.surface.OnButtonPress(s.HandleButton))
	s.subs.Add(s.window.OnCloseRequest(func() bool {
		s.RequestClose()
		// The session destroys the window itself when it closes
		return true
	}))

	s.setState(StateSpawning)
	req := NewSpawnRequest(s.inv)
	if err := s.sup.Spawn(req, s.handleOutcome); err != nil {
		s.subs.Cancel()
		s.setState(StateCreated)
		return fmt.Errorf("spawn: %w", err)
	}
	return nil
}

func (s *Session) handleOutcome(o Outcome) {
	switch o.Kind {
	case OutcomeSpawned:
		if s.state == StateSpawning {
			s.setState(StateRunning)
		}
	case OutcomeSpawnFailed:
		s.log.Error("could not start child", zap.Error(o.Err))
		s.teardown(o.ExitStatus())
	case OutcomeChildExited:
		s.teardown(o.ExitStatus())
	}
}

// RequestClose handles a close request from the window or a menu. The user
// is asked first; it reports whether the session is closing.
func (s *Session) RequestClose() bool {
	if s.tornDown {
		return true
	}
	if s.gate.ConfirmClose() {
		s.log.Debug("close cancelled", zap.Stringer("state", s.state))
		return false
	}
	s.setState(StateClosing)
	s.sup.Hangup()
	s.teardown(0)
	return true
}

// teardown reports status and destroys the window. Only the first call does
// anything.
func (s *Session) teardown(status int) {
	if s.tornDown {
		s.log.Debug("teardown already done", zap.Int("status", status))
		return
	}
	s.tornDown = true
	s.setState(StateClosing)

	s.sup.Detach()
	s.subs.Cancel()

	if s.inv != nil {
		s.inv.Report(status)
		s.inv = nil
	}
	s.log.Info("session ended", zap.Int("status", status))

	s.setState(StateTerminated)
	s.window.Destroy()
}

func (s *Session) relayTitle(title string) {
	if s.tornDown {
		return
	}
	s.window.SetTitle(title)
}

// HandleKey runs the shortcut bound to ev, if any. It reports whether the
// event was consumed.
func (s *Session) HandleKey(ev KeyEvent) bool {
	cmd := LookupShortcut(ev)
	if cmd == CommandNone {
		return false
	}
	return s.Execute(cmd)
}

// HandleButton opens the context menu on a secondary button press
func (s *Session) HandleButton(ev ButtonEvent) bool {
	if ev.Button != ButtonSecondary || s.tornDown {
		return false
	}
	s.window.PopupContextMenu(ev)
	return true
}

// Execute runs cmd. It reports whether the command was recognised.
func (s *Session) Execute(cmd Command) bool {
	if s.tornDown {
		return false
	}
	switch cmd {
	case CommandZoomIn:
		s.logResize(cmd, s.geom.Zoom(ZoomFactor))
	case CommandZoomOut:
		s.logResize(cmd, s.geom.Zoom(1/ZoomFactor))
	case CommandZoomReset:
		s.logResize(cmd, s.geom.Reset())
		s.geom.ResetWindow()
	case CommandCopy:
		s.surface.CopyClipboard()
	case CommandPaste:
		s.surface.PasteClipboard()
	case CommandClose:
		s.RequestClose()
	default:
		return false
	}
	return true
}

func (s *Session) logResize(cmd Command, size Size) {
	s.log.Debug("window resized",
		zap.Stringer("command", cmd),
		zap.Float64("scale", s.surface.FontScale()),
		zap.Int("width", size.Width),
		zap.Int("height", size.Height))
}

func (s *Session) setState(state State) {
	if s.state == state {
		return
	}
	s.log.Debug("state change",
		zap.Stringer("from", s.state),
		zap.Stringer("to", state))
	s.state = state
}
