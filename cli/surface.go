package cli

import (
	"io"

	"github.com/phroun/illumiterm"
	"github.com/phroun/illumiterm/internal/vt"
	"go.uber.org/zap"
)

// Surface forwards child output to the host terminal and host input to the
// child. The host terminal does all the rendering.
type Surface struct {
	t        *Terminal
	scale    float64
	font     illumiterm.FontDescription
	behavior illumiterm.Behavior

	spawner *illumiterm.Spawner
	proc    *illumiterm.Process
	pty     io.Writer
	filter  vt.Filter

	childExited  illumiterm.Signal[int]
	titleChanged illumiterm.Signal[string]
	keyPressed   illumiterm.Signal[illumiterm.KeyEvent]
	buttonPress  illumiterm.Signal[illumiterm.ButtonEvent]
}

func newSurface(t *Terminal, font illumiterm.FontDescription) *Surface {
	return &Surface{
		t:       t,
		scale:   1.0,
		font:    font,
		spawner: &illumiterm.Spawner{Loop: t.queue, Log: t.log},
	}
}

// Grid returns the host terminal's cell grid
func (s *Surface) Grid() illumiterm.Grid {
	return s.t.hostGrid()
}

// CellMetrics returns the host's cell size. Font scale does not change it.
func (s *Surface) CellMetrics() illumiterm.CellMetrics {
	return s.t.cellMetrics()
}

func (s *Surface) FontScale() float64 {
	return s.scale
}

// SetFontScale records scale. The host terminal keeps its own font.
func (s *Surface) SetFontScale(scale float64) {
	s.scale = scale
	s.t.log.Debug("font scale recorded", zap.Float64("scale", scale))
}

func (s *Surface) Font() illumiterm.FontDescription {
	return s.font
}

func (s *Surface) SetFont(font illumiterm.FontDescription) {
	s.font = font
}

// Configure records b. Scrollback and cursor are the host's.
func (s *Surface) Configure(b illumiterm.Behavior) {
	s.behavior = b
}

// Behavior returns the settings last passed to Configure
func (s *Surface) Behavior() illumiterm.Behavior {
	return s.behavior
}

// SpawnAsync starts req on a new PTY sized to the host terminal
func (s *Surface) SpawnAsync(req illumiterm.SpawnRequest, done illumiterm.SpawnDone) {
	s.spawner.Spawn(req, s.Grid(), illumiterm.ProcessHandler{
		Started: func(p *illumiterm.Process, err error) {
			if err != nil {
				done(0, err)
				return
			}
			s.proc, s.pty = p, p
			done(p.PID(), nil)
		},
		Output: s.output,
		Exited: func(status int) {
			s.proc, s.pty = nil, nil
			s.childExited.Emit(status)
		},
	})
}

// Hangup sends SIGHUP to the child's process group
func (s *Surface) Hangup() {
	if s.proc == nil {
		return
	}
	if err := s.proc.Hangup(); err != nil {
		s.t.log.Warn("hangup failed", zap.Int("pid", s.proc.PID()), zap.Error(err))
	}
}

// CopyClipboard does nothing: selection belongs to the host terminal
func (s *Surface) CopyClipboard() {
	s.t.log.Debug("copy is handled by the host terminal")
}

// PasteClipboard does nothing: the host terminal pastes as input
func (s *Surface) PasteClipboard() {
	s.t.log.Debug("paste is handled by the host terminal")
}

func (s *Surface) OnChildExited(fn func(status int)) illumiterm.Subscription {
	return s.childExited.Listen(fn)
}

func (s *Surface) OnTitleChanged(fn func(title string)) illumiterm.Subscription {
	return s.titleChanged.Listen(fn)
}

func (s *Surface) OnKeyPress(fn func(ev illumiterm.KeyEvent) bool) illumiterm.Subscription {
	return s.keyPressed.Connect(fn)
}

// OnButtonPress never fires; mouse reporting is left to the child
func (s *Surface) OnButtonPress(fn func(ev illumiterm.ButtonEvent) bool) illumiterm.Subscription {
	return s.buttonPress.Connect(fn)
}

func (s *Surface) output(data []byte) {
	if _, err := s.t.out.Write(data); err != nil {
		s.t.log.Debug("host write failed", zap.Error(err))
	}
	for _, title := range s.filter.Titles(data) {
		s.titleChanged.Emit(title)
	}
}

// write sends input to the child
func (s *Surface) write(data []byte) {
	if s.pty == nil {
		return
	}
	if _, err := s.pty.Write(data); err != nil {
		s.t.log.Debug("pty write failed", zap.Error(err))
	}
}

func (s *Surface) hostResized() {
	if s.proc == nil {
		return
	}
	grid := s.Grid()
	if err := s.proc.Resize(grid.Cols, grid.Rows); err != nil {
		s.t.log.Debug("pty resize failed", zap.Error(err))
	}
}
