package illumitermgtk

import (
	"fmt"
	"strings"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/illumiterm"
	"github.com/phroun/illumiterm/internal/vt"
	"go.uber.org/zap"
)

// Surface shows child output as plain text in a GtkTextView. The child is
// told it runs on a dumb terminal.
type Surface struct {
	log *zap.Logger

	scrolled  *gtk.ScrolledWindow
	view      *gtk.TextView
	text      *gtk.TextBuffer
	end       *gtk.TextMark
	css       *gtk.CssProvider
	clipboard *gtk.Clipboard

	scale    float64
	font     illumiterm.FontDescription
	behavior illumiterm.Behavior
	grid     illumiterm.Grid

	spawner *illumiterm.Spawner
	proc    *illumiterm.Process
	filter  vt.Filter

	// lastButton is the press that may open the context menu
	lastButton *gdk.Event

	childExited  illumiterm.Signal[int]
	titleChanged illumiterm.Signal[string]
	keyPressed   illumiterm.Signal[illumiterm.KeyEvent]
	buttonPress  illumiterm.Signal[illumiterm.ButtonEvent]
}

// NewSurface creates the text view and its scrolled container
func NewSurface(font illumiterm.FontDescription, log *zap.Logger) (*Surface, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Surface{
		log:      log,
		scale:    1.0,
		font:     font,
		behavior: illumiterm.DefaultBehavior(),
		grid:     illumiterm.Grid{Rows: 24, Cols: 80},
		spawner:  &illumiterm.Spawner{Loop: idleLoop{}, Log: log},
	}

	var err error
	s.scrolled, err = gtk.ScrolledWindowNew(nil, nil)
	if err != nil {
		return nil, err
	}
	s.scrolled.SetPolicy(gtk.POLICY_NEVER, gtk.POLICY_AUTOMATIC)

	s.view, err = gtk.TextViewNew()
	if err != nil {
		return nil, err
	}
	s.view.SetEditable(false)
	s.view.SetCursorVisible(false)
	s.view.SetWrapMode(gtk.WRAP_CHAR)
	s.view.SetMonospace(true)
	s.view.SetCanFocus(true)
	s.view.SetName("illumiterm-surface")

	s.text, err = s.view.GetBuffer()
	if err != nil {
		return nil, err
	}
	// Right gravity keeps the mark after text inserted at the end
	s.end = s.text.CreateMark("output-end", s.text.GetEndIter(), false)

	s.css, err = gtk.CssProviderNew()
	if err != nil {
		return nil, err
	}
	style, err := s.view.GetStyleContext()
	if err != nil {
		return nil, err
	}
	style.AddProvider(s.css, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	s.applyFont()

	s.clipboard, _ = gtk.ClipboardGet(gdk.SELECTION_CLIPBOARD)

	s.view.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.KEY_PRESS_MASK))
	s.view.Connect("key-press-event", s.onKeyPress)
	s.view.Connect("button-press-event", s.onButtonPress)
	s.view.Connect("size-allocate", s.onSizeAllocate)

	s.scrolled.Add(s.view)
	return s, nil
}

// Widget returns the container to pack into a window
func (s *Surface) Widget() gtk.IWidget {
	return s.scrolled
}

// Grid returns the cell grid from the last allocation
func (s *Surface) Grid() illumiterm.Grid {
	return s.grid
}

// CellMetrics measures one cell of the current font at the current scale
func (s *Surface) CellMetrics() illumiterm.CellMetrics {
	return measureCell(s.font.Family, s.font.Size*s.scale)
}

func (s *Surface) FontScale() float64 {
	return s.scale
}

func (s *Surface) SetFontScale(scale float64) {
	s.scale = scale
	s.applyFont()
}

func (s *Surface) Font() illumiterm.FontDescription {
	return s.font
}

func (s *Surface) SetFont(font illumiterm.FontDescription) {
	s.font = font
	s.applyFont()
}

func (s *Surface) applyFont() {
	css := fmt.Sprintf("#illumiterm-surface { font-family: %q; font-size: %.2fpt; }",
		s.font.Family, s.font.Size*s.scale)
	if err := s.css.LoadFromData(css); err != nil {
		s.log.Warn("font css rejected", zap.String("family", s.font.Family), zap.Error(err))
	}
}

// Configure applies the settings a text view can honor and keeps the rest
func (s *Surface) Configure(b illumiterm.Behavior) {
	s.behavior = b
	s.view.SetCursorVisible(b.CursorBlink)
	s.trimScrollback()
}

// SpawnAsync starts req on a new PTY sized to the current grid
func (s *Surface) SpawnAsync(req illumiterm.SpawnRequest, done illumiterm.SpawnDone) {
	req.Env = dumbEnviron(req.Env)
	s.spawner.Spawn(req, s.grid, illumiterm.ProcessHandler{
		Started: func(p *illumiterm.Process, err error) {
			if err != nil {
				done(0, err)
				return
			}
			s.proc = p
			done(p.PID(), nil)
		},
		Output: s.output,
		Exited: func(status int) {
			s.proc = nil
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
		s.log.Warn("hangup failed", zap.Int("pid", s.proc.PID()), zap.Error(err))
	}
}

// CopyClipboard copies the selected text
func (s *Surface) CopyClipboard() {
	if s.clipboard == nil {
		return
	}
	start, end, ok := s.text.GetSelectionBounds()
	if !ok {
		return
	}
	text, err := s.text.GetText(start, end, false)
	if err != nil || text == "" {
		return
	}
	s.clipboard.SetText(text)
}

// PasteClipboard sends the clipboard text to the child, bracketed when it
// spans lines or carries control characters
func (s *Surface) PasteClipboard() {
	if s.clipboard == nil {
		return
	}
	text, err := s.clipboard.WaitForText()
	if err != nil || text == "" {
		return
	}
	if strings.ContainsFunc(text, func(r rune) bool { return r < 0x20 }) {
		text = "\x1b[200~" + text + "\x1b[201~"
	}
	s.write([]byte(text))
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

func (s *Surface) OnButtonPress(fn func(ev illumiterm.ButtonEvent) bool) illumiterm.Subscription {
	return s.buttonPress.Connect(fn)
}

func (s *Surface) output(data []byte) {
	for _, ev := range s.filter.Feed(data) {
		switch ev.Kind {
		case vt.Text:
			s.text.Insert(s.text.GetEndIter(), ev.Text)
		case vt.Backspace:
			end := s.text.GetEndIter()
			start := s.text.GetEndIter()
			if start.BackwardChar() {
				s.text.Delete(start, end)
			}
		case vt.Bell:
			if s.behavior.AudibleBell {
				if display, err := gdk.DisplayGetDefault(); err == nil {
					display.Beep()
				}
			}
		case vt.Title:
			s.titleChanged.Emit(ev.Text)
		}
	}
	s.trimScrollback()
	if s.behavior.ScrollOnOutput {
		s.scrollToEnd()
	}
}

// trimScrollback drops the oldest lines beyond the grid plus scrollback
func (s *Surface) trimScrollback() {
	if s.behavior.ScrollbackLines < 0 {
		return
	}
	keep := s.grid.Rows + s.behavior.ScrollbackLines
	extra := s.text.GetLineCount() - keep
	if extra <= 0 {
		return
	}
	s.text.Delete(s.text.GetStartIter(), s.text.GetIterAtLine(extra))
}

func (s *Surface) scrollToEnd() {
	s.view.ScrollToMark(s.end, 0, false, 0, 1)
}

// write sends input to the child
func (s *Surface) write(data []byte) {
	if s.proc == nil {
		return
	}
	if _, err := s.proc.Write(data); err != nil {
		s.log.Debug("pty write failed", zap.Error(err))
		return
	}
	if s.behavior.ScrollOnKeystroke {
		s.scrollToEnd()
	}
}

func (s *Surface) onKeyPress(_ *gtk.TextView, ev *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(ev)
	keyval, state := key.KeyVal(), key.State()
	if isModifierKey(keyval) {
		return false
	}
	if s.keyPressed.Emit(keyEvent(keyval, state)) {
		return true
	}
	data := keyBytes(keyval, state)
	if data == nil {
		return false
	}
	s.write(data)
	return true
}

func (s *Surface) onButtonPress(_ *gtk.TextView, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	s.lastButton = ev
	if btn.Button() == illumiterm.ButtonPrimary {
		s.view.GrabFocus()
	}
	return s.buttonPress.Emit(illumiterm.ButtonEvent{
		Button: int(btn.Button()),
		X:      btn.X(),
		Y:      btn.Y(),
	})
}

// onSizeAllocate recomputes the grid and resizes the PTY when it changes
func (s *Surface) onSizeAllocate() {
	alloc := s.view.GetAllocation()
	cell := s.CellMetrics()
	grid := illumiterm.Grid{
		Rows: max(alloc.GetHeight()/cell.Height, 1),
		Cols: max(alloc.GetWidth()/cell.Width, 1),
	}
	if grid == s.grid {
		return
	}
	s.grid = grid
	if s.proc == nil {
		return
	}
	if err := s.proc.Resize(grid.Cols, grid.Rows); err != nil {
		s.log.Debug("pty resize failed", zap.Error(err))
	}
}

// dumbEnviron replaces terminal identification: the text view interprets no
// escape sequences
func dumbEnviron(env []string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "TERM=") || strings.HasPrefix(kv, "COLORTERM=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "TERM=dumb")
}
