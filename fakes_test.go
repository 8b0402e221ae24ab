package illumiterm

import "math"

// fakeSurface is a Surface whose cell size follows font scale and point size:
// 8x16 pixels at scale 1.0 and 10pt
type fakeSurface struct {
	grid  Grid
	scale float64
	font  FontDescription

	behaviors []Behavior
	requests  []SpawnRequest
	pending   []SpawnDone
	hangups   int
	copies    int
	pastes    int
	log       *[]string

	childExited  Signal[int]
	titleChanged Signal[string]
	keyPressed   Signal[KeyEvent]
	buttonPress  Signal[ButtonEvent]
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		grid:  Grid{Rows: 24, Cols: 80},
		scale: 1.0,
		font:  FontDescription{Family: "Monospace", Size: 10},
	}
}

func (f *fakeSurface) record(event string) {
	if f.log != nil {
		*f.log = append(*f.log, event)
	}
}

func (f *fakeSurface) Grid() Grid { return f.grid }

func (f *fakeSurface) CellMetrics() CellMetrics {
	k := f.scale * f.font.Size / 10
	return CellMetrics{
		Width:  int(math.Round(8 * k)),
		Height: int(math.Round(16 * k)),
	}
}

func (f *fakeSurface) FontScale() float64           { return f.scale }
func (f *fakeSurface) SetFontScale(scale float64)   { f.scale = scale }
func (f *fakeSurface) Font() FontDescription        { return f.font }
func (f *fakeSurface) SetFont(font FontDescription) { f.font = font }

func (f *fakeSurface) Configure(b Behavior) {
	f.record("configure")
	f.behaviors = append(f.behaviors, b)
}

func (f *fakeSurface) SpawnAsync(req SpawnRequest, done SpawnDone) {
	f.record("spawn")
	f.requests = append(f.requests, req)
	f.pending = append(f.pending, done)
}

// completeSpawn delivers the oldest pending spawn result
func (f *fakeSurface) completeSpawn(pid int, err error) {
	done := f.pending[0]
	f.pending = f.pending[1:]
	done(pid, err)
}

func (f *fakeSurface) Hangup() {
	f.record("hangup")
	f.hangups++
}

func (f *fakeSurface) CopyClipboard()  { f.copies++ }
func (f *fakeSurface) PasteClipboard() { f.pastes++ }

func (f *fakeSurface) OnChildExited(fn func(int)) Subscription {
	return f.childExited.Listen(fn)
}

func (f *fakeSurface) OnTitleChanged(fn func(string)) Subscription {
	return f.titleChanged.Listen(fn)
}

func (f *fakeSurface) OnKeyPress(fn func(KeyEvent) bool) Subscription {
	return f.keyPressed.Connect(fn)
}

func (f *fakeSurface) OnButtonPress(fn func(ButtonEvent) bool) Subscription {
	return f.buttonPress.Connect(fn)
}

type fakeWindow struct {
	size      Size
	title     string
	resizes   []Size
	popups    []ButtonEvent
	destroyed int
	log       *[]string

	closeRequest Signal[struct{}]
}

func newFakeWindow(size Size) *fakeWindow {
	return &fakeWindow{size: size}
}

func (w *fakeWindow) record(event string) {
	if w.log != nil {
		*w.log = append(*w.log, event)
	}
}

func (w *fakeWindow) Size() Size { return w.size }

func (w *fakeWindow) Resize(size Size) {
	w.size = size
	w.resizes = append(w.resizes, size)
}

func (w *fakeWindow) SetTitle(title string) { w.title = title }

func (w *fakeWindow) OnCloseRequest(fn func() bool) Subscription {
	return w.closeRequest.Connect(func(struct{}) bool { return fn() })
}

// requestClose simulates the window manager's close button. It reports
// whether a handler blocked the default close.
func (w *fakeWindow) requestClose() bool {
	return w.closeRequest.Emit(struct{}{})
}

func (w *fakeWindow) PopupContextMenu(ev ButtonEvent) {
	w.popups = append(w.popups, ev)
}

func (w *fakeWindow) Destroy() {
	w.record("destroy")
	w.destroyed++
}

// fakePrompter answers every question with answer
type fakePrompter struct {
	answer bool
	asked  []string
}

func (p *fakePrompter) Ask(title, message string) bool {
	p.asked = append(p.asked, title)
	return p.answer
}

// 8x16 cells, 24x80 grid, 20x16 chrome
var testWindowSize = Size{Width: 660, Height: 400}
