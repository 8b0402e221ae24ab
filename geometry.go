package illumiterm

// ZoomFactor is the font scale step used for zooming in and out
const ZoomFactor = 1.125

// DefaultWindowSize is the window size restored by ResetWindow
var DefaultWindowSize = Size{Width: 640, Height: 460}

// Snapshot is the geometry captured at the moment of a resize decision
type Snapshot struct {
	Grid   Grid
	Cell   CellMetrics
	Chrome Size
}

// CaptureChrome returns the part of the window not covered by terminal cells.
// It must be called with the cell metrics in effect before any scale change.
func CaptureChrome(window Size, cell CellMetrics, grid Grid) Size {
	return Size{
		Width:  window.Width - grid.Cols*cell.Width,
		Height: window.Height - grid.Rows*cell.Height,
	}
}

// ApplyScale multiplies the current font scale by factor. The result is not
// clamped.
func ApplyScale(current, factor float64) float64 {
	return current * factor
}

// ResizeForGrid returns the window size that fits grid at the given cell size
func ResizeForGrid(grid Grid, cell CellMetrics, chrome Size) Size {
	return Size{
		Width:  grid.Cols*cell.Width + chrome.Width,
		Height: grid.Rows*cell.Height + chrome.Height,
	}
}

// Geometry keeps the window sized to the terminal grid across font changes
type Geometry struct {
	surface     Surface
	window      Window
	defaultFont FontDescription
}

// NewGeometry records the surface's current font as the default restored by
// Reset
func NewGeometry(surface Surface, window Window) *Geometry {
	return &Geometry{
		surface:     surface,
		window:      window,
		defaultFont: surface.Font(),
	}
}

// DefaultFont returns the font recorded at creation
func (g *Geometry) DefaultFont() FontDescription {
	return g.defaultFont
}

// Snapshot captures grid, cell metrics and chrome as they are right now
func (g *Geometry) Snapshot() Snapshot {
	grid := g.surface.Grid()
	cell := g.surface.CellMetrics()
	return Snapshot{
		Grid:   grid,
		Cell:   cell,
		Chrome: CaptureChrome(g.window.Size(), cell, grid),
	}
}

// Zoom scales the font by factor and resizes the window so the grid keeps its
// row and column count. Returns the new window size.
func (g *Geometry) Zoom(factor float64) Size {
	return g.rescale(func() {
		g.surface.SetFontScale(ApplyScale(g.surface.FontScale(), factor))
	})
}

// Reset restores scale 1.0 and the default font size, then resizes the window
// to fit the grid
func (g *Geometry) Reset() Size {
	return g.rescale(func() {
		g.surface.SetFontScale(1.0)
		g.surface.SetFont(g.surface.Font().WithSize(g.defaultFont.Size))
	})
}

// ResetWindow sets the window to DefaultWindowSize regardless of the grid
func (g *Geometry) ResetWindow() {
	g.window.Resize(DefaultWindowSize)
}

// rescale runs capture, mutate, resize in that order. The chrome has to be
// measured with the old cell metrics.
func (g *Geometry) rescale(mutate func()) Size {
	before := g.Snapshot()
	mutate()
	size := ResizeForGrid(g.surface.Grid(), g.surface.CellMetrics(), before.Chrome)
	g.window.Resize(size)
	return size
}
