package illumiterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureChrome(t *testing.T) {
	chrome := CaptureChrome(Size{Width: 660, Height: 400}, CellMetrics{Width: 8, Height: 16}, Grid{Rows: 24, Cols: 80})
	assert.Equal(t, Size{Width: 20, Height: 16}, chrome)
}

func TestResizeForGrid(t *testing.T) {
	size := ResizeForGrid(Grid{Rows: 24, Cols: 80}, CellMetrics{Width: 9, Height: 18}, Size{Width: 20, Height: 16})
	assert.Equal(t, Size{Width: 740, Height: 448}, size)
}

func TestApplyScaleIsUnbounded(t *testing.T) {
	scale := 1.0
	for i := 0; i < 100; i++ {
		scale = ApplyScale(scale, ZoomFactor)
	}
	assert.Greater(t, scale, 1e5)

	scale = 1.0
	for i := 0; i < 100; i++ {
		scale = ApplyScale(scale, 1/ZoomFactor)
	}
	assert.Less(t, scale, 1e-5)
	assert.Greater(t, scale, 0.0)
}

func TestGeometryZoomKeepsGrid(t *testing.T) {
	surf := newFakeSurface()
	win := newFakeWindow(testWindowSize)
	geom := NewGeometry(surf, win)

	size := geom.Zoom(ZoomFactor)

	// Chrome measured with the old 8x16 cells stays 20x16
	assert.Equal(t, Size{Width: 80*9 + 20, Height: 24*18 + 16}, size)
	assert.Equal(t, size, win.Size())
	assert.InDelta(t, 1.125, surf.FontScale(), 1e-9)

	size = geom.Zoom(1 / ZoomFactor)
	assert.Equal(t, testWindowSize, size)
	assert.InDelta(t, 1.0, surf.FontScale(), 1e-9)
}

func TestGeometryInvariantAfterResize(t *testing.T) {
	surf := newFakeSurface()
	win := newFakeWindow(testWindowSize)
	geom := NewGeometry(surf, win)
	chrome := geom.Snapshot().Chrome

	for _, factor := range []float64{ZoomFactor, ZoomFactor, 1 / ZoomFactor, ZoomFactor} {
		geom.Zoom(factor)
		cell := surf.CellMetrics()
		grid := surf.Grid()
		require.Equal(t, grid.Rows*cell.Height+chrome.Height, win.Size().Height)
		require.Equal(t, grid.Cols*cell.Width+chrome.Width, win.Size().Width)
	}
}

func TestGeometryReset(t *testing.T) {
	surf := newFakeSurface()
	win := newFakeWindow(testWindowSize)
	geom := NewGeometry(surf, win)
	assert.Equal(t, 10.0, geom.DefaultFont().Size)

	geom.Zoom(ZoomFactor)
	surf.SetFont(surf.Font().WithSize(20))
	win.Resize(ResizeForGrid(surf.Grid(), surf.CellMetrics(), Size{Width: 20, Height: 16}))

	size := geom.Reset()

	assert.Equal(t, 1.0, surf.FontScale())
	assert.Equal(t, 10.0, surf.Font().Size)
	assert.Equal(t, "Monospace", surf.Font().Family)
	assert.Equal(t, testWindowSize, size)
}

func TestGeometryResetWindow(t *testing.T) {
	surf := newFakeSurface()
	win := newFakeWindow(testWindowSize)
	geom := NewGeometry(surf, win)

	geom.Zoom(ZoomFactor)
	geom.ResetWindow()

	assert.Equal(t, Size{Width: 640, Height: 460}, win.Size())
	// Scale is left alone
	assert.InDelta(t, ZoomFactor, surf.FontScale(), 1e-9)
}
