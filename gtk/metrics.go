package illumitermgtk

/*
#cgo pkg-config: gtk+-3.0 pangocairo
#include <stdlib.h>
#include <pango/pangocairo.h>

// Measure one character cell: the advance of "M" and the layout line height.
// Creates its own temporary surface so it works before the widget is realized.
static void illumiterm_cell_size(const char *font_family, double font_size,
                                 int *out_width, int *out_height) {
    cairo_surface_t *surface = cairo_image_surface_create(CAIRO_FORMAT_ARGB32, 1, 1);
    cairo_t *cr = cairo_create(surface);

    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_size(desc, (gint)(font_size * PANGO_SCALE));

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, "M", -1);

    int width, height;
    pango_layout_get_pixel_size(layout, &width, &height);
    *out_width = width;
    *out_height = height;

    pango_font_description_free(desc);
    g_object_unref(layout);

    cairo_destroy(cr);
    cairo_surface_destroy(surface);
}
*/
import "C"

import (
	"unsafe"

	"github.com/phroun/illumiterm"
)

// measureCell returns the cell size of family at points
func measureCell(family string, points float64) illumiterm.CellMetrics {
	cFamily := C.CString(family)
	defer C.free(unsafe.Pointer(cFamily))

	var width, height C.int
	C.illumiterm_cell_size(cFamily, C.double(points), &width, &height)

	cell := illumiterm.CellMetrics{Width: int(width), Height: int(height)}
	if cell.Width < 1 {
		cell.Width = 1
	}
	if cell.Height < 1 {
		cell.Height = 1
	}
	return cell
}
