package illumitermgtk

import (
	"fmt"
	"unicode/utf8"

	"github.com/gotk3/gotk3/gdk"
	"github.com/phroun/illumiterm"
)

// modifiers converts a GDK state mask. Lock masks are dropped.
func modifiers(state uint) illumiterm.Modifier {
	var mods illumiterm.Modifier
	if state&uint(gdk.SHIFT_MASK) != 0 {
		mods |= illumiterm.ModShift
	}
	if state&uint(gdk.CONTROL_MASK) != 0 {
		mods |= illumiterm.ModControl
	}
	if state&uint(gdk.MOD1_MASK) != 0 {
		mods |= illumiterm.ModAlt
	}
	if state&uint(gdk.SUPER_MASK|gdk.META_MASK) != 0 {
		mods |= illumiterm.ModSuper
	}
	return mods
}

// keyEvent describes a key press for shortcut lookup
func keyEvent(keyval, state uint) illumiterm.KeyEvent {
	ev := illumiterm.KeyEvent{Mods: modifiers(state)}
	switch keyval {
	case gdk.KEY_Page_Up, gdk.KEY_KP_Page_Up:
		ev.Key = illumiterm.KeyPageUp
	case gdk.KEY_Page_Down, gdk.KEY_KP_Page_Down:
		ev.Key = illumiterm.KeyPageDown
	case gdk.KEY_Home, gdk.KEY_KP_Home:
		ev.Key = illumiterm.KeyHome
	default:
		ev.Rune = gdk.KeyvalToUnicode(keyval)
	}
	return ev
}

func isModifierKey(keyval uint) bool {
	switch keyval {
	case gdk.KEY_Shift_L, gdk.KEY_Shift_R,
		gdk.KEY_Control_L, gdk.KEY_Control_R,
		gdk.KEY_Alt_L, gdk.KEY_Alt_R,
		gdk.KEY_Meta_L, gdk.KEY_Meta_R,
		gdk.KEY_Super_L, gdk.KEY_Super_R,
		gdk.KEY_Caps_Lock, gdk.KEY_Num_Lock:
		return true
	}
	return false
}

// keyBytes returns what the child should receive for a key press, or nil
func keyBytes(keyval, state uint) []byte {
	mods := modifiers(state)

	// xterm modifier parameter: 1 + shift + 2*alt + 4*ctrl
	mod := 1
	if mods&illumiterm.ModShift != 0 {
		mod++
	}
	if mods&illumiterm.ModAlt != 0 {
		mod += 2
	}
	if mods&illumiterm.ModControl != 0 {
		mod += 4
	}
	hasModifiers := mod > 1

	switch keyval {
	case gdk.KEY_Return, gdk.KEY_KP_Enter:
		return []byte{'\r'}
	case gdk.KEY_BackSpace:
		if mods&illumiterm.ModAlt != 0 {
			return []byte{0x1b, 0x7f}
		}
		return []byte{0x7f}
	case gdk.KEY_Tab:
		return []byte{'\t'}
	case gdk.KEY_Escape:
		return []byte{0x1b}
	case gdk.KEY_Up, gdk.KEY_KP_Up:
		return cursorKey('A', mod, hasModifiers)
	case gdk.KEY_Down, gdk.KEY_KP_Down:
		return cursorKey('B', mod, hasModifiers)
	case gdk.KEY_Right, gdk.KEY_KP_Right:
		return cursorKey('C', mod, hasModifiers)
	case gdk.KEY_Left, gdk.KEY_KP_Left:
		return cursorKey('D', mod, hasModifiers)
	case gdk.KEY_Home, gdk.KEY_KP_Home:
		return cursorKey('H', mod, hasModifiers)
	case gdk.KEY_End, gdk.KEY_KP_End:
		return cursorKey('F', mod, hasModifiers)
	case gdk.KEY_Page_Up, gdk.KEY_KP_Page_Up:
		return tildeKey(5, mod, hasModifiers)
	case gdk.KEY_Page_Down, gdk.KEY_KP_Page_Down:
		return tildeKey(6, mod, hasModifiers)
	case gdk.KEY_Insert, gdk.KEY_KP_Insert:
		return tildeKey(2, mod, hasModifiers)
	case gdk.KEY_Delete, gdk.KEY_KP_Delete:
		return tildeKey(3, mod, hasModifiers)
	}

	r := gdk.KeyvalToUnicode(keyval)
	if r == 0 {
		return nil
	}
	if mods&illumiterm.ModControl != 0 {
		switch {
		case r >= 'a' && r <= 'z':
			r -= 'a' - 1
		case r >= 'A' && r <= 'Z':
			r -= 'A' - 1
		case r >= '@' && r <= '_':
			r -= '@'
		case r == ' ':
			r = 0
		}
	}
	buf := make([]byte, 0, utf8.UTFMax+1)
	if mods&illumiterm.ModAlt != 0 {
		buf = append(buf, 0x1b)
	}
	return utf8.AppendRune(buf, r)
}

// cursorKey generates an arrow/Home/End sequence
// Without modifiers: ESC [ <key>
// With modifiers: ESC [ 1 ; <mod> <key>
func cursorKey(key byte, mod int, hasModifiers bool) []byte {
	if hasModifiers {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, key))
	}
	return []byte{0x1b, '[', key}
}

// tildeKey generates escape sequence for tilde-style keys (PgUp, PgDn, Insert, Delete)
func tildeKey(num int, mod int, hasModifiers bool) []byte {
	if hasModifiers {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", num, mod))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", num))
}
