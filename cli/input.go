package cli

import (
	"strconv"
	"strings"

	"github.com/phroun/illumiterm"
)

// inputEvent is one piece of host input. Recognised key sequences carry a
// key event; raw always holds the bytes to forward if nobody consumes it.
type inputEvent struct {
	key    illumiterm.KeyEvent
	hasKey bool
	raw    []byte
}

// CSI modifier parameter bits (value minus one)
const (
	modParamShift = 1 << iota
	modParamAlt
	modParamCtrl
	modParamSuper
	modParamHyper
	modParamMeta
	modParamCapsLock
	modParamNumLock
)

// decodeInput splits data into key events and plain runs. Sequences that
// are not interesting stay inside the surrounding plain run.
func decodeInput(data []byte) []inputEvent {
	var events []inputEvent
	start := 0
	flush := func(end int) {
		if end > start {
			events = append(events, inputEvent{raw: data[start:end]})
		}
	}

	for i := 0; i < len(data); {
		if data[i] != 0x1b {
			i++
			continue
		}
		consumed, key, ok := parseEscapeSequence(data[i:])
		if consumed == 0 {
			// Lone ESC, Alt+key or a sequence cut short by the read
			i++
			continue
		}
		if !ok {
			i += consumed
			continue
		}
		flush(i)
		events = append(events, inputEvent{key: key, hasKey: true, raw: data[i : i+consumed]})
		i += consumed
		start = i
	}
	flush(len(data))
	return events
}

// parseEscapeSequence reads one sequence at the start of seq. It returns the
// number of bytes it spans (0 if incomplete or not a sequence) and the key it
// encodes, if it is one we care about.
func parseEscapeSequence(seq []byte) (consumed int, key illumiterm.KeyEvent, ok bool) {
	if len(seq) < 2 {
		return 0, key, false
	}
	switch seq[1] {
	case '[':
		return parseCSISequence(seq)
	case 'O':
		return parseSS3Sequence(seq)
	}
	return 0, key, false
}

// parseCSISequence handles ESC [ params final. Besides the legacy
// "5;6~" form it understands xterm modifyOtherKeys ("27;mod;code~") and the
// kitty keyboard protocol ("code;mod u").
func parseCSISequence(seq []byte) (consumed int, key illumiterm.KeyEvent, ok bool) {
	i := 2
	for i < len(seq) && seq[i] >= 0x30 && seq[i] <= 0x3f {
		i++
	}
	for i < len(seq) && seq[i] >= 0x20 && seq[i] <= 0x2f {
		i++
	}
	if i >= len(seq) {
		return 0, key, false
	}
	final := seq[i]
	if final < 0x40 || final > 0x7e {
		return 0, key, false
	}
	consumed = i + 1

	params := string(seq[2:i])
	if params != "" && (params[0] < '0' || params[0] > '9') && params[0] != ';' {
		// Private sequences (mouse reports, focus) are not keys
		return consumed, key, false
	}
	nums := splitParams(params)

	switch final {
	case 'H':
		key = illumiterm.KeyEvent{Key: illumiterm.KeyHome, Mods: modifiers(nums, 1)}
		return consumed, key, true
	case '~':
		switch param(nums, 0, 0) {
		case 1, 7:
			key.Key = illumiterm.KeyHome
		case 5:
			key.Key = illumiterm.KeyPageUp
		case 6:
			key.Key = illumiterm.KeyPageDown
		case 27:
			code := param(nums, 2, 0)
			if code <= 0 {
				return consumed, key, false
			}
			key.Rune = rune(code)
		default:
			return consumed, key, false
		}
		key.Mods = modifiers(nums, 1)
		return consumed, key, true
	case 'u':
		code := param(nums, 0, 0)
		if code <= 0 {
			return consumed, key, false
		}
		key = illumiterm.KeyEvent{Rune: rune(code), Mods: modifiers(nums, 1)}
		return consumed, key, true
	}
	return consumed, key, false
}

// parseSS3Sequence handles ESC O x (application cursor mode)
func parseSS3Sequence(seq []byte) (consumed int, key illumiterm.KeyEvent, ok bool) {
	if len(seq) < 3 {
		return 0, key, false
	}
	if seq[2] == 'H' {
		return 3, illumiterm.KeyEvent{Key: illumiterm.KeyHome}, true
	}
	return 3, key, false
}

// splitParams parses "a:b;c" into [a c]; sub-parameters after ':' are
// dropped and empty fields become -1
func splitParams(params string) []int {
	if params == "" {
		return nil
	}
	fields := strings.Split(params, ";")
	nums := make([]int, len(fields))
	for i, f := range fields {
		if j := strings.IndexByte(f, ':'); j >= 0 {
			f = f[:j]
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			n = -1
		}
		nums[i] = n
	}
	return nums
}

func param(nums []int, i, def int) int {
	if i >= len(nums) || nums[i] < 0 {
		return def
	}
	return nums[i]
}

// modifiers decodes the modifier parameter at index i. Lock keys are dropped.
func modifiers(nums []int, i int) illumiterm.Modifier {
	bits := param(nums, i, 1) - 1
	if bits <= 0 {
		return 0
	}
	var mods illumiterm.Modifier
	if bits&modParamShift != 0 {
		mods |= illumiterm.ModShift
	}
	if bits&(modParamAlt|modParamMeta) != 0 {
		mods |= illumiterm.ModAlt
	}
	if bits&modParamCtrl != 0 {
		mods |= illumiterm.ModControl
	}
	if bits&(modParamSuper|modParamHyper) != 0 {
		mods |= illumiterm.ModSuper
	}
	return mods
}
