package illumiterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupShortcut(t *testing.T) {
	cs := ModControl | ModShift
	tests := []struct {
		name string
		ev   KeyEvent
		want Command
	}{
		{"zoom in", KeyEvent{Mods: cs, Key: KeyPageUp}, CommandZoomIn},
		{"zoom out", KeyEvent{Mods: cs, Key: KeyPageDown}, CommandZoomOut},
		{"reset", KeyEvent{Mods: cs, Key: KeyHome}, CommandZoomReset},
		{"copy", KeyEvent{Mods: cs, Rune: 'c'}, CommandCopy},
		{"copy shifted", KeyEvent{Mods: cs, Rune: 'C'}, CommandCopy},
		{"paste", KeyEvent{Mods: cs, Rune: 'V'}, CommandPaste},
		{"control only", KeyEvent{Mods: ModControl, Rune: 'c'}, CommandNone},
		{"shift only", KeyEvent{Mods: ModShift, Key: KeyPageUp}, CommandNone},
		{"extra alt", KeyEvent{Mods: cs | ModAlt, Key: KeyPageUp}, CommandNone},
		{"unbound letter", KeyEvent{Mods: cs, Rune: 'x'}, CommandNone},
		{"plain page up", KeyEvent{Key: KeyPageUp}, CommandNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupShortcut(tt.ev))
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "zoom-in", CommandZoomIn.String())
	assert.Equal(t, "close", CommandClose.String())
	assert.Equal(t, "unknown", Command(99).String())
}
