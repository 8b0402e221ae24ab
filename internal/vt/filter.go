// Package vt splits raw child output into plain text and the few control
// functions a non-emulating surface still cares about.
package vt

import (
	"strings"
	"unicode/utf8"
)

// MaxTitleLen caps how much of an unterminated OSC is buffered
const MaxTitleLen = 4096

// Kind tags an Event
type Kind int

const (
	Text Kind = iota
	Title
	Bell
	Backspace
)

// Event is one piece of filtered output. Text is set for Text and Title.
type Event struct {
	Kind Kind
	Text string
}

type state int

const (
	ground state = iota
	escape
	escapeIntermediate
	csi
	osc
	oscEscape
)

// Filter is a streaming output filter. Escape sequences, OSC strings and
// UTF-8 sequences may be split across calls to Feed.
type Filter struct {
	state   state
	osc     []byte
	text    []byte
	partial []byte
}

// Feed consumes data and returns the events it completes. Escape sequences
// other than OSC 0 and OSC 2 are dropped, as are carriage returns and other
// C0 controls besides newline and tab.
func (f *Filter) Feed(data []byte) []Event {
	var events []Event
	if len(f.partial) > 0 {
		data = append(f.partial, data...)
		f.partial = nil
	}

	for _, b := range data {
		switch f.state {
		case ground:
			switch {
			case b == 0x1b:
				events = f.flush(events)
				f.state = escape
			case b == 0x07:
				events = append(f.flush(events), Event{Kind: Bell})
			case b == 0x08:
				events = append(f.flush(events), Event{Kind: Backspace})
			case b == '\n' || b == '\t':
				f.text = append(f.text, b)
			case b < 0x20 || b == 0x7f:
			default:
				f.text = append(f.text, b)
			}
		case escape:
			switch {
			case b == '[':
				f.state = csi
			case b == ']':
				f.state = osc
				f.osc = f.osc[:0]
			case b >= 0x20 && b <= 0x2f:
				f.state = escapeIntermediate
			case b == 0x1b:
			default:
				f.state = ground
			}
		case escapeIntermediate:
			if b >= 0x30 && b <= 0x7e {
				f.state = ground
			}
		case csi:
			if b >= 0x40 && b <= 0x7e {
				f.state = ground
			}
		case osc:
			switch b {
			case 0x07:
				events = f.finishOSC(events)
			case 0x1b:
				f.state = oscEscape
			default:
				if len(f.osc) < MaxTitleLen {
					f.osc = append(f.osc, b)
				}
			}
		case oscEscape:
			if b == '\\' {
				events = f.finishOSC(events)
			} else {
				f.state = ground
			}
		}
	}
	return f.flushComplete(events)
}

// Titles feeds data and returns only the titles it completes
func (f *Filter) Titles(data []byte) []string {
	var titles []string
	for _, ev := range f.Feed(data) {
		if ev.Kind == Title {
			titles = append(titles, ev.Text)
		}
	}
	return titles
}

func (f *Filter) flush(events []Event) []Event {
	if len(f.text) == 0 {
		return events
	}
	events = append(events, Event{Kind: Text, Text: strings.ToValidUTF8(string(f.text), "�")})
	f.text = f.text[:0]
	return events
}

// flushComplete flushes text but keeps a trailing incomplete rune for the
// next Feed
func (f *Filter) flushComplete(events []Event) []Event {
	cut := len(f.text)
	for i := len(f.text) - 1; i >= 0 && i >= len(f.text)-utf8.UTFMax; i-- {
		if utf8.RuneStart(f.text[i]) {
			if !utf8.FullRune(f.text[i:]) {
				cut = i
			}
			break
		}
	}
	if cut < len(f.text) {
		f.partial = append([]byte(nil), f.text[cut:]...)
		f.text = f.text[:cut]
	}
	return f.flush(events)
}

func (f *Filter) finishOSC(events []Event) []Event {
	f.state = ground
	body := string(f.osc)
	f.osc = f.osc[:0]
	if len(body) < 2 || body[1] != ';' {
		return events
	}
	switch body[0] {
	case '0', '2':
		return append(events, Event{Kind: Title, Text: body[2:]})
	}
	return events
}
