package action

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyWriter receives parsed keys
type KeyWriter interface {
	WriteKey(key KeyPress) error
}

// Executor writes key sequences to a KeyWriter
type Executor struct {
	writer KeyWriter
}

func NewExecutor(writer KeyWriter) *Executor {
	return &Executor{writer: writer}
}

// Execute parses every key before writing any, so a bad binding sends
// nothing
func (e *Executor) Execute(keys []string) error {
	parsed := make([]KeyPress, 0, len(keys))
	for _, keyStr := range keys {
		key, err := ParseKey(keyStr)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", keyStr, err)
		}
		parsed = append(parsed, key)
	}

	for i, key := range parsed {
		if err := e.writer.WriteKey(key); err != nil {
			return fmt.Errorf("failed to write key %q: %w", keys[i], err)
		}
	}
	return nil
}

// KeyPress is a key name with modifiers
type KeyPress struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   string // canonical name, e.g. "c", "enter", "f1"
}

func (kp KeyPress) String() string {
	var parts []string
	if kp.Ctrl {
		parts = append(parts, "ctrl")
	}
	if kp.Alt {
		parts = append(parts, "alt")
	}
	if kp.Shift {
		parts = append(parts, "shift")
	}
	if kp.Meta {
		parts = append(parts, "meta")
	}
	return strings.Join(append(parts, kp.Key), "+")
}

var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
	"del":    "delete",
	"ins":    "insert",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
}

// Terminal sequences for named keys (xterm)
var specialKeys = map[string][]byte{
	"enter":     {'\r'},
	"tab":       {'\t'},
	"esc":       {0x1b},
	"space":     {' '},
	"backspace": {0x7f},
	"delete":    []byte("\x1b[3~"),
	"insert":    []byte("\x1b[2~"),
	"home":      []byte("\x1b[H"),
	"end":       []byte("\x1b[F"),
	"pageup":    []byte("\x1b[5~"),
	"pagedown":  []byte("\x1b[6~"),
	"up":        []byte("\x1b[A"),
	"down":      []byte("\x1b[B"),
	"right":     []byte("\x1b[C"),
	"left":      []byte("\x1b[D"),
	"f1":        []byte("\x1bOP"),
	"f2":        []byte("\x1bOQ"),
	"f3":        []byte("\x1bOR"),
	"f4":        []byte("\x1bOS"),
	"f5":        []byte("\x1b[15~"),
	"f6":        []byte("\x1b[17~"),
	"f7":        []byte("\x1b[18~"),
	"f8":        []byte("\x1b[19~"),
	"f9":        []byte("\x1b[20~"),
	"f10":       []byte("\x1b[21~"),
	"f11":       []byte("\x1b[23~"),
	"f12":       []byte("\x1b[24~"),
}

// Control bytes for ctrl+punctuation
var ctrlPunct = map[byte]byte{
	'[':  0x1b,
	'\\': 0x1c,
	']':  0x1d,
	'^':  0x1e,
	'_':  0x1f,
	'?':  0x7f,
}

// ParseKey parses a key string like "ctrl+shift+c"
func ParseKey(s string) (KeyPress, error) {
	var kp KeyPress

	parts := strings.Split(strings.ToLower(s), "+")
	last := len(parts) - 1
	// "ctrl++" binds the plus key
	if last > 0 && parts[last] == "" && parts[last-1] == "" {
		parts = append(parts[:last-1], "+")
		last = len(parts) - 1
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == last {
			kp.Key = part
			break
		}
		if part == "" {
			continue
		}

		switch part {
		case "ctrl", "control":
			kp.Ctrl = true
		case "alt", "option":
			kp.Alt = true
		case "shift":
			kp.Shift = true
		case "meta", "cmd", "command", "win", "super":
			kp.Meta = true
		default:
			return KeyPress{}, fmt.Errorf("unknown modifier: %s", part)
		}
	}

	if kp.Key == "" {
		return KeyPress{}, fmt.Errorf("no key specified")
	}
	if alias, ok := keyAliases[kp.Key]; ok {
		kp.Key = alias
	}

	if utf8.RuneCountInString(kp.Key) != 1 {
		if _, ok := specialKeys[kp.Key]; !ok {
			return KeyPress{}, fmt.Errorf("invalid key: %s", kp.Key)
		}
	}

	return kp, nil
}

// ToBytes returns the bytes a terminal would send for kp
func (kp KeyPress) ToBytes() []byte {
	if len(kp.Key) == 1 {
		return kp.charBytes(kp.Key[0])
	}

	if seq, ok := specialKeys[kp.Key]; ok {
		if kp.Shift && kp.Key == "tab" {
			return []byte("\x1b[Z")
		}
		out := make([]byte, 0, len(seq)+1)
		if kp.Alt && len(seq) == 1 {
			out = append(out, 0x1b)
		}
		return append(out, seq...)
	}

	// Multi-byte runes are sent as typed
	return []byte(kp.Key)
}

func (kp KeyPress) charBytes(c byte) []byte {
	var b byte
	switch {
	case kp.Ctrl && c >= 'a' && c <= 'z':
		b = c - 'a' + 1
	case kp.Ctrl && ctrlPunct[c] != 0:
		b = ctrlPunct[c]
	case kp.Shift && c >= 'a' && c <= 'z':
		b = c - 'a' + 'A'
	default:
		b = c
	}

	if kp.Alt {
		return []byte{0x1b, b}
	}
	return []byte{b}
}
