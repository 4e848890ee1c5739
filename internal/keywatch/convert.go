// Package keywatch is an interactive key event monitor. Every key the
// terminal reports is converted to a KeyEvent, run through the registry's
// resolver chain and listed with the bindings it matches.
package keywatch

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	domain "github.com/inference-gateway/keybind/internal/domain"
)

// keyNames maps terminal key names to their DOM key values
var keyNames = map[string]string{
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"esc":       "Escape",
	"enter":     "Enter",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"space":     " ",
}

// FromKeyMsg converts a terminal key message into a key event and the raw
// keystroke text a host would compute for it. Terminals do not report which
// side of the keyboard a key is on, so every event has a standard location.
func FromKeyMsg(msg tea.KeyMsg) (domain.KeyEvent, string) {
	cfg := domain.KeyEventConfig{Type: domain.EventKeyDown}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		cfg.Key = string(msg.Runes)
		if msg.Type == tea.KeySpace {
			cfg.Key = " "
		}
		cfg.AltKey = msg.Alt
		cfg.Code = codeFor(cfg.Key)
		return domain.NewKeyEvent(cfg), rawKeystroke(cfg)
	}

	parts := strings.Split(msg.String(), "+")
	name := parts[len(parts)-1]
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			cfg.CtrlKey = true
		case "alt":
			cfg.AltKey = true
		case "shift":
			cfg.ShiftKey = true
		}
	}

	if mapped, ok := keyNames[name]; ok {
		cfg.Key = mapped
	} else {
		cfg.Key = name
	}
	cfg.Code = codeFor(cfg.Key)

	return domain.NewKeyEvent(cfg), rawKeystroke(cfg)
}

// codeFor approximates the physical key code for key
func codeFor(key string) string {
	switch {
	case key == " ":
		return "Space"
	case len(key) == 1 && key >= "a" && key <= "z":
		return "Key" + strings.ToUpper(key)
	case len(key) == 1 && key >= "A" && key <= "Z":
		return "Key" + key
	case len(key) == 1 && key >= "0" && key <= "9":
		return "Digit" + key
	default:
		return key
	}
}

// rawKeystroke renders the unqualified keystroke, e.g. "ctrl-alt-right"
func rawKeystroke(cfg domain.KeyEventConfig) string {
	var segments []string
	if cfg.CtrlKey {
		segments = append(segments, "ctrl")
	}
	if cfg.AltKey {
		segments = append(segments, "alt")
	}
	if cfg.ShiftKey {
		segments = append(segments, "shift")
	}

	key := strings.ToLower(strings.TrimPrefix(cfg.Key, "Arrow"))
	if key == " " {
		key = "space"
	}
	segments = append(segments, key)
	return strings.Join(segments, "-")
}
