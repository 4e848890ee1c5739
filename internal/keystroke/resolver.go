// Package keystroke converts physical key events into the canonical
// lowercase tokens matched against registered key bindings, e.g. "lctrl-lalt-a".
package keystroke

import (
	"strings"

	domain "github.com/inference-gateway/keybind/internal/domain"
)

const (
	// NumpadPrefix marks keys pressed on the numeric keypad
	NumpadPrefix = "numpad"

	leftSide  = "l"
	rightSide = "r"
)

// modifier describes one modifier flag and the key name that toggles it
type modifier struct {
	keyName string
	token   string
	held    func(domain.KeyEvent) bool
}

// modifiers is evaluated in this order so tokens are deterministic
var modifiers = []modifier{
	{keyName: "control", token: "ctrl", held: domain.KeyEvent.CtrlKey},
	{keyName: "alt", token: "alt", held: domain.KeyEvent.AltKey},
	{keyName: "shift", token: "shift", held: domain.KeyEvent.ShiftKey},
	{keyName: "meta", token: "cmd", held: domain.KeyEvent.MetaKey},
}

// Resolve returns the canonical token for ev. It is pure and total; an event
// without a recognizable key and without modifiers resolves to "".
func Resolve(ev domain.KeyEvent) string {
	segments := modifierSegments(ev)
	if suffix := keySuffix(ev); suffix != "" {
		segments = append(segments, suffix)
	}
	return strings.ToLower(strings.Join(segments, "-"))
}

// modifierSegments returns the side qualified modifier tokens in ctrl, alt, shift, meta order.
// A modifier is skipped when the pressed key is that modifier itself.
func modifierSegments(ev domain.KeyEvent) []string {
	key := strings.ToLower(ev.Key())

	segments := make([]string, 0, len(modifiers)+1)
	for _, m := range modifiers {
		if !m.held(ev) || key == m.keyName {
			continue
		}
		segments = append(segments, sided(m.token, ev.Location()))
	}
	return segments
}

// keySuffix normalizes the pressed key name
func keySuffix(ev domain.KeyEvent) string {
	raw := strings.ToLower(ev.Key())

	result := strings.ReplaceAll(raw, "arrow", "")
	if result == "control" {
		result = "ctrl"
	}

	switch result {
	case "ctrl", "alt", "shift":
		result = sided(result, ev.Location())
	}
	if raw == "meta" {
		result = sided("cmd", ev.Location())
	}

	if result != "" && ev.Location() == domain.LocationNumpad {
		result = NumpadPrefix + result
	}
	return result
}

// sided qualifies name with the side of the keyboard; anything but an
// explicit right location resolves to the left form
func sided(name string, loc domain.Location) string {
	if loc == domain.LocationRight {
		return rightSide + name
	}
	return leftSide + name
}

// KeystrokeResolver adapts Resolve to the domain.Resolver interface
type KeystrokeResolver struct{}

// Resolve implements domain.Resolver
func (KeystrokeResolver) Resolve(ev domain.KeyEvent) string {
	return Resolve(ev)
}
