package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Location identifies which physical instance of a duplicated key produced an event.
// Values match the DOM KeyboardEvent location codes.
type Location int

const (
	LocationStandard Location = iota
	LocationLeft
	LocationRight
	LocationNumpad
)

// String returns the lowercase name of the location
func (l Location) String() string {
	switch l {
	case LocationLeft:
		return "left"
	case LocationRight:
		return "right"
	case LocationNumpad:
		return "numpad"
	default:
		return "standard"
	}
}

// normalize maps unknown location values to LocationStandard
func (l Location) normalize() Location {
	if l < LocationStandard || l > LocationNumpad {
		return LocationStandard
	}
	return l
}

// ParseLocation converts a name ("left") or DOM code ("1") into a Location.
// Unrecognized input yields LocationStandard.
func ParseLocation(s string) Location {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return Location(n).normalize()
	}
	switch s {
	case "left", "l":
		return LocationLeft
	case "right", "r":
		return LocationRight
	case "numpad", "num":
		return LocationNumpad
	default:
		return LocationStandard
	}
}

// EventType is the kind of keyboard event delivered by the host
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyPress
	EventKeyUp
)

// String returns the DOM event name
func (t EventType) String() string {
	switch t {
	case EventKeyPress:
		return "keypress"
	case EventKeyUp:
		return "keyup"
	default:
		return "keydown"
	}
}

// ParseEventType converts a DOM event name into an EventType, defaulting to keydown
func ParseEventType(s string) EventType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keypress":
		return EventKeyPress
	case "keyup":
		return EventKeyUp
	default:
		return EventKeyDown
	}
}

// KeyEventConfig holds the attributes used to build a KeyEvent.
// The zero value describes a keydown of an empty key at the standard location
// with no modifiers held.
type KeyEventConfig struct {
	Key         string
	Code        string
	Location    Location
	AltKey      bool
	CtrlKey     bool
	ShiftKey    bool
	MetaKey     bool
	Repeat      bool
	IsComposing bool
	Type        EventType
}

// KeyEvent is an immutable snapshot of a physical key press
type KeyEvent struct {
	key         string
	code        string
	location    Location
	altKey      bool
	ctrlKey     bool
	shiftKey    bool
	metaKey     bool
	repeat      bool
	isComposing bool
	eventType   EventType
}

// NewKeyEvent builds a KeyEvent from cfg. It never fails: out of range
// location and type values fall back to their neutral defaults.
func NewKeyEvent(cfg KeyEventConfig) KeyEvent {
	eventType := cfg.Type
	if eventType < EventKeyDown || eventType > EventKeyUp {
		eventType = EventKeyDown
	}

	return KeyEvent{
		key:         cfg.Key,
		code:        cfg.Code,
		location:    cfg.Location.normalize(),
		altKey:      cfg.AltKey,
		ctrlKey:     cfg.CtrlKey,
		shiftKey:    cfg.ShiftKey,
		metaKey:     cfg.MetaKey,
		repeat:      cfg.Repeat,
		isComposing: cfg.IsComposing,
		eventType:   eventType,
	}
}

func (e KeyEvent) Key() string { return e.key }
func (e KeyEvent) Code() string { return e.code }
func (e KeyEvent) Location() Location { return e.location.normalize() }
func (e KeyEvent) AltKey() bool { return e.altKey }
func (e KeyEvent) CtrlKey() bool { return e.ctrlKey }
func (e KeyEvent) ShiftKey() bool { return e.shiftKey }
func (e KeyEvent) MetaKey() bool { return e.metaKey }
func (e KeyEvent) Repeat() bool { return e.repeat }
func (e KeyEvent) IsComposing() bool { return e.isComposing }
func (e KeyEvent) Type() EventType { return e.eventType }
func (e KeyEvent) HasModifiers() bool { return e.altKey || e.ctrlKey || e.shiftKey || e.metaKey }

// Config returns the attributes the event was built from
func (e KeyEvent) Config() KeyEventConfig {
	return KeyEventConfig{
		Key:         e.key,
		Code:        e.code,
		Location:    e.Location(),
		AltKey:      e.altKey,
		CtrlKey:     e.ctrlKey,
		ShiftKey:    e.shiftKey,
		MetaKey:     e.metaKey,
		Repeat:      e.repeat,
		IsComposing: e.isComposing,
		Type:        e.eventType,
	}
}

// SameKey reports whether two events describe the same key combination.
// Repeat, composition state and event type are ignored.
func (e KeyEvent) SameKey(other KeyEvent) bool {
	return e.key == other.key &&
		e.code == other.code &&
		e.Location() == other.Location() &&
		e.altKey == other.altKey &&
		e.ctrlKey == other.ctrlKey &&
		e.shiftKey == other.shiftKey &&
		e.metaKey == other.metaKey
}

// SameAll reports whether every attribute of the two events matches
func (e KeyEvent) SameAll(other KeyEvent) bool {
	return e.SameKey(other) &&
		e.repeat == other.repeat &&
		e.isComposing == other.isComposing &&
		e.eventType == other.eventType
}

// String returns a diagnostic dump of the event
func (e KeyEvent) String() string {
	return fmt.Sprintf(
		"type: %s, code: %s, key: %s, altKey: %t, ctrlKey: %t, shiftKey: %t, metaKey: %t, location: %s, repeat: %t, isComposing: %t",
		e.eventType, e.code, e.key,
		e.altKey, e.ctrlKey, e.shiftKey, e.metaKey,
		e.Location(), e.repeat, e.isComposing,
	)
}
