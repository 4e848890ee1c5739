package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches any ValidationError through errors.Is
	ErrValidation = errors.New("invalid key binding definitions")

	// ErrResourceUnavailable matches any ResourceUnavailableError through errors.Is
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// ValidationError reports raw binding definitions that are not a
// mapping of selectors to mappings of keystrokes to commands
type ValidationError struct {
	Source string
	Path   string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid key bindings")
	if e.Source != "" {
		fmt.Fprintf(&b, " for source %q", e.Source)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResourceUnavailableError lists commands or selectors that could not be
// verified yet. It is informational: bindings referencing them stay active.
type ResourceUnavailableError struct {
	Kind  string
	Names []string
}

// Error implements the error interface
func (e *ResourceUnavailableError) Error() string {
	return fmt.Sprintf("%d %s(s) cannot be verified yet: %s", len(e.Names), e.Kind, strings.Join(e.Names, ", "))
}

// Is lets errors.Is(err, ErrResourceUnavailable) match
func (e *ResourceUnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}
