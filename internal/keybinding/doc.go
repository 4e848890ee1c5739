// Package keybinding manages source scoped key binding sets and the
// session wide registry they are published to.
//
// A binding source builds a SourceBindingSet from decoded binding file
// definitions (selector -> keystroke -> command), then activates it
// against a Registry. Activation replaces whatever the source published
// before and registers the keystroke resolver under a stable name;
// deactivation reverses both steps.
package keybinding
