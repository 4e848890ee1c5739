package domain

// BindingEntry maps a keystroke to a command within a selector scope.
// Entries are values and are never mutated once created.
type BindingEntry struct {
	Selector  string `json:"selector" yaml:"selector"`
	Keystroke string `json:"keystroke" yaml:"keystroke"`
	Command   string `json:"command" yaml:"command"`
}

// Resolver converts a physical key event into a canonical keystroke token
type Resolver interface {
	Resolve(event KeyEvent) string
}

// KeystrokeResolver is the host facing resolver contract. It receives the
// keystroke text the host computed on its own and returns the token to match.
type KeystrokeResolver interface {
	Resolver
	ResolveKeystroke(keystroke string, event KeyEvent, layoutName string, bindingSet any) string
}

// CommandChecker reports whether a command is currently registered with the host
type CommandChecker interface {
	HasCommand(name string) bool
}

// Notifier surfaces messages to the user
type Notifier interface {
	Info(title, detail string)
	Warning(title, detail string)
}
