package config

// EditorSelector scopes the motion bindings to full size text editors.
// The body and workspace ancestors raise specificity above the host defaults.
const EditorSelector = "body atom-workspace atom-text-editor:not([mini])"

// Motion commands bound by DefaultKeyBindings
const (
	CommandJumpRight         = "wbmm:jump-right"
	CommandJumpLeft          = "wbmm:jump-left"
	CommandNormalRight       = "wbmm:normal-right"
	CommandNormalLeft        = "wbmm:normal-left"
	CommandSelectRight       = "wbmm:select-right"
	CommandSelectLeft        = "wbmm:select-left"
	CommandSelectNormalRight = "wbmm:select-normal-right"
	CommandSelectNormalLeft  = "wbmm:select-normal-left"
)

// Feature commands that operate on the mode itself
const (
	CommandToggle           = "wbmm:toggle"
	CommandToggleAutoSelect = "wbmm:toggle-auto-select"
	CommandSettings         = "wbmm:settings"
)

// DefaultKeyBindings returns the built in motion bindings as
// selector -> keystroke -> command. A binding file replaces them entirely.
func DefaultKeyBindings() map[string]map[string]string {
	bindings := make(map[string]string)

	addJumpBindings(bindings)
	addNormalBindings(bindings)
	addSelectBindings(bindings)

	return map[string]map[string]string{
		EditorSelector: bindings,
	}
}

func addJumpBindings(bindings map[string]string) {
	bindings["right"] = CommandJumpRight
	bindings["left"] = CommandJumpLeft
}

func addNormalBindings(bindings map[string]string) {
	bindings["alt-right"] = CommandNormalRight
	bindings["alt-left"] = CommandNormalLeft
}

func addSelectBindings(bindings map[string]string) {
	bindings["shift-right"] = CommandSelectRight
	bindings["shift-left"] = CommandSelectLeft
	bindings["shift-alt-right"] = CommandSelectNormalRight
	bindings["shift-alt-left"] = CommandSelectNormalLeft
}

// Commands lists every command the motion mode registers
func Commands() []string {
	return []string{
		CommandJumpRight,
		CommandJumpLeft,
		CommandNormalRight,
		CommandNormalLeft,
		CommandSelectRight,
		CommandSelectLeft,
		CommandSelectNormalRight,
		CommandSelectNormalLeft,
		CommandToggle,
		CommandToggleAutoSelect,
		CommandSettings,
	}
}
