// Package notify surfaces binding summaries and load failures to the user.
package notify

import (
	"fmt"

	domain "github.com/inference-gateway/keybind/internal/domain"
)

// LoadFailedTitle is shown when a binding file cannot be applied
const LoadFailedTitle = "Cannot set keybindings."

// SummaryTitle is the headline of a binding summary
func SummaryTitle(count int) string {
	return fmt.Sprintf("Number of Valid Key Bindings are %d", count)
}

// Multi fans every message out to each notifier in order
type Multi []domain.Notifier

// Info implements domain.Notifier
func (m Multi) Info(title, detail string) {
	for _, n := range m {
		n.Info(title, detail)
	}
}

// Warning implements domain.Notifier
func (m Multi) Warning(title, detail string) {
	for _, n := range m {
		n.Warning(title, detail)
	}
}
