package keybinding

import (
	"sort"

	domain "github.com/inference-gateway/keybind/internal/domain"
)

// VerificationReport lists commands the host does not know about yet
type VerificationReport struct {
	Total      int
	Unverified []string
}

// Verify checks every referenced command against checker. Unknown commands
// are reported through a *domain.ResourceUnavailableError but never block
// activation, since commands may be registered after the bindings.
// A nil checker verifies nothing.
func Verify(entries []domain.BindingEntry, checker domain.CommandChecker) (*VerificationReport, error) {
	report := &VerificationReport{Total: Count(entries)}
	if checker == nil {
		return report, nil
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Command] {
			continue
		}
		seen[e.Command] = true
		if !checker.HasCommand(e.Command) {
			report.Unverified = append(report.Unverified, e.Command)
		}
	}
	sort.Strings(report.Unverified)

	if len(report.Unverified) > 0 {
		return report, &domain.ResourceUnavailableError{Kind: "command", Names: report.Unverified}
	}
	return report, nil
}

// CommandSet is a CommandChecker backed by a fixed set of command names
type CommandSet map[string]struct{}

// NewCommandSet creates a CommandSet from names
func NewCommandSet(names ...string) CommandSet {
	set := make(CommandSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// HasCommand implements domain.CommandChecker
func (c CommandSet) HasCommand(name string) bool {
	_, ok := c[name]
	return ok
}
