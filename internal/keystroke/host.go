package keystroke

import (
	"strings"

	domain "github.com/inference-gateway/keybind/internal/domain"
	logger "github.com/inference-gateway/keybind/internal/logger"
)

const (
	// ResolverName is the stable name the key bindings resolver is registered under
	ResolverName = "keyBindingsResolver"

	// CaretMarker prefixes keystrokes that follow a preceding chord
	CaretMarker = "^"
)

// HostResolver is the resolver handed to the host's binding matcher.
// It never fails: empty or panicking resolutions degrade to the raw keystroke.
type HostResolver struct {
	resolve func(domain.KeyEvent) string
}

// NewHostResolver creates a HostResolver backed by Resolve
func NewHostResolver() *HostResolver {
	return &HostResolver{resolve: Resolve}
}

// Resolve implements domain.Resolver
func (h *HostResolver) Resolve(ev domain.KeyEvent) string {
	return h.resolve(ev)
}

// ResolveKeystroke implements domain.KeystrokeResolver.
// The layout name and active binding set are accepted for contract
// compatibility and are not consulted.
func (h *HostResolver) ResolveKeystroke(keystroke string, ev domain.KeyEvent, layoutName string, bindingSet any) (result string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Keystroke resolution failed, using raw keystroke", "keystroke", keystroke, "panic", r)
			result = keystroke
		}
	}()

	token := h.resolve(ev)
	if token == "" {
		return keystroke
	}

	if strings.HasPrefix(keystroke, CaretMarker) && keystroke != CaretMarker {
		token = CaretMarker + token
	}

	logger.Debug("Resolved keystroke", "raw", keystroke, "token", token, "layout", layoutName)
	return token
}
