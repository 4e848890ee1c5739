package keybinding

import (
	"fmt"
	"sort"
	"sync"

	domain "github.com/inference-gateway/keybind/internal/domain"
	keystroke "github.com/inference-gateway/keybind/internal/keystroke"
	logger "github.com/inference-gateway/keybind/internal/logger"
)

// SourceBindingSet owns the bindings one source contributes to a Registry.
// Selectors and commands are not validated here: selectors are host syntax
// and commands may be registered after the bindings are built.
type SourceBindingSet struct {
	source       string
	priority     int
	entries      []domain.BindingEntry
	resolverName string
	resolver     domain.Resolver
	active       bool
	mutex        sync.Mutex
}

// Build validates raw definitions and creates a binding set for source
func Build(source string, raw any, priority int) (*SourceBindingSet, error) {
	if source == "" {
		return nil, &domain.ValidationError{Reason: "source cannot be empty"}
	}

	entries, err := parseDefinitions(source, raw)
	if err != nil {
		return nil, err
	}

	return &SourceBindingSet{
		source:       source,
		priority:     priority,
		entries:      entries,
		resolverName: keystroke.ResolverName,
		resolver:     keystroke.NewHostResolver(),
	}, nil
}

// Source returns the owning source tag
func (s *SourceBindingSet) Source() string {
	return s.source
}

// Priority returns the priority the entries are published with
func (s *SourceBindingSet) Priority() int {
	return s.priority
}

// Entries returns a copy of the current entries
func (s *SourceBindingSet) Entries() []domain.BindingEntry {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]domain.BindingEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Active reports whether the set is currently published
func (s *SourceBindingSet) Active() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.active
}

// ResolverName returns the name the resolver is registered under
func (s *SourceBindingSet) ResolverName() string {
	return s.resolverName
}

// SetResolver changes the resolver published on the next activation.
// An active set must be deactivated first.
func (s *SourceBindingSet) SetResolver(name string, resolver domain.Resolver) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.active {
		return fmt.Errorf("cannot change the resolver of active source %q", s.source)
	}
	if resolver != nil && name == "" {
		return fmt.Errorf("resolver name cannot be empty")
	}
	s.resolverName = name
	s.resolver = resolver
	return nil
}

// Activate publishes the entries to reg, replacing whatever the source
// published before, and registers the resolver
func (s *SourceBindingSet) Activate(reg *Registry) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed, err := reg.Publish(s.source, s.priority, s.entries, s.resolverName, s.resolver)
	if err != nil {
		logger.Warn("Failed to register keystroke resolver", "source", s.source, "error", err)
	}
	s.active = true

	logger.Info("Activated key bindings",
		"session", reg.SessionID(),
		"source", s.source,
		"count", len(s.entries),
		"replaced", removed)
}

// Deactivate removes the source's entries and releases the resolver, which
// stays registered while another active source still uses it.
// Deactivating a set that is not active does nothing.
func (s *SourceBindingSet) Deactivate(reg *Registry) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active {
		return
	}

	removed := reg.Withdraw(s.source, s.resolverName)
	s.active = false

	logger.Info("Deactivated key bindings", "session", reg.SessionID(), "source", s.source, "removed", removed)
}

// Replace rebuilds the entries from new definitions. It never publishes;
// an active set must be activated again. Invalid definitions leave the
// current entries untouched.
func (s *SourceBindingSet) Replace(raw any) error {
	entries, err := parseDefinitions(s.source, raw)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries = entries
	return nil
}

// Describe returns the human readable summary and the number of bindings
func (s *SourceBindingSet) Describe() (string, int) {
	return Describe(s.Entries())
}

// Table returns the entries in nested form
func (s *SourceBindingSet) Table() Table {
	return ToTable(s.Entries())
}

// ParseTable validates raw definitions without building a binding set
func ParseTable(raw any) (Table, error) {
	entries, err := parseDefinitions("", raw)
	if err != nil {
		return nil, err
	}
	return ToTable(entries), nil
}

// parseDefinitions accepts the shapes binding files decode into:
// a Table, a flat entry list, or generic maps of maps of strings
func parseDefinitions(source string, raw any) ([]domain.BindingEntry, error) {
	switch v := raw.(type) {
	case nil:
		return nil, &domain.ValidationError{Source: source, Reason: "definitions are missing"}
	case []domain.BindingEntry:
		out := make([]domain.BindingEntry, len(v))
		copy(out, v)
		return out, nil
	case Table:
		return FromTable(v), nil
	case map[string]map[string]string:
		return FromTable(Table(v)), nil
	case map[string]any:
		return parseGenericTable(source, v)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for k, inner := range v {
			key, ok := k.(string)
			if !ok {
				return nil, &domain.ValidationError{Source: source, Path: fmt.Sprintf("%v", k), Reason: "selector must be a string"}
			}
			converted[key] = inner
		}
		return parseGenericTable(source, converted)
	default:
		return nil, &domain.ValidationError{
			Source: source,
			Reason: fmt.Sprintf("expected a mapping of selectors to key bindings, got %T", raw),
		}
	}
}

func parseGenericTable(source string, raw map[string]any) ([]domain.BindingEntry, error) {
	table := make(Table, len(raw))

	selectors := make([]string, 0, len(raw))
	for selector := range raw {
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)

	for _, selector := range selectors {
		keystrokes, err := parseKeystrokes(source, selector, raw[selector])
		if err != nil {
			return nil, err
		}
		table[selector] = keystrokes
	}

	return FromTable(table), nil
}

func parseKeystrokes(source, selector string, raw any) (map[string]string, error) {
	out := make(map[string]string)

	switch v := raw.(type) {
	case map[string]string:
		for k, cmd := range v {
			out[k] = cmd
		}
	case map[string]any:
		for k, cmd := range v {
			command, ok := cmd.(string)
			if !ok {
				return nil, &domain.ValidationError{
					Source: source,
					Path:   fmt.Sprintf("%q.%q", selector, k),
					Reason: fmt.Sprintf("command must be a string, got %T", cmd),
				}
			}
			out[k] = command
		}
	case map[any]any:
		for k, cmd := range v {
			key, ok := k.(string)
			if !ok {
				return nil, &domain.ValidationError{Source: source, Path: fmt.Sprintf("%q.%v", selector, k), Reason: "keystroke must be a string"}
			}
			command, ok := cmd.(string)
			if !ok {
				return nil, &domain.ValidationError{
					Source: source,
					Path:   fmt.Sprintf("%q.%q", selector, key),
					Reason: fmt.Sprintf("command must be a string, got %T", cmd),
				}
			}
			out[key] = command
		}
	default:
		return nil, &domain.ValidationError{
			Source: source,
			Path:   fmt.Sprintf("%q", selector),
			Reason: fmt.Sprintf("expected a mapping of keystrokes to commands, got %T", raw),
		}
	}

	return out, nil
}
