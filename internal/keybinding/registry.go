package keybinding

import (
	"fmt"
	"sort"
	"sync"

	uuid "github.com/google/uuid"
	domain "github.com/inference-gateway/keybind/internal/domain"
	logger "github.com/inference-gateway/keybind/internal/logger"
)

// SourcedEntry is a binding entry tagged with the source that contributed it
type SourcedEntry struct {
	domain.BindingEntry
	Source   string
	Priority int
}

type namedResolver struct {
	name     string
	resolver domain.Resolver
	// sources that published under this name
	owners map[string]struct{}
}

// Registry is the session wide collection of active key bindings and
// keystroke resolvers shared by every binding source.
// Each mutation is a single critical section, so no reader ever observes
// a source half removed or half appended.
type Registry struct {
	sessionID string
	entries   []SourcedEntry
	resolvers []namedResolver
	mutex     sync.RWMutex
}

// NewRegistry creates an empty registry for one host session
func NewRegistry() *Registry {
	r := &Registry{
		sessionID: uuid.NewString(),
		entries:   make([]SourcedEntry, 0),
		resolvers: make([]namedResolver, 0),
	}
	logger.Debug("Created key binding registry", "session", r.sessionID)
	return r
}

// SessionID identifies the host session the registry belongs to
func (r *Registry) SessionID() string {
	return r.sessionID
}

// RemoveSource drops every entry tagged with source and returns how many were removed
func (r *Registry) RemoveSource(source string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.removeSourceLocked(source)
}

// AppendEntries tags entries with source and appends them. Entries the
// source contributed earlier adopt the new priority.
func (r *Registry) AppendEntries(entries []domain.BindingEntry, source string, priority int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.appendLocked(entries, source, priority)
}

// ReplaceSource removes the entries of source and appends the new ones in one step
func (r *Registry) ReplaceSource(source string, priority int, entries []domain.BindingEntry) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := r.removeSourceLocked(source)
	r.appendLocked(entries, source, priority)

	logger.Debug("Replaced key bindings",
		"session", r.sessionID,
		"source", source,
		"removed", removed,
		"added", len(entries),
		"priority", priority)

	return removed
}

func (r *Registry) removeSourceLocked(source string) int {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Source != source {
			kept = append(kept, e)
		}
	}
	removed := len(r.entries) - len(kept)
	clear(r.entries[len(kept):])
	r.entries = kept
	return removed
}

func (r *Registry) appendLocked(entries []domain.BindingEntry, source string, priority int) {
	for i := range r.entries {
		if r.entries[i].Source == source {
			r.entries[i].Priority = priority
		}
	}
	for _, e := range entries {
		r.entries = append(r.entries, SourcedEntry{
			BindingEntry: e,
			Source:       source,
			Priority:     priority,
		})
	}
}

// RegisterResolver installs resolver under name, replacing any resolver
// previously registered under the same name
func (r *Registry) RegisterResolver(name string, resolver domain.Resolver) error {
	if name == "" {
		return fmt.Errorf("resolver name cannot be empty")
	}
	if resolver == nil {
		return fmt.Errorf("resolver %q cannot be nil", name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.registerLocked(name, resolver, "")

	logger.Debug("Registered keystroke resolver", "session", r.sessionID, "name", name)
	return nil
}

// registerLocked replaces the resolver under name. Sources that published
// under the name stay owners; owner is added when not empty.
func (r *Registry) registerLocked(name string, resolver domain.Resolver, owner string) {
	owners := make(map[string]struct{})
	for i, nr := range r.resolvers {
		if nr.name == name {
			owners = nr.owners
			r.resolvers = append(r.resolvers[:i], r.resolvers[i+1:]...)
			break
		}
	}
	if owner != "" {
		owners[owner] = struct{}{}
	}
	r.resolvers = append(r.resolvers, namedResolver{name: name, resolver: resolver, owners: owners})
}

// Publish replaces the entries of source and registers resolver under name
// in one critical section. The resolver stays registered until every
// source that published under name has been withdrawn.
func (r *Registry) Publish(source string, priority int, entries []domain.BindingEntry, name string, resolver domain.Resolver) (int, error) {
	if resolver != nil && name == "" {
		return 0, fmt.Errorf("resolver name cannot be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := r.removeSourceLocked(source)
	r.appendLocked(entries, source, priority)
	if resolver != nil {
		r.registerLocked(name, resolver, source)
	}

	logger.Debug("Published key bindings",
		"session", r.sessionID,
		"source", source,
		"removed", removed,
		"added", len(entries),
		"resolver", name)

	return removed, nil
}

// Withdraw removes the entries of source and releases its claim on the
// resolver registered under name. The resolver is unregistered once no
// other source still holds it.
func (r *Registry) Withdraw(source, name string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := r.removeSourceLocked(source)
	for i, nr := range r.resolvers {
		if nr.name != name {
			continue
		}
		if _, ok := nr.owners[source]; !ok {
			break
		}
		delete(nr.owners, source)
		if len(nr.owners) == 0 {
			r.resolvers = append(r.resolvers[:i], r.resolvers[i+1:]...)
			logger.Debug("Unregistered keystroke resolver", "session", r.sessionID, "name", name)
		}
		break
	}
	return removed
}

// UnregisterResolver removes the resolver registered under name.
// It reports whether a resolver was removed; a missing name is not an error.
func (r *Registry) UnregisterResolver(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.unregisterResolverLocked(name)
}

func (r *Registry) unregisterResolverLocked(name string) bool {
	for i, nr := range r.resolvers {
		if nr.name == name {
			r.resolvers = append(r.resolvers[:i], r.resolvers[i+1:]...)
			return true
		}
	}
	return false
}

// ActiveEntries returns a snapshot of all active entries in registration order
func (r *Registry) ActiveEntries() []SourcedEntry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]SourcedEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// EntriesFor returns the active entries contributed by source
func (r *Registry) EntriesFor(source string) []domain.BindingEntry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var out []domain.BindingEntry
	for _, e := range r.entries {
		if e.Source == source {
			out = append(out, e.BindingEntry)
		}
	}
	return out
}

// Sources lists the sources with active entries in order of first appearance
func (r *Registry) Sources() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := make(map[string]bool)
	var sources []string
	for _, e := range r.entries {
		if !seen[e.Source] {
			seen[e.Source] = true
			sources = append(sources, e.Source)
		}
	}
	return sources
}

// PriorityOf returns the priority of source if it has active entries
func (r *Registry) PriorityOf(source string) (int, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, e := range r.entries {
		if e.Source == source {
			return e.Priority, true
		}
	}
	return 0, false
}

// Resolvers returns the registered resolver names in registration order
func (r *Registry) Resolvers() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.resolvers))
	for _, nr := range r.resolvers {
		names = append(names, nr.name)
	}
	return names
}

// Resolver returns the resolver registered under name
func (r *Registry) Resolver(name string) (domain.Resolver, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, nr := range r.resolvers {
		if nr.name == name {
			return nr.resolver, true
		}
	}
	return nil, false
}

// ResolveEvent runs the resolver chain in registration order and returns
// the first token that differs from the raw keystroke, or the raw keystroke
// when no resolver produces one
func (r *Registry) ResolveEvent(keystroke string, ev domain.KeyEvent, layoutName string) string {
	r.mutex.RLock()
	chain := make([]namedResolver, len(r.resolvers))
	copy(chain, r.resolvers)
	r.mutex.RUnlock()

	for _, nr := range chain {
		token := r.runResolver(nr, keystroke, ev, layoutName)
		if token != "" && token != keystroke {
			return token
		}
	}
	return keystroke
}

func (r *Registry) runResolver(nr namedResolver, keystroke string, ev domain.KeyEvent, layoutName string) (token string) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("Keystroke resolver failed", "session", r.sessionID, "name", nr.name, "panic", rec)
			token = ""
		}
	}()

	if hr, ok := nr.resolver.(domain.KeystrokeResolver); ok {
		return hr.ResolveKeystroke(keystroke, ev, layoutName, r)
	}
	return nr.resolver.Resolve(ev)
}

// FindKeyBindings returns the active entries bound to keystroke, highest
// priority first. Entries of equal priority keep registration order.
func (r *Registry) FindKeyBindings(keystroke string) []SourcedEntry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var matches []SourcedEntry
	for _, e := range r.entries {
		if e.Keystroke == keystroke {
			matches = append(matches, e)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority > matches[j].Priority
	})
	return matches
}
