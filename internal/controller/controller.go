// Package controller owns the word boundary motion mode: whether its key
// bindings are published, which definitions they come from, and the motion
// settings the bound commands read.
package controller

import (
	"context"
	"fmt"
	"sync"

	config "github.com/inference-gateway/keybind/config"
	bindingfile "github.com/inference-gateway/keybind/internal/bindingfile"
	domain "github.com/inference-gateway/keybind/internal/domain"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	logger "github.com/inference-gateway/keybind/internal/logger"
	notify "github.com/inference-gateway/keybind/internal/notify"
)

// AutoSelectKey is the configuration key ToggleAutoSelect persists
const AutoSelectKey = "motion.auto_select"

// ConfigWriter persists a single configuration value
type ConfigWriter interface {
	SetValue(key string, value any) error
}

// Options wires the controller to its collaborators. Registry is required;
// the rest may be nil.
type Options struct {
	Registry     *keybinding.Registry
	Notifier     domain.Notifier
	ConfigWriter ConfigWriter
	Commands     domain.CommandChecker
}

// Controller toggles one source's key bindings on a registry
type Controller struct {
	registry *keybinding.Registry
	bindings *keybinding.SourceBindingSet
	notifier domain.Notifier
	writer   ConfigWriter
	commands domain.CommandChecker

	subwordBoundary bool
	autoSelect      bool
	on              bool
	mutex           sync.Mutex
}

// New creates a controller with the default motion bindings. Nothing is
// published until On is called.
func New(cfg *config.Config, opts Options) (*Controller, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	bindings, err := keybinding.Build(cfg.Bindings.Source, config.DefaultKeyBindings(), cfg.Bindings.Priority)
	if err != nil {
		return nil, fmt.Errorf("failed to build default key bindings: %w", err)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger.Get())
	}

	return &Controller{
		registry:        opts.Registry,
		bindings:        bindings,
		notifier:        notifier,
		writer:          opts.ConfigWriter,
		commands:        opts.Commands,
		subwordBoundary: cfg.Motion.SubwordBoundary,
		autoSelect:      cfg.Motion.AutoSelect,
	}, nil
}

// On publishes the bindings
func (c *Controller) On() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.onLocked()
}

func (c *Controller) onLocked() {
	c.bindings.Activate(c.registry)
	c.on = true
}

// Off withdraws the bindings
func (c *Controller) Off() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.offLocked()
}

func (c *Controller) offLocked() {
	c.bindings.Deactivate(c.registry)
	c.on = false
}

// Toggle flips between On and Off and reports the new state
func (c *Controller) Toggle() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.on {
		c.offLocked()
	} else {
		c.onLocked()
	}
	return c.on
}

// IsOn reports whether the bindings are published
func (c *Controller) IsOn() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.on
}

// Bindings returns the managed binding set
func (c *Controller) Bindings() *keybinding.SourceBindingSet {
	return c.bindings
}

// SubwordBoundary reports whether motions stop at subword boundaries
func (c *Controller) SubwordBoundary() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.subwordBoundary
}

// SetSubwordBoundary changes the boundary motions stop at
func (c *Controller) SetSubwordBoundary(enabled bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.subwordBoundary = enabled
}

// AutoSelect reports whether jumps select the word they pass
func (c *Controller) AutoSelect() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.autoSelect
}

// ToggleAutoSelect turns the mode on if needed, flips auto select and
// persists the new value
func (c *Controller) ToggleAutoSelect() error {
	c.mutex.Lock()
	if !c.on {
		c.onLocked()
	}
	c.autoSelect = !c.autoSelect
	value := c.autoSelect
	c.mutex.Unlock()

	logger.Debug("Toggled auto select", "auto_select", value)

	if c.writer == nil {
		return nil
	}
	if err := c.writer.SetValue(AutoSelectKey, value); err != nil {
		return fmt.Errorf("failed to persist %s: %w", AutoSelectKey, err)
	}
	return nil
}

// SetKeyBindings replaces the definitions. With show set, a summary of the
// new bindings is sent to the notifier. The bindings are republished only
// while the mode is on. Invalid definitions keep the previous bindings and
// raise a warning.
func (c *Controller) SetKeyBindings(raw any, show bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.bindings.Replace(raw); err != nil {
		c.notifier.Warning(notify.LoadFailedTitle, err.Error())
		return err
	}

	c.verifyLocked()

	if show {
		text, num := c.bindings.Describe()
		c.notifier.Info(notify.SummaryTitle(num), text)
	}

	if c.on {
		c.bindings.Activate(c.registry)
	}
	return nil
}

func (c *Controller) verifyLocked() {
	if c.commands == nil {
		return
	}
	if _, err := keybinding.Verify(c.bindings.Entries(), c.commands); err != nil {
		logger.Warn("Key bindings reference unknown commands", "source", c.bindings.Source(), "error", err)
	}
}

// ApplyFile applies the outcome of loading a binding file. A load error is
// reported as a warning and leaves the current bindings in place.
func (c *Controller) ApplyFile(table keybinding.Table, err error, show bool) error {
	if err != nil {
		c.notifier.Warning(notify.LoadFailedTitle, err.Error())
		return err
	}
	return c.SetKeyBindings(table, show)
}

// LoadFile loads the binding file at path and applies it
func (c *Controller) LoadFile(ctx context.Context, path string, show bool) error {
	table, err := bindingfile.Load(ctx, path)
	return c.ApplyFile(table, err, show)
}

// Shutdown withdraws the bindings for good
func (c *Controller) Shutdown() {
	c.Off()
	logger.Debug("Controller shut down", "source", c.bindings.Source())
}
