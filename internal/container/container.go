package container

import (
	"fmt"
	"io"

	config "github.com/inference-gateway/keybind/config"
	controller "github.com/inference-gateway/keybind/internal/controller"
	domain "github.com/inference-gateway/keybind/internal/domain"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	logger "github.com/inference-gateway/keybind/internal/logger"
	notify "github.com/inference-gateway/keybind/internal/notify"
	services "github.com/inference-gateway/keybind/internal/services"
	viper "github.com/spf13/viper"
)

// ServiceContainer manages all application dependencies
type ServiceContainer struct {
	// Configuration
	viper         *viper.Viper
	config        *config.Config
	configService *services.ConfigService

	// Key bindings
	registry   *keybinding.Registry
	commands   keybinding.CommandSet
	notifier   domain.Notifier
	controller *controller.Controller
}

// NewServiceContainer creates a new service container with all dependencies.
// Notifications go to the log, and to out as well when it is not nil.
func NewServiceContainer(cfg *config.Config, v *viper.Viper, out io.Writer) (*ServiceContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := &ServiceContainer{
		viper:  v,
		config: cfg,
	}

	if v != nil {
		c.configService = services.NewConfigService(v, cfg)
	}

	c.initializeNotifier(out)

	if err := c.initializeKeyBindings(); err != nil {
		return nil, err
	}

	logger.Debug("Service container initialized", "session", c.registry.SessionID(), "source", cfg.Bindings.Source)
	return c, nil
}

func (c *ServiceContainer) initializeNotifier(out io.Writer) {
	logNotifier := notify.NewLogNotifier(logger.Get())
	if out == nil {
		c.notifier = logNotifier
		return
	}
	c.notifier = notify.Multi{logNotifier, notify.NewTerminalNotifier(out)}
}

func (c *ServiceContainer) initializeKeyBindings() error {
	c.registry = keybinding.NewRegistry()
	c.commands = keybinding.NewCommandSet(config.Commands()...)

	opts := controller.Options{
		Registry: c.registry,
		Notifier: c.notifier,
		Commands: c.commands,
	}
	if c.configService != nil {
		opts.ConfigWriter = c.configService
	}

	ctrl, err := controller.New(c.config, opts)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	c.controller = ctrl
	return nil
}

// GetConfig returns the configuration the container was built with
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetViper returns the Viper instance
func (c *ServiceContainer) GetViper() *viper.Viper {
	return c.viper
}

// GetConfigService returns the config service, nil without a Viper instance
func (c *ServiceContainer) GetConfigService() *services.ConfigService {
	return c.configService
}

func (c *ServiceContainer) GetRegistry() *keybinding.Registry {
	return c.registry
}

func (c *ServiceContainer) GetCommands() keybinding.CommandSet {
	return c.commands
}

func (c *ServiceContainer) GetNotifier() domain.Notifier {
	return c.notifier
}

func (c *ServiceContainer) GetController() *controller.Controller {
	return c.controller
}

// Shutdown withdraws every published binding
func (c *ServiceContainer) Shutdown() {
	c.controller.Shutdown()
}
