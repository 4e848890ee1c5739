package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	bindingfile "github.com/inference-gateway/keybind/internal/bindingfile"
	container "github.com/inference-gateway/keybind/internal/container"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	keywatch "github.com/inference-gateway/keybind/internal/keywatch"
	logger "github.com/inference-gateway/keybind/internal/logger"
	cobra "github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor key events and the bindings they match",
	Long: `Start an interactive monitor that resolves every key pressed in the
terminal and lists the active bindings it matches.

The motion bindings are published on start. When bindings.path is set the
file is loaded first, and with bindings.watch (or --follow) it is reloaded
whenever it changes on disk.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("follow", false, "reload the binding file when it changes")
	watchCmd.Flags().Int("history", keywatch.DefaultHistory, "number of key events kept on screen")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromViper()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	services, err := container.NewServiceContainer(cfg, V, nil)
	if err != nil {
		return err
	}
	defer services.Shutdown()

	ctrl := services.GetController()

	ctrl.On()

	path := cfg.Bindings.Path
	if path != "" {
		if err := ctrl.LoadFile(ctx, path, cfg.Bindings.ShowSummary); err != nil {
			logger.Warn("Using built-in key bindings", "path", path, "error", err)
		}
	}

	follow, _ := cmd.Flags().GetBool("follow")
	if path != "" && (follow || cfg.Bindings.Watch) {
		watcher, err := bindingfile.NewWatcher(path, func(table keybinding.Table, err error) {
			_ = ctrl.ApplyFile(table, err, cfg.Bindings.ShowSummary)
		})
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	history, _ := cmd.Flags().GetInt("history")
	program := tea.NewProgram(keywatch.NewModel(services.GetRegistry(), history), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("key monitor failed: %w", err)
	}
	return nil
}
