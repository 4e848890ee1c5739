package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	config "github.com/inference-gateway/keybind/config"
	container "github.com/inference-gateway/keybind/internal/container"
	controller "github.com/inference-gateway/keybind/internal/controller"
	services "github.com/inference-gateway/keybind/internal/services"
	icons "github.com/inference-gateway/keybind/internal/ui/styles/icons"
	cobra "github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage keybind configuration",
	Long:  `Manage the keybind configuration stored in .keybind/config.yaml.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new project configuration",
	Long: `Initialize a new .keybind/config.yaml configuration file in the current directory.
This creates a local project configuration with default settings.`,
	RunE: initializeConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after applying the config file and KEYBIND_ environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return err
		}
		data, err := cfg.Marshal(2)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value using dot notation and save it to the config file.

Example:
  keybind config set bindings.path keymaps/wbmm.yaml
  keybind config set motion.subword_boundary false`,
	Args: cobra.ExactArgs(2),
	RunE: setConfigValue,
}

var configToggleAutoSelectCmd = &cobra.Command{
	Use:   "toggle-auto-select",
	Short: "Flip motion.auto_select and save it",
	Long:  `Turn the motion mode on if needed, flip auto select and persist the new value.`,
	Args:  cobra.NoArgs,
	RunE:  toggleAutoSelect,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configToggleAutoSelectCmd)

	configInitCmd.Flags().Bool("overwrite", false, "Overwrite existing configuration file")

	rootCmd.AddCommand(configCmd)
}

func initializeConfig(cmd *cobra.Command, args []string) error {
	configPath := V.ConfigFileUsed()
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		if !overwrite {
			return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", configPath)
		}
	}

	if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s Successfully created %s\n", icons.StyledCheckMark(), configPath)
	_, _ = fmt.Fprintln(out, "You can now customize the configuration for this project.")
	return nil
}

func setConfigValue(cmd *cobra.Command, args []string) error {
	key, value := strings.ToLower(args[0]), args[1]

	if _, ok := configDefaults()[key]; !ok {
		return fmt.Errorf("unknown configuration key %q (valid keys: %s)", key, strings.Join(configKeys(), ", "))
	}

	cfg, err := getConfigFromViper()
	if err != nil {
		return err
	}

	if err := services.NewConfigService(V, cfg).SetValue(key, value); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n", icons.StyledCheckMark(), key, value)
	return nil
}

func toggleAutoSelect(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromViper()
	if err != nil {
		return err
	}

	serviceContainer, err := container.NewServiceContainer(cfg, V, nil)
	if err != nil {
		return err
	}
	defer serviceContainer.Shutdown()

	ctrl := serviceContainer.GetController()

	if err := ctrl.ToggleAutoSelect(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %t\n", icons.StyledCheckMark(), controller.AutoSelectKey, ctrl.AutoSelect())
	return nil
}

func configKeys() []string {
	keys := make([]string, 0)
	for key := range configDefaults() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
