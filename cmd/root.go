package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	config "github.com/inference-gateway/keybind/config"
	logger "github.com/inference-gateway/keybind/internal/logger"
	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
)

// V holds the configuration resolved from file, environment and flags
var V = viper.New()

var rootCmd = &cobra.Command{
	Use:   "keybind",
	Short: "Keystroke resolution and source scoped key bindings",
	Long: `keybind resolves physical key events into canonical keystroke tokens
(e.g. "lctrl-lalt-a") and manages the key bindings a source contributes to a
session wide registry: loading them from YAML, JSON or TOML files, validating,
describing and toggling them.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath()))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.PersistentPreRunE = initConfig
}

// initConfig loads the configuration before any subcommand of keybind runs
func initConfig(cmd *cobra.Command, args []string) error {
	configFile, _ := rootCmd.PersistentFlags().GetString("config")
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")

	if err := setupViper(V, configFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(verbose || V.GetBool("logging.verbose"))
	logger.Debug("Configuration loaded", "file", V.ConfigFileUsed())
	return nil
}

// setupViper points v at configFile, or the default location, and layers
// KEYBIND_ environment variables over the defaults. A missing file is not an error.
func setupViper(v *viper.Viper, configFile string) error {
	setDefaults(v)

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = config.DefaultConfigPath()
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	return nil
}

// configDefaults lists every configuration key with its default value
func configDefaults() map[string]any {
	defaults := config.DefaultConfig()

	return map[string]any{
		"bindings.path":           defaults.Bindings.Path,
		"bindings.source":         defaults.Bindings.Source,
		"bindings.priority":       defaults.Bindings.Priority,
		"bindings.watch":          defaults.Bindings.Watch,
		"bindings.show_summary":   defaults.Bindings.ShowSummary,
		"motion.subword_boundary": defaults.Motion.SubwordBoundary,
		"motion.auto_select":      defaults.Motion.AutoSelect,
		"logging.verbose":         defaults.Logging.Verbose,
	}
}

func setDefaults(v *viper.Viper) {
	for key, value := range configDefaults() {
		v.SetDefault(key, value)
	}
}

// getConfigFromViper decodes the effective configuration
func getConfigFromViper() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := V.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}
