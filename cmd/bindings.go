package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	config "github.com/inference-gateway/keybind/config"
	bindingfile "github.com/inference-gateway/keybind/internal/bindingfile"
	domain "github.com/inference-gateway/keybind/internal/domain"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	notify "github.com/inference-gateway/keybind/internal/notify"
	icons "github.com/inference-gateway/keybind/internal/ui/styles/icons"
	toml "github.com/pelletier/go-toml/v2"
	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

const defaultsOrigin = "built-in defaults"

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Inspect key binding definitions",
	Long: `Inspect key binding definitions. Commands read the file given as argument,
then bindings.path from the configuration, and fall back to the built-in
word boundary motion bindings.`,
}

var bindingsDescribeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Print a summary of the key bindings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  describeBindings,
}

var bindingsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate key binding definitions",
	Long: `Validate that the definitions map selectors to mappings of keystrokes to
commands. Commands the motion mode does not register are reported but do not
fail validation, since other packages may register them later.`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateBindings,
}

var bindingsTableCmd = &cobra.Command{
	Use:   "table [file]",
	Short: "Print the key bindings as a nested table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  printBindingsTable,
}

var bindingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in key bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeTable(cmd.OutOrStdout(), keybinding.Table(config.DefaultKeyBindings()), format)
	},
}

func init() {
	bindingsCmd.AddCommand(bindingsDescribeCmd)
	bindingsCmd.AddCommand(bindingsValidateCmd)
	bindingsCmd.AddCommand(bindingsTableCmd)
	bindingsCmd.AddCommand(bindingsDefaultsCmd)

	bindingsTableCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json, toml)")
	bindingsDefaultsCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json, toml)")

	rootCmd.AddCommand(bindingsCmd)
}

// loadDefinitions returns the table to operate on and where it came from
func loadDefinitions(cmd *cobra.Command, args []string) (keybinding.Table, string, error) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := getConfigFromViper()
		if err != nil {
			return nil, "", err
		}
		path = cfg.Bindings.Path
	}

	if path == "" {
		return keybinding.Table(config.DefaultKeyBindings()), defaultsOrigin, nil
	}

	table, err := bindingfile.Load(cmd.Context(), path)
	if err != nil {
		return nil, path, err
	}
	return table, path, nil
}

func buildBindingSet(table keybinding.Table) (*keybinding.SourceBindingSet, error) {
	cfg, err := getConfigFromViper()
	if err != nil {
		return nil, err
	}
	return keybinding.Build(cfg.Bindings.Source, table, cfg.Bindings.Priority)
}

func describeBindings(cmd *cobra.Command, args []string) error {
	table, _, err := loadDefinitions(cmd, args)
	if err != nil {
		return err
	}

	set, err := buildBindingSet(table)
	if err != nil {
		return err
	}

	text, num := set.Describe()
	notify.NewTerminalNotifier(cmd.OutOrStdout()).Info(notify.SummaryTitle(num), text)
	return nil
}

func validateBindings(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	table, origin, err := loadDefinitions(cmd, args)
	if err != nil {
		_, _ = fmt.Fprintf(out, "%s %s\n", icons.StyledCrossMark(), err)
		return fmt.Errorf("validation failed")
	}

	set, err := buildBindingSet(table)
	if err != nil {
		_, _ = fmt.Fprintf(out, "%s %s\n", icons.StyledCrossMark(), err)
		return fmt.Errorf("validation failed")
	}

	report, err := keybinding.Verify(set.Entries(), keybinding.NewCommandSet(config.Commands()...))
	if err != nil && !errors.Is(err, domain.ErrResourceUnavailable) {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s %s: %d key bindings for source %q\n", icons.StyledCheckMark(), origin, report.Total, set.Source())
	for _, command := range report.Unverified {
		_, _ = fmt.Fprintf(out, "%s command %s is not registered by this package\n", icons.StyledWarningMark(), command)
	}
	return nil
}

func printBindingsTable(cmd *cobra.Command, args []string) error {
	table, _, err := loadDefinitions(cmd, args)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeTable(cmd.OutOrStdout(), table, format)
}

func writeTable(w io.Writer, table keybinding.Table, format string) error {
	var data []byte

	switch format {
	case "yaml":
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(table); err != nil {
			return fmt.Errorf("failed to marshal key bindings to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to close YAML encoder: %w", err)
		}
		data = buf.Bytes()
	case "json":
		encoded, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal key bindings to JSON: %w", err)
		}
		data = append(encoded, '\n')
	case "toml":
		encoded, err := toml.Marshal(table)
		if err != nil {
			return fmt.Errorf("failed to marshal key bindings to TOML: %w", err)
		}
		data = encoded
	default:
		return fmt.Errorf("unsupported format %q (use yaml, json or toml)", format)
	}

	_, err := w.Write(data)
	return err
}
