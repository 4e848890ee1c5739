package cmd

import (
	"fmt"

	domain "github.com/inference-gateway/keybind/internal/domain"
	keystroke "github.com/inference-gateway/keybind/internal/keystroke"
	cobra "github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <key>",
	Short: "Resolve a key event into its canonical keystroke token",
	Long: `Build a key event from flags and print the token the keystroke resolver
produces for it.

With --raw the host resolver semantics apply: the raw keystroke is used when
the event resolves to nothing, and a leading "^" on the raw keystroke is kept.

Example:
  keybind resolve a --ctrl --alt                 # lctrl-lalt-a
  keybind resolve Control --ctrl --location right # rctrl
  keybind resolve ArrowRight --shift             # lshift-right
  keybind resolve 5 --location numpad            # numpad5
  keybind resolve a --ctrl --raw ^ctrl-a         # ^lctrl-a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	addResolveFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

func addResolveFlags(c *cobra.Command) {
	c.Flags().String("code", "", "physical key code, e.g. KeyA")
	c.Flags().StringP("location", "l", "standard", "key location (standard, left, right, numpad)")
	c.Flags().String("type", "keydown", "event type (keydown, keypress, keyup)")
	c.Flags().Bool("ctrl", false, "ctrl modifier held")
	c.Flags().Bool("alt", false, "alt modifier held")
	c.Flags().Bool("shift", false, "shift modifier held")
	c.Flags().Bool("meta", false, "meta (cmd) modifier held")
	c.Flags().String("raw", "", "raw keystroke computed by the host")
	c.Flags().String("layout", "", "keyboard layout name passed to the host resolver")
	c.Flags().Bool("dump", false, "print the key event before the token")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ev, err := keyEventFromFlags(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		_, _ = fmt.Fprintln(out, ev.String())
	}

	if !cmd.Flags().Changed("raw") {
		_, _ = fmt.Fprintln(out, keystroke.Resolve(ev))
		return nil
	}

	raw, _ := cmd.Flags().GetString("raw")
	layout, _ := cmd.Flags().GetString("layout")
	_, _ = fmt.Fprintln(out, keystroke.NewHostResolver().ResolveKeystroke(raw, ev, layout, nil))
	return nil
}

func keyEventFromFlags(cmd *cobra.Command, args []string) (domain.KeyEvent, error) {
	cfg := domain.KeyEventConfig{}
	if len(args) == 1 {
		cfg.Key = args[0]
	}

	cfg.Code, _ = cmd.Flags().GetString("code")
	cfg.CtrlKey, _ = cmd.Flags().GetBool("ctrl")
	cfg.AltKey, _ = cmd.Flags().GetBool("alt")
	cfg.ShiftKey, _ = cmd.Flags().GetBool("shift")
	cfg.MetaKey, _ = cmd.Flags().GetBool("meta")

	location, _ := cmd.Flags().GetString("location")
	cfg.Location = domain.ParseLocation(location)

	eventType, _ := cmd.Flags().GetString("type")
	cfg.Type = domain.ParseEventType(eventType)

	if cfg.Key == "" && !(cfg.CtrlKey || cfg.AltKey || cfg.ShiftKey || cfg.MetaKey) {
		return domain.KeyEvent{}, fmt.Errorf("a key or at least one modifier is required")
	}

	return domain.NewKeyEvent(cfg), nil
}
