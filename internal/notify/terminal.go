package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	lipgloss "github.com/charmbracelet/lipgloss"
	colors "github.com/inference-gateway/keybind/internal/ui/styles/colors"
	icons "github.com/inference-gateway/keybind/internal/ui/styles/icons"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(colors.DimColor.GetLipglossColor()).PaddingLeft(2)
)

// TerminalNotifier renders notifications as styled lines on a writer
type TerminalNotifier struct {
	out   io.Writer
	mutex sync.Mutex
}

// NewTerminalNotifier creates a TerminalNotifier writing to out
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

// Info implements domain.Notifier
func (n *TerminalNotifier) Info(title, detail string) {
	n.write(icons.StyledInfoMark(), title, detail)
}

// Warning implements domain.Notifier
func (n *TerminalNotifier) Warning(title, detail string) {
	n.write(icons.StyledWarningMark(), title, detail)
}

func (n *TerminalNotifier) write(icon, title, detail string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	_, _ = fmt.Fprintf(n.out, "%s %s\n", icon, titleStyle.Render(title))

	detail = strings.TrimRight(detail, "\n")
	if detail == "" {
		return
	}
	for _, line := range strings.Split(detail, "\n") {
		_, _ = fmt.Fprintln(n.out, detailStyle.Render(line))
	}
}
