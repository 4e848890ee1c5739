package icons

import (
	lipgloss "github.com/charmbracelet/lipgloss"
	colors "github.com/inference-gateway/keybind/internal/ui/styles/colors"
)

// Status icons
const (
	CheckMark   = "✓"
	CrossMark   = "✗"
	WarningMark = "!"
	InfoMark    = "i"
)

// Icon styles
var (
	CheckMarkStyle   = lipgloss.NewStyle().Foreground(colors.SuccessColor.GetLipglossColor()).Bold(true)
	CrossMarkStyle   = lipgloss.NewStyle().Foreground(colors.ErrorColor.GetLipglossColor()).Bold(true)
	WarningMarkStyle = lipgloss.NewStyle().Foreground(colors.WarningColor.GetLipglossColor()).Bold(true)
	InfoMarkStyle    = lipgloss.NewStyle().Foreground(colors.InfoColor.GetLipglossColor()).Bold(true)
)

func StyledCheckMark() string {
	return CheckMarkStyle.Render(CheckMark)
}

func StyledCrossMark() string {
	return CrossMarkStyle.Render(CrossMark)
}

func StyledWarningMark() string {
	return WarningMarkStyle.Render(WarningMark)
}

func StyledInfoMark() string {
	return InfoMarkStyle.Render(InfoMark)
}
