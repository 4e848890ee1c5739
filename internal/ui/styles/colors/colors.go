package colors

import (
	"strings"

	lipgloss "github.com/charmbracelet/lipgloss"
)

// ANSI Color Codes - Tokyo Night Theme
const (
	Reset   = "\033[0m"
	Red     = "\033[38;2;247;118;142m" // #f7768e
	Green   = "\033[38;2;158;206;106m" // #9ece6a
	Blue    = "\033[38;2;122;162;247m" // #7aa2f7
	Magenta = "\033[38;2;187;154;247m" // #bb9af7
	White   = "\033[38;2;169;177;214m" // #a9b1d6
	Gray    = "\033[38;2;86;95;137m"   // #565f89
	Amber   = "\033[38;2;224;175;104m" // #e0af68
)

// Lipgloss Color Names - Tokyo Night Theme Hex Values
const (
	LipglossRed     = "#f7768e"
	LipglossGreen   = "#9ece6a"
	LipglossBlue    = "#7aa2f7"
	LipglossMagenta = "#bb9af7"
	LipglossWhite   = "#a9b1d6"
	LipglossGray    = "#565f89"
	LipglossAmber   = "#e0af68"
)

// Color represents a color that can be used in both ANSI and Lipgloss contexts
type Color struct {
	ANSI     string
	Lipgloss string
}

// Semantic colors used by the terminal output
var (
	ErrorColor    = Color{ANSI: Red, Lipgloss: LipglossRed}
	SuccessColor  = Color{ANSI: Green, Lipgloss: LipglossGreen}
	WarningColor  = Color{ANSI: Amber, Lipgloss: LipglossAmber}
	InfoColor     = Color{ANSI: Magenta, Lipgloss: LipglossMagenta}
	SelectorColor = Color{ANSI: Blue, Lipgloss: LipglossBlue}
	CommandColor  = Color{ANSI: White, Lipgloss: LipglossWhite}
	DimColor      = Color{ANSI: Gray, Lipgloss: LipglossGray}
)

// GetLipglossColor returns a lipgloss color for the given Color
func (c Color) GetLipglossColor() lipgloss.Color {
	return lipgloss.Color(c.Lipgloss)
}

// CreateSeparator creates a separator line with the given width and character
func CreateSeparator(width int, char string) string {
	return DimColor.ANSI + strings.Repeat(char, width) + Reset
}
