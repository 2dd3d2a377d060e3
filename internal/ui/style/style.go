// Package style holds the colors and icons shared by log output and command summaries.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent  = lipgloss.Color("#8B5CF6")
	Muted   = lipgloss.Color("#667085")
	Success = lipgloss.Color("#22A06B")
	Failure = lipgloss.Color("#D93025")
	Caution = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Bullet  = "·"
)

// Summary renders a one-line result with a colored leading icon.
func Summary(icon string, color lipgloss.Color, msg string) string {
	return lipgloss.NewStyle().Foreground(color).Render(icon) + " " + msg
}
