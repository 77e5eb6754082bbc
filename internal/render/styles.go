// Package render draws humanized transactions for the terminal.
package render

import "github.com/charmbracelet/lipgloss"

var (
	colorAddress   = lipgloss.Color("#00B4D8")
	colorValue     = lipgloss.Color("#FFFFFF")
	colorMeta      = lipgloss.Color("#555555")
	colorBorder    = lipgloss.Color("#1E3A5F")
	colorModule    = lipgloss.Color("#9B5DE5")
	colorHighlight = lipgloss.Color("#F15BB5")
	colorError     = lipgloss.Color("#FF4444")
	colorWarning   = lipgloss.Color("#FFB800")
)

var (
	styleAddress = lipgloss.NewStyle().Foreground(colorAddress)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue).Bold(true)
	styleMeta    = lipgloss.NewStyle().Foreground(colorMeta)
	styleModule  = lipgloss.NewStyle().Foreground(colorModule).Bold(true)
	styleHeader  = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// Err formats an error message.
func Err(msg string) string { return styleError.Render("✗ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return styleWarning.Render("⚠ " + msg) }

// Meta formats secondary text.
func Meta(msg string) string { return styleMeta.Render(msg) }

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
